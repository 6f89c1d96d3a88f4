package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/teamforge/project-tracker-api/internal/dto"
	apierrors "github.com/teamforge/project-tracker-api/internal/errors"
	"github.com/teamforge/project-tracker-api/internal/middleware"
	"github.com/teamforge/project-tracker-api/internal/models"
	"github.com/teamforge/project-tracker-api/internal/services"
)

// ProjectHandler coordinates project and membership HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
	commentService *services.CommentService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, commentService *services.CommentService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		commentService: commentService,
	}
}

// ListProjects returns the projects visible to the filter user: those they
// created plus those they hold a member row in. Defaults to the acting user.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	filterUserID := actorID
	if userParam := c.Query("user"); userParam != "" {
		id, err := strconv.ParseUint(userParam, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid user ID")
			return
		}
		filterUserID = id
	}

	projects, err := h.projectService.ListProjectsForUser(filterUserID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list projects")
		return
	}

	response := make([]dto.ProjectDTO, len(projects))
	for i, project := range projects {
		response[i] = dto.ToProjectDTO(project, project.Members, actorID)
	}

	c.JSON(http.StatusOK, response)
}

// GetProject returns a project by ID with its members.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, members, err := h.projectService.GetProject(projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project, members, actorID))
}

// CreateProject creates a new project with the acting user as creator.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateProjectRequest struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		CreatorID:   actorID,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": project.ID})
}

// UpdateProject applies a partial patch to a project. Creator only.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateProjectRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(actorID, projectID, services.ProjectPatch{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": project.ID})
}

// DeleteProject removes a project and everything scoped to it. Creator only.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(actorID, projectID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListMembers returns all member rows of a project.
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	members, err := h.projectService.ListMembers(projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectMemberDTOs(members))
}

// AddMember adds a user to a project with a role and returns the updated
// member list. Any authenticated user may add members.
func (h *ProjectHandler) AddMember(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AddMemberRequest struct {
		UserID uint64 `json:"user"`
		Role   string `json:"role"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.UserID == 0 || req.Role == "" {
		apierrors.BadRequest(c, services.ErrMemberFieldsNeeded.Error())
		return
	}

	members, err := h.projectService.AddMember(projectID, req.UserID, models.ProjectRole(req.Role))
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectMemberDTOs(members))
}

// RemoveMember removes a member row and returns the updated member list.
// Allowed for the project creator, or for anyone when the targeted member
// holds the OWNER role.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	memberID, ok := parseIDParam(c, "member_id")
	if !ok {
		return
	}

	members, err := h.projectService.RemoveMember(actorID, projectID, memberID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectMemberDTOs(members))
}

// ListComments returns a short preview of a project's comments.
func (h *ProjectHandler) ListComments(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.commentService.ListProjectComments(projectID)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTOs(comments))
}

// AddComment creates a comment on a project authored by the acting user.
func (h *ProjectHandler) AddComment(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AddCommentRequest struct {
		Text string `json:"text"`
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.AddProjectComment(actorID, projectID, req.Text)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrMemberFieldsNeeded),
		errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotProjectCreator),
		errors.Is(err, services.ErrCannotRemoveMember):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
