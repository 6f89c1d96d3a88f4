package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teamforge/project-tracker-api/internal/dto"
	apierrors "github.com/teamforge/project-tracker-api/internal/errors"
	"github.com/teamforge/project-tracker-api/internal/middleware"
	"github.com/teamforge/project-tracker-api/internal/models"
	"github.com/teamforge/project-tracker-api/internal/repository"
	"github.com/teamforge/project-tracker-api/internal/services"
	"github.com/teamforge/project-tracker-api/internal/utils"
)

// TaskHandler coordinates task and task-media HTTP handlers.
type TaskHandler struct {
	taskService  *services.TaskService
	mediaService *services.MediaService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, mediaService *services.MediaService) *TaskHandler {
	return &TaskHandler{
		taskService:  taskService,
		mediaService: mediaService,
	}
}

// ListTasks returns tasks, optionally filtered by project or creating user.
// Listing applies no membership scoping beyond the explicit filter.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	filter := repository.TaskFilter{}

	if projectParam := c.Query("project"); projectParam != "" {
		id, err := strconv.ParseUint(projectParam, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			return
		}
		filter.ProjectID = &id
	}
	if userParam := c.Query("user"); userParam != "" {
		id, err := strconv.ParseUint(userParam, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid user ID")
			return
		}
		filter.CreatedByID = &id
	}

	params := utils.GetPaginationParams(c)
	filter.Page = params.Page
	filter.PageSize = params.Limit

	tasks, total, err := h.taskService.ListTasks(filter)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTask returns a task by ID.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task. The creator is always the acting identity;
// a created_by value in the request body is ignored.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Description  string             `json:"description"`
		ProjectID    *uint64            `json:"project"`
		AssignedToID *uint64            `json:"assigned_to"`
		DueDate      *time.Time         `json:"due_date"`
		Status       *models.TaskStatus `json:"status"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Description:  req.Description,
		ProjectID:    req.ProjectID,
		AssignedToID: req.AssignedToID,
		DueDate:      req.DueDate,
		Status:       req.Status,
		CreatorID:    actorID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial patch: only fields present in the body
// overwrite current values. Any authenticated user may edit any task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var patch services.TaskPatch

	if description, ok := rawReq["description"]; ok {
		descStr, isStr := description.(string)
		if !isStr {
			apierrors.BadRequest(c, "Invalid description")
			return
		}
		patch.Description = &descStr
	}
	if status, ok := rawReq["status"]; ok {
		statusStr, isStr := status.(string)
		if !isStr {
			apierrors.BadRequest(c, "Invalid status")
			return
		}
		s := models.TaskStatus(statusStr)
		patch.Status = &s
	}
	if assignedTo, ok := rawReq["assigned_to"]; ok {
		patch.AssignedToSet = true
		if assignedTo != nil {
			num, isNum := assignedTo.(float64)
			if !isNum || num < 0 {
				apierrors.BadRequest(c, "Invalid assigned_to")
				return
			}
			id := uint64(num)
			patch.AssignedToID = &id
		}
	}
	if dueDate, ok := rawReq["due_date"]; ok {
		patch.DueDateSet = true
		if dueDate != nil {
			dueDateStr, isStr := dueDate.(string)
			if !isStr {
				apierrors.BadRequest(c, "Invalid due_date")
				return
			}
			parsed, err := time.Parse(time.RFC3339, dueDateStr)
			if err != nil {
				apierrors.BadRequest(c, "Invalid due_date")
				return
			}
			patch.DueDate = &parsed
		}
	}

	task, err := h.taskService.UpdateTask(taskID, patch)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task. Any authenticated user may delete any task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UploadMedia attaches an uploaded image to a task.
func (h *TaskHandler) UploadMedia(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "File is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.BadRequest(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		apierrors.BadRequest(c, "Failed to read uploaded file")
		return
	}

	mediaFile, err := h.mediaService.UploadTaskMedia(actorID, taskID, data)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMediaFileDTO(*mediaFile))
}

// ListMedia returns the files attached to a task.
func (h *TaskHandler) ListMedia(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	files, err := h.mediaService.ListTaskMedia(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMediaFileDTOs(files))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrAssigneeNotFound),
		errors.Is(err, services.ErrUnsupportedFileType):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
