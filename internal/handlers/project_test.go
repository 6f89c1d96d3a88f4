package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/teamforge/project-tracker-api/internal/dto"
	"github.com/teamforge/project-tracker-api/internal/models"
	"github.com/teamforge/project-tracker-api/internal/repository"
	"github.com/teamforge/project-tracker-api/internal/services"
	"gorm.io/gorm"
)

type projectTestEnv struct {
	db             *gorm.DB
	handler        *ProjectHandler
	projectService *services.ProjectService
}

func setupProjectTestEnv(t *testing.T) projectTestEnv {
	t.Helper()

	db := newTestDB(t)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	projectService := services.NewProjectService(projectRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, taskRepo, projectRepo)
	handler := NewProjectHandler(projectService, commentService)

	return projectTestEnv{
		db:             db,
		handler:        handler,
		projectService: projectService,
	}
}

func createTestProject(t *testing.T, env projectTestEnv, creatorID uint64, title string) *models.Project {
	t.Helper()

	project, err := env.projectService.CreateProject(services.CreateProjectInput{
		Title:     title,
		CreatorID: creatorID,
	})
	require.NoError(t, err)
	return project
}

func TestProjectHandler_CreateProject(t *testing.T) {
	env := setupProjectTestEnv(t)
	user := createTestUser(t, env.db, "creator")

	body, err := json.Marshal(map[string]string{"title": "New Project", "description": "desc"})
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/projects", body, user.ID)

	env.handler.CreateProject(c)

	require.Equal(t, http.StatusCreated, w.Code)
}

func TestProjectHandler_CreateProject_EmptyTitle(t *testing.T) {
	env := setupProjectTestEnv(t)
	user := createTestUser(t, env.db, "creator")

	body, err := json.Marshal(map[string]string{"title": "   "})
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/projects", body, user.ID)

	env.handler.CreateProject(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectHandler_ListProjects_ScopedToActor(t *testing.T) {
	env := setupProjectTestEnv(t)
	creator := createTestUser(t, env.db, "creator")
	member := createTestUser(t, env.db, "member")
	outsider := createTestUser(t, env.db, "outsider")

	owned := createTestProject(t, env, creator.ID, "Owned")
	createTestProject(t, env, outsider.ID, "Foreign")

	_, err := env.projectService.AddMember(owned.ID, member.ID, models.RoleMember)
	require.NoError(t, err)

	// Creator sees the project without holding a member row
	c, w := testContext(http.MethodGet, "/api/projects", nil, creator.ID)
	env.handler.ListProjects(c)
	require.Equal(t, http.StatusOK, w.Code)

	var creatorProjects []dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &creatorProjects))
	require.Len(t, creatorProjects, 1)
	require.Equal(t, "Owned", creatorProjects[0].Title)
	require.Nil(t, creatorProjects[0].UserRole, "creator authority is implicit, not a member row")

	// Explicit member sees it too, with their role resolved
	c, w = testContext(http.MethodGet, "/api/projects", nil, member.ID)
	env.handler.ListProjects(c)
	require.Equal(t, http.StatusOK, w.Code)

	var memberProjects []dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &memberProjects))
	require.Len(t, memberProjects, 1)
	require.NotNil(t, memberProjects[0].UserRole)
	require.Equal(t, models.RoleMember, *memberProjects[0].UserRole)
}

func TestProjectHandler_UpdateProject_NonCreatorForbidden(t *testing.T) {
	env := setupProjectTestEnv(t)
	creator := createTestUser(t, env.db, "creator")
	other := createTestUser(t, env.db, "other")
	project := createTestProject(t, env, creator.ID, "Project")

	body, err := json.Marshal(map[string]string{"title": "Hijacked"})
	require.NoError(t, err)

	c, w := testContext(http.MethodPut, "/api/projects/1", body, other.ID, idParam("id", project.ID))

	env.handler.UpdateProject(c)

	require.Equal(t, http.StatusForbidden, w.Code)

	var unchanged models.Project
	require.NoError(t, env.db.First(&unchanged, project.ID).Error)
	require.Equal(t, "Project", unchanged.Title)
}

func TestProjectHandler_UpdateProject_EmptyTitleWritesThrough(t *testing.T) {
	env := setupProjectTestEnv(t)
	creator := createTestUser(t, env.db, "creator")
	project := createTestProject(t, env, creator.ID, "Project")

	// Emptiness is only validated at create time.
	body, err := json.Marshal(map[string]string{"title": ""})
	require.NoError(t, err)

	c, w := testContext(http.MethodPut, "/api/projects/1", body, creator.ID, idParam("id", project.ID))

	env.handler.UpdateProject(c)

	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Project
	require.NoError(t, env.db.First(&updated, project.ID).Error)
	require.Equal(t, "", updated.Title)
}

func TestProjectHandler_DeleteProject_NonCreatorForbidden(t *testing.T) {
	env := setupProjectTestEnv(t)
	creator := createTestUser(t, env.db, "creator")
	other := createTestUser(t, env.db, "other")
	project := createTestProject(t, env, creator.ID, "Project")

	task := &models.Task{Description: "task", ProjectID: &project.ID, CreatedByID: creator.ID, Status: models.TaskStatusTodo}
	require.NoError(t, env.db.Create(task).Error)

	c, w := testContext(http.MethodDelete, "/api/projects/1", nil, other.ID, idParam("id", project.ID))

	env.handler.DeleteProject(c)

	require.Equal(t, http.StatusForbidden, w.Code)

	// Project and its tasks are untouched
	var projectCount, taskCount int64
	env.db.Model(&models.Project{}).Where("id = ?", project.ID).Count(&projectCount)
	env.db.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&taskCount)
	require.EqualValues(t, 1, projectCount)
	require.EqualValues(t, 1, taskCount)
}

func TestProjectHandler_DeleteProject_CascadesToTasks(t *testing.T) {
	env := setupProjectTestEnv(t)
	creator := createTestUser(t, env.db, "creator")
	project := createTestProject(t, env, creator.ID, "Project")

	task := &models.Task{Description: "task", ProjectID: &project.ID, CreatedByID: creator.ID, Status: models.TaskStatusTodo}
	require.NoError(t, env.db.Create(task).Error)

	comment := &models.Comment{TaskID: &task.ID, AuthorID: creator.ID, Text: "note"}
	require.NoError(t, env.db.Create(comment).Error)

	media := &models.MediaFile{FileURL: "/media/x.png", FileType: models.MediaFileTypeImage, TaskID: &task.ID, UploadedByID: creator.ID}
	require.NoError(t, env.db.Create(media).Error)

	c, w := testContext(http.MethodDelete, "/api/projects/1", nil, creator.ID, idParam("id", project.ID))

	env.handler.DeleteProject(c)

	require.Equal(t, http.StatusOK, w.Code)

	var taskCount, commentCount, mediaCount int64
	env.db.Model(&models.Task{}).Count(&taskCount)
	env.db.Model(&models.Comment{}).Count(&commentCount)
	env.db.Model(&models.MediaFile{}).Count(&mediaCount)
	require.EqualValues(t, 0, taskCount)
	require.EqualValues(t, 0, commentCount)
	require.EqualValues(t, 0, mediaCount)
}

func TestProjectHandler_AddMember(t *testing.T) {
	env := setupProjectTestEnv(t)
	creator := createTestUser(t, env.db, "creator")
	invitee := createTestUser(t, env.db, "invitee")
	project := createTestProject(t, env, creator.ID, "Project")

	body, err := json.Marshal(map[string]any{"user": invitee.ID, "role": "MEMBER"})
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/projects/1/members", body, creator.ID, idParam("id", project.ID))

	env.handler.AddMember(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var members []dto.ProjectMemberDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &members))
	require.Len(t, members, 1)
	require.Equal(t, invitee.ID, members[0].User.ID)
}

func TestProjectHandler_AddMember_AnyAuthenticatedActor(t *testing.T) {
	env := setupProjectTestEnv(t)
	creator := createTestUser(t, env.db, "creator")
	invitee := createTestUser(t, env.db, "invitee")
	stranger := createTestUser(t, env.db, "stranger")
	project := createTestProject(t, env, creator.ID, "Project")

	body, err := json.Marshal(map[string]any{"user": invitee.ID, "role": "MEMBER"})
	require.NoError(t, err)

	// A non-member actor can add members; no creator check is applied here.
	c, w := testContext(http.MethodPost, "/api/projects/1/members", body, stranger.ID, idParam("id", project.ID))

	env.handler.AddMember(c)

	require.Equal(t, http.StatusCreated, w.Code)
}

func TestProjectHandler_AddMember_Duplicate(t *testing.T) {
	env := setupProjectTestEnv(t)
	creator := createTestUser(t, env.db, "creator")
	invitee := createTestUser(t, env.db, "invitee")
	project := createTestProject(t, env, creator.ID, "Project")

	_, err := env.projectService.AddMember(project.ID, invitee.ID, models.RoleMember)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]any{"user": invitee.ID, "role": "ADMIN"})
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/projects/1/members", body, creator.ID, idParam("id", project.ID))

	env.handler.AddMember(c)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var memberCount int64
	env.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", project.ID, invitee.ID).
		Count(&memberCount)
	require.EqualValues(t, 1, memberCount, "duplicate add must not create a second row")
}

func TestProjectHandler_AddMember_InvalidRole(t *testing.T) {
	env := setupProjectTestEnv(t)
	creator := createTestUser(t, env.db, "creator")
	invitee := createTestUser(t, env.db, "invitee")
	project := createTestProject(t, env, creator.ID, "Project")

	body, err := json.Marshal(map[string]any{"user": invitee.ID, "role": "SUPERUSER"})
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/projects/1/members", body, creator.ID, idParam("id", project.ID))

	env.handler.AddMember(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectHandler_RemoveMember_Asymmetry(t *testing.T) {
	env := setupProjectTestEnv(t)
	creator := createTestUser(t, env.db, "creator")
	actor := createTestUser(t, env.db, "actor")
	target := createTestUser(t, env.db, "target")
	ownerRoleUser := createTestUser(t, env.db, "owner-role")
	project := createTestProject(t, env, creator.ID, "Project")

	members, err := env.projectService.AddMember(project.ID, target.ID, models.RoleMember)
	require.NoError(t, err)
	targetMemberID := members[0].ID

	// A plain authenticated actor cannot remove a MEMBER-role member
	c, w := testContext(http.MethodDelete, "/api/projects/1/members/1", nil, actor.ID,
		idParam("id", project.ID), idParam("member_id", targetMemberID))
	env.handler.RemoveMember(c)
	require.Equal(t, http.StatusForbidden, w.Code)

	// The creator can
	c, w = testContext(http.MethodDelete, "/api/projects/1/members/1", nil, creator.ID,
		idParam("id", project.ID), idParam("member_id", targetMemberID))
	env.handler.RemoveMember(c)
	require.Equal(t, http.StatusOK, w.Code)

	// And independently, anyone can remove a member that holds the OWNER role
	members, err = env.projectService.AddMember(project.ID, ownerRoleUser.ID, models.RoleOwner)
	require.NoError(t, err)
	ownerMemberID := members[0].ID

	c, w = testContext(http.MethodDelete, "/api/projects/1/members/2", nil, actor.ID,
		idParam("id", project.ID), idParam("member_id", ownerMemberID))
	env.handler.RemoveMember(c)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestProjectHandler_RemoveMember_NotFound(t *testing.T) {
	env := setupProjectTestEnv(t)
	creator := createTestUser(t, env.db, "creator")
	project := createTestProject(t, env, creator.ID, "Project")

	c, w := testContext(http.MethodDelete, "/api/projects/1/members/999", nil, creator.ID,
		idParam("id", project.ID), idParam("member_id", 999))

	env.handler.RemoveMember(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}
