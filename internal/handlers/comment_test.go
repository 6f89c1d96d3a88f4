package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/teamforge/project-tracker-api/internal/dto"
	"github.com/teamforge/project-tracker-api/internal/models"
	"github.com/teamforge/project-tracker-api/internal/repository"
	"github.com/teamforge/project-tracker-api/internal/services"
	"gorm.io/gorm"
)

type commentTestEnv struct {
	db             *gorm.DB
	handler        *CommentHandler
	projectHandler *ProjectHandler
}

func setupCommentTestEnv(t *testing.T) commentTestEnv {
	t.Helper()

	db := newTestDB(t)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	projectService := services.NewProjectService(projectRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, taskRepo, projectRepo)

	return commentTestEnv{
		db:             db,
		handler:        NewCommentHandler(commentService),
		projectHandler: NewProjectHandler(projectService, commentService),
	}
}

func createTestTask(t *testing.T, db *gorm.DB, creatorID uint64) *models.Task {
	t.Helper()

	task := &models.Task{
		Description: "task under discussion",
		CreatedByID: creatorID,
		Status:      models.TaskStatusTodo,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

func TestCommentHandler_AddTaskComment_WhitespaceOnly(t *testing.T) {
	env := setupCommentTestEnv(t)
	actor := createTestUser(t, env.db, "actor")
	task := createTestTask(t, env.db, actor.ID)

	body, err := json.Marshal(map[string]string{"text": "   "})
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/tasks/1/comments", body, actor.ID, idParam("id", task.ID))

	env.handler.AddTaskComment(c)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	env.db.Model(&models.Comment{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestCommentHandler_AddTaskComment_ListsAfterPriorComments(t *testing.T) {
	env := setupCommentTestEnv(t)
	actor := createTestUser(t, env.db, "actor")
	task := createTestTask(t, env.db, actor.ID)

	earlier := &models.Comment{
		TaskID:    &task.ID,
		AuthorID:  actor.ID,
		Text:      "first",
		CreatedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, env.db.Create(earlier).Error)

	body, err := json.Marshal(map[string]string{"text": "ok"})
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/tasks/1/comments", body, actor.ID, idParam("id", task.ID))

	env.handler.AddTaskComment(c)

	require.Equal(t, http.StatusCreated, w.Code)

	c, w = testContext(http.MethodGet, "/api/tasks/1/comments", nil, actor.ID, idParam("id", task.ID))

	env.handler.ListTaskComments(c)

	require.Equal(t, http.StatusOK, w.Code)

	var comments []dto.CommentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	require.Len(t, comments, 2)
	require.Equal(t, "first", comments[0].Text)
	require.Equal(t, "ok", comments[1].Text)
}

func TestCommentHandler_AddTaskComment_UnknownTask(t *testing.T) {
	env := setupCommentTestEnv(t)
	actor := createTestUser(t, env.db, "actor")

	body, err := json.Marshal(map[string]string{"text": "hello"})
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/tasks/999/comments", body, actor.ID, idParam("id", 999))

	env.handler.AddTaskComment(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentHandler_DeleteComment_NonAuthorForbidden(t *testing.T) {
	env := setupCommentTestEnv(t)
	author := createTestUser(t, env.db, "author")
	other := createTestUser(t, env.db, "other")
	task := createTestTask(t, env.db, author.ID)

	comment := &models.Comment{TaskID: &task.ID, AuthorID: author.ID, Text: "mine"}
	require.NoError(t, env.db.Create(comment).Error)

	c, w := testContext(http.MethodDelete, "/api/comments/1", nil, other.ID, idParam("id", comment.ID))

	env.handler.DeleteComment(c)

	require.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	env.db.Model(&models.Comment{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestCommentHandler_DeleteComment_Author(t *testing.T) {
	env := setupCommentTestEnv(t)
	author := createTestUser(t, env.db, "author")
	task := createTestTask(t, env.db, author.ID)

	comment := &models.Comment{TaskID: &task.ID, AuthorID: author.ID, Text: "mine"}
	require.NoError(t, env.db.Create(comment).Error)

	c, w := testContext(http.MethodDelete, "/api/comments/1", nil, author.ID, idParam("id", comment.ID))

	env.handler.DeleteComment(c)

	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	env.db.Model(&models.Comment{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestCommentHandler_DeleteComment_NotFound(t *testing.T) {
	env := setupCommentTestEnv(t)
	actor := createTestUser(t, env.db, "actor")

	c, w := testContext(http.MethodDelete, "/api/comments/999", nil, actor.ID, idParam("id", 999))

	env.handler.DeleteComment(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_ListComments_PreviewCap(t *testing.T) {
	env := setupCommentTestEnv(t)
	actor := createTestUser(t, env.db, "actor")

	project := &models.Project{Title: "Project", CreatedByID: actor.ID}
	require.NoError(t, env.db.Create(project).Error)

	// Five comments, oldest to newest.
	for i := 0; i < 5; i++ {
		comment := &models.Comment{
			ProjectID: &project.ID,
			AuthorID:  actor.ID,
			Text:      "comment " + string(rune('a'+i)),
			CreatedAt: time.Now().Add(time.Duration(i-5) * time.Hour),
		}
		require.NoError(t, env.db.Create(comment).Error)
	}

	c, w := testContext(http.MethodGet, "/api/projects/1/comments", nil, actor.ID, idParam("id", project.ID))

	env.projectHandler.ListComments(c)

	require.Equal(t, http.StatusOK, w.Code)

	var comments []dto.CommentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	require.Len(t, comments, 3)
	// Newest first.
	require.Equal(t, "comment e", comments[0].Text)
	require.Equal(t, "comment d", comments[1].Text)
	require.Equal(t, "comment c", comments[2].Text)
}
