package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/teamforge/project-tracker-api/internal/models"
	"github.com/teamforge/project-tracker-api/internal/policy"
	"github.com/teamforge/project-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrEmptyComment     = errors.New("comment text cannot be empty")
	ErrNotCommentAuthor = errors.New("only the author can delete this comment")
)

// ProjectCommentPreviewLimit caps how many project comments are returned; the
// project page shows a short preview, newest first.
const ProjectCommentPreviewLimit = 3

// CommentService provides business logic for task and project comments.
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// ListTaskComments returns a task's comments oldest first.
func (s *CommentService) ListTaskComments(taskID uint64) ([]models.Comment, error) {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	comments, err := s.commentRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// AddTaskComment creates a comment on a task. The author is always the acting
// identity.
func (s *CommentService) AddTaskComment(actorID, taskID uint64, text string) (*models.Comment, error) {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	comment := &models.Comment{
		TaskID:   &taskID,
		AuthorID: actorID,
		Text:     text,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// ListProjectComments returns a short preview of a project's comments.
func (s *CommentService) ListProjectComments(projectID uint64) ([]models.Comment, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	comments, err := s.commentRepo.ListByProject(projectID, ProjectCommentPreviewLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// AddProjectComment creates a comment on a project.
func (s *CommentService) AddProjectComment(actorID, projectID uint64, text string) (*models.Comment, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	comment := &models.Comment{
		ProjectID: &projectID,
		AuthorID:  actorID,
		Text:      text,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// DeleteComment removes a comment. Author only.
func (s *CommentService) DeleteComment(actorID, id uint64) error {
	comment, err := s.commentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to find comment: %w", err)
	}

	if !policy.CanDeleteComment(actorID, comment) {
		return ErrNotCommentAuthor
	}

	if err := s.commentRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}
