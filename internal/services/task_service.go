package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teamforge/project-tracker-api/internal/models"
	"github.com/teamforge/project-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrDescriptionRequired = errors.New("description is required")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrAssigneeNotFound    = errors.New("assigned user not found")
)

// TaskService provides business logic for tasks. Task mutation is open to any
// authenticated user; there is deliberately no ownership gate here.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// ListTasks retrieves tasks matching the filter. When a project filter is
// given the project must exist; no membership scoping is applied beyond the
// filter itself.
func (s *TaskService) ListTasks(filter repository.TaskFilter) ([]models.Task, int64, error) {
	if filter.ProjectID != nil {
		if _, err := s.projectRepo.FindByID(*filter.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, ErrProjectNotFound
			}
			return nil, 0, fmt.Errorf("failed to find project: %w", err)
		}
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// GetTask retrieves a task with its relations.
func (s *TaskService) GetTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, "CreatedBy", "AssignedTo", "Project")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTaskInput represents parameters to create a new task. CreatorID comes
// from the session identity; a client-supplied created_by is never honored.
type CreateTaskInput struct {
	Description  string
	ProjectID    *uint64
	AssignedToID *uint64
	DueDate      *time.Time
	Status       *models.TaskStatus
	CreatorID    uint64
}

// CreateTask creates a new task.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrDescriptionRequired
	}

	status := models.TaskStatusTodo
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		status = *input.Status
	}

	if input.ProjectID != nil {
		if _, err := s.projectRepo.FindByID(*input.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
	}

	if input.AssignedToID != nil {
		if _, err := s.userRepo.FindByID(*input.AssignedToID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeNotFound
			}
			return nil, fmt.Errorf("failed to find assignee: %w", err)
		}
	}

	task := &models.Task{
		Description:  input.Description,
		ProjectID:    input.ProjectID,
		AssignedToID: input.AssignedToID,
		DueDate:      input.DueDate,
		Status:       status,
		CreatedByID:  input.CreatorID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.GetTask(task.ID)
}

// TaskPatch carries fields to overwrite. The Set flags distinguish "absent"
// from "explicitly null" for nullable columns; absent fields are preserved.
type TaskPatch struct {
	Description   *string
	Status        *models.TaskStatus
	AssignedToID  *uint64
	AssignedToSet bool
	DueDate       *time.Time
	DueDateSet    bool
}

// UpdateTask applies a partial patch to a task. Any authenticated user may
// edit any task; status accepts every value of the fixed set regardless of the
// current value.
func (s *TaskService) UpdateTask(id uint64, patch TaskPatch) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	// Emptiness is only validated at create time; edits write through whatever
	// the patch carries.
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		if !models.ValidStatus(*patch.Status) {
			return nil, ErrInvalidStatus
		}
		task.Status = *patch.Status
	}
	if patch.AssignedToSet {
		if patch.AssignedToID != nil {
			if _, err := s.userRepo.FindByID(*patch.AssignedToID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrAssigneeNotFound
				}
				return nil, fmt.Errorf("failed to find assignee: %w", err)
			}
		}
		task.AssignedToID = patch.AssignedToID
	}
	if patch.DueDateSet {
		task.DueDate = patch.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.GetTask(task.ID)
}

// DeleteTask removes a task and its comments and media files. Any
// authenticated user may delete any task.
func (s *TaskService) DeleteTask(id uint64) error {
	if _, err := s.taskRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
