package dto

import (
	"time"

	"github.com/teamforge/project-tracker-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64            `json:"id"`
	Description  string            `json:"description"`
	ProjectID    *uint64           `json:"project"`
	Status       models.TaskStatus `json:"status"`
	CreatedByID  uint64            `json:"created_by"`
	AssignedToID *uint64           `json:"assigned_to"`
	DueDate      *time.Time        `json:"due_date"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	Creator      *UserDTO          `json:"creator,omitempty"`
	Assignee     *UserDTO          `json:"assignee,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		Description:  task.Description,
		ProjectID:    task.ProjectID,
		Status:       task.Status,
		CreatedByID:  task.CreatedByID,
		AssignedToID: task.AssignedToID,
		DueDate:      task.DueDate,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	// Include relations if preloaded
	if task.CreatedBy.ID != 0 {
		creator := ToUserDTO(task.CreatedBy)
		dto.Creator = &creator
	}
	if task.AssignedTo != nil && task.AssignedTo.ID != 0 {
		assignee := ToUserDTO(*task.AssignedTo)
		dto.Assignee = &assignee
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
