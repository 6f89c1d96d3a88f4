package models

import "time"

type TaskStatus string

// Status values form a nominal TODO → IN_PROGRESS → NEEDS_REVIEW → DONE
// lifecycle, but transitions are not enforced: any value of the set may be
// written over any other.
const (
	TaskStatusTodo        TaskStatus = "TODO"
	TaskStatusInProgress  TaskStatus = "IN_PROGRESS"
	TaskStatusNeedsReview TaskStatus = "NEEDS_REVIEW"
	TaskStatusDone        TaskStatus = "DONE"
)

// ValidStatus reports whether status belongs to the fixed status set.
func ValidStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusNeedsReview, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Description  string     `gorm:"type:text;not null" json:"description"`
	ProjectID    *uint64    `gorm:"index" json:"project_id"`
	CreatedByID  uint64     `gorm:"not null;index" json:"created_by_id"`
	AssignedToID *uint64    `gorm:"index" json:"assigned_to_id"`
	Status       TaskStatus `gorm:"type:varchar(20);not null;default:'TODO';index" json:"status"`
	DueDate      *time.Time `json:"due_date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Project    *Project    `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	CreatedBy  User        `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	AssignedTo *User       `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL" json:"assigned_to,omitempty"`
	Comments   []Comment   `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
	MediaFiles []MediaFile `gorm:"foreignKey:TaskID" json:"media_files,omitempty"`
}
