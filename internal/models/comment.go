package models

import "time"

// Comment is attached to exactly one of Task or Project.
type Comment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TaskID    *uint64   `gorm:"index" json:"task_id,omitempty"`
	ProjectID *uint64   `gorm:"index" json:"project_id,omitempty"`
	AuthorID  uint64    `gorm:"not null" json:"author_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
