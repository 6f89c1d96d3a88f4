package models

import "time"

type MediaFileType string

const (
	MediaFileTypeImage MediaFileType = "IMAGE"
)

type MediaFile struct {
	ID           uint64        `gorm:"primarykey" json:"id"`
	FileURL      string        `gorm:"type:varchar(500);not null" json:"file_url"`
	FileType     MediaFileType `gorm:"type:varchar(10);not null" json:"file_type"`
	TaskID       *uint64       `gorm:"index" json:"task_id,omitempty"`
	UploadedByID uint64        `gorm:"not null" json:"uploaded_by_id"`
	UploadedAt   time.Time     `gorm:"autoCreateTime" json:"uploaded_at"`

	// Relations
	UploadedBy User `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
}
