package dto

import (
	"time"

	"github.com/teamforge/project-tracker-api/internal/models"
)

// MediaFileDTO represents an uploaded file in API responses
type MediaFileDTO struct {
	ID           uint64               `json:"id"`
	FileURL      string               `json:"file_url"`
	FileType     models.MediaFileType `json:"file_type"`
	TaskID       *uint64              `json:"task_id,omitempty"`
	UploadedByID uint64               `json:"uploaded_by_id"`
	UploadedAt   time.Time            `json:"uploaded_at"`
}

// ToMediaFileDTO converts a MediaFile model to MediaFileDTO
func ToMediaFileDTO(file models.MediaFile) MediaFileDTO {
	return MediaFileDTO{
		ID:           file.ID,
		FileURL:      file.FileURL,
		FileType:     file.FileType,
		TaskID:       file.TaskID,
		UploadedByID: file.UploadedByID,
		UploadedAt:   file.UploadedAt,
	}
}

// ToMediaFileDTOs converts a slice of media files
func ToMediaFileDTOs(files []models.MediaFile) []MediaFileDTO {
	dtos := make([]MediaFileDTO, len(files))
	for i, file := range files {
		dtos[i] = ToMediaFileDTO(file)
	}
	return dtos
}
