package repository

import (
	"github.com/teamforge/project-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormMediaRepository is a GORM implementation of MediaRepository
type GormMediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new MediaRepository
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &GormMediaRepository{db: db}
}

// Create records an uploaded file
func (r *GormMediaRepository) Create(file *models.MediaFile) error {
	return r.db.Create(file).Error
}

// ListByTask lists files attached to a task
func (r *GormMediaRepository) ListByTask(taskID uint64) ([]models.MediaFile, error) {
	var files []models.MediaFile
	if err := r.db.Where("task_id = ?", taskID).
		Order("uploaded_at ASC").
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}
