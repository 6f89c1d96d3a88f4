package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/teamforge/project-tracker-api/internal/models"
	"github.com/teamforge/project-tracker-api/internal/repository"
	"github.com/teamforge/project-tracker-api/internal/storage"
	"gorm.io/gorm"
)

var ErrUnsupportedFileType = errors.New("uploaded file is not a supported image")

// MediaService handles file uploads attached to tasks.
type MediaService struct {
	mediaRepo repository.MediaRepository
	taskRepo  repository.TaskRepository
	blobs     storage.BlobStore
}

// NewMediaService creates a new MediaService.
func NewMediaService(mediaRepo repository.MediaRepository, taskRepo repository.TaskRepository, blobs storage.BlobStore) *MediaService {
	return &MediaService{
		mediaRepo: mediaRepo,
		taskRepo:  taskRepo,
		blobs:     blobs,
	}
}

// UploadTaskMedia validates the content is an image, stores it, and records a
// MediaFile row attached to the task.
func (s *MediaService) UploadTaskMedia(actorID, taskID uint64, data []byte) (*models.MediaFile, error) {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrUnsupportedFileType
	}

	url, err := s.blobs.Save(data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	file := &models.MediaFile{
		FileURL:      url,
		FileType:     models.MediaFileTypeImage,
		TaskID:       &taskID,
		UploadedByID: actorID,
	}

	if err := s.mediaRepo.Create(file); err != nil {
		return nil, fmt.Errorf("failed to record media file: %w", err)
	}

	return file, nil
}

// ListTaskMedia returns the files attached to a task.
func (s *MediaService) ListTaskMedia(taskID uint64) ([]models.MediaFile, error) {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	files, err := s.mediaRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list media files: %w", err)
	}
	return files, nil
}
