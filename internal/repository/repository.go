package repository

import (
	"github.com/teamforge/project-tracker-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// List returns users newest first, optionally filtered by a
	// case-insensitive username substring
	List(usernameFilter string) ([]models.User, error)
}

// ProjectRepository defines the interface for project and membership data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with creator preloaded
	FindByID(id uint64) (*models.Project, error)

	// ListForUser returns projects where the user is the creator or holds a
	// member row
	ListForUser(userID uint64) ([]models.Project, error)

	// Update persists changes to a project
	Update(project *models.Project) error

	// Delete removes a project and everything scoped to it in one transaction
	Delete(id uint64) error

	// AddMember adds a member row to a project
	AddMember(member *models.ProjectMember) error

	// FindMember finds a member row by (project, user) pair
	FindMember(projectID, userID uint64) (*models.ProjectMember, error)

	// FindMemberByID finds a member row by its own ID within a project
	FindMemberByID(projectID, memberID uint64) (*models.ProjectMember, error)

	// RemoveMemberByID deletes a member row
	RemoveMemberByID(memberID uint64) error

	// ListMembers lists all member rows of a project with users preloaded
	ListMembers(projectID uint64) ([]models.ProjectMember, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID   *uint64
	CreatedByID *uint64
	Page        int
	PageSize    int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete removes a task together with its comments and media files
	Delete(id uint64) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID
	FindByID(id uint64) (*models.Comment, error)

	// ListByTask lists a task's comments oldest first with authors preloaded
	ListByTask(taskID uint64) ([]models.Comment, error)

	// ListByProject lists up to limit of a project's comments, newest first
	ListByProject(projectID uint64, limit int) ([]models.Comment, error)

	// Delete removes a comment
	Delete(id uint64) error
}

// MediaRepository defines the interface for media file data access
type MediaRepository interface {
	// Create records an uploaded file
	Create(file *models.MediaFile) error

	// ListByTask lists files attached to a task
	ListByTask(taskID uint64) ([]models.MediaFile, error)
}
