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
	ErrProjectNotFound    = errors.New("project not found")
	ErrTitleRequired      = errors.New("title is required")
	ErrNotProjectCreator  = errors.New("only the project creator can perform this action")
	ErrMemberFieldsNeeded = errors.New("user ID and role are required")
	ErrInvalidRole        = errors.New("invalid role")
	ErrAlreadyMember      = errors.New("user is already a member of this project")
	ErrMemberNotFound     = errors.New("member not found")
	ErrCannotRemoveMember = errors.New("you do not have permission to remove this member")
)

// ProjectService provides business logic for projects and their memberships.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// ListProjectsForUser returns projects where the user is the creator or an
// explicit member. No other project is visible.
func (s *ProjectService) ListProjectsForUser(userID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Title       string
	Description string
	CreatorID   uint64
}

// CreateProject creates a new project. The creator holds implicit full
// authority; no OWNER member row is written for them.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	project := &models.Project{
		Title:       input.Title,
		Description: input.Description,
		CreatedByID: input.CreatorID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetProject returns a project with its members.
func (s *ProjectService) GetProject(id uint64) (*models.Project, []models.ProjectMember, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProjectNotFound
		}
		return nil, nil, fmt.Errorf("failed to find project: %w", err)
	}

	members, err := s.projectRepo.ListMembers(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list project members: %w", err)
	}

	return project, members, nil
}

// ProjectPatch carries the fields to overwrite; nil fields are preserved.
type ProjectPatch struct {
	Title       *string
	Description *string
}

// UpdateProject applies a partial patch. Creator only.
func (s *ProjectService) UpdateProject(actorID, projectID uint64, patch ProjectPatch) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !policy.IsProjectOwner(actorID, project) {
		return nil, ErrNotProjectCreator
	}

	// Emptiness is only validated at create time; edits write through whatever
	// the patch carries.
	if patch.Title != nil {
		project.Title = *patch.Title
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes a project and everything scoped to it. Creator only.
func (s *ProjectService) DeleteProject(actorID, projectID uint64) error {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if !policy.IsProjectOwner(actorID, project) {
		return ErrNotProjectCreator
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// ListMembers returns all member rows of a project.
func (s *ProjectService) ListMembers(projectID uint64) ([]models.ProjectMember, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	members, err := s.projectRepo.ListMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}
	return members, nil
}

// AddMember adds a user to a project with the given role and returns the
// updated member list. Any authenticated actor may add members; only the role
// set and the (user, project) uniqueness are checked.
func (s *ProjectService) AddMember(projectID, userID uint64, role models.ProjectRole) ([]models.ProjectMember, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.projectRepo.FindMember(projectID, userID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}

	if err := s.projectRepo.AddMember(member); err != nil {
		// Concurrent duplicate adds lose against the (user, project) unique
		// index and surface the same way as the pre-check.
		return nil, ErrAlreadyMember
	}

	return s.ListMembers(projectID)
}

// RemoveMember removes a member row and returns the updated member list.
// Allowed when the actor created the project, or, independently, when the
// targeted member holds the OWNER role.
func (s *ProjectService) RemoveMember(actorID, projectID, memberID uint64) ([]models.ProjectMember, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	member, err := s.projectRepo.FindMemberByID(projectID, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	if !policy.CanRemoveMember(actorID, project, member) {
		return nil, ErrCannotRemoveMember
	}

	if err := s.projectRepo.RemoveMemberByID(member.ID); err != nil {
		return nil, fmt.Errorf("failed to remove member: %w", err)
	}

	return s.ListMembers(projectID)
}
