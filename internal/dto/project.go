package dto

import (
	"time"

	"github.com/teamforge/project-tracker-api/internal/models"
)

// ProjectMemberDTO represents a member row in API responses.
type ProjectMemberDTO struct {
	ID       uint64             `json:"id"`
	User     UserDTO            `json:"user"`
	Role     models.ProjectRole `json:"role"`
	JoinedAt time.Time          `json:"joined_at"`
}

// ProjectDTO represents a project in API responses. UserRole is the acting
// user's member-row role; it is null when no member row exists, including for
// the creator, whose authority is implicit.
type ProjectDTO struct {
	ID           uint64              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	CreatedBy    *UserDTO            `json:"created_by,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	UserRole     *models.ProjectRole `json:"user_role"`
	MembersCount int                 `json:"members_count"`
	Members      []ProjectMemberDTO  `json:"members"`
}

// ToProjectMemberDTO converts a member row to DTO
func ToProjectMemberDTO(member models.ProjectMember) ProjectMemberDTO {
	return ProjectMemberDTO{
		ID:       member.ID,
		User:     ToUserDTO(member.User),
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}

// ToProjectMemberDTOs converts a slice of member rows
func ToProjectMemberDTOs(members []models.ProjectMember) []ProjectMemberDTO {
	dtos := make([]ProjectMemberDTO, len(members))
	for i, member := range members {
		dtos[i] = ToProjectMemberDTO(member)
	}
	return dtos
}

// ToProjectDTO converts a project and its member rows to DTO, resolving the
// acting user's role from their member row if present.
func ToProjectDTO(project models.Project, members []models.ProjectMember, actorID uint64) ProjectDTO {
	dto := ProjectDTO{
		ID:           project.ID,
		Title:        project.Title,
		Description:  project.Description,
		CreatedAt:    project.CreatedAt,
		UpdatedAt:    project.UpdatedAt,
		MembersCount: len(members),
		Members:      ToProjectMemberDTOs(members),
	}

	if project.CreatedBy.ID != 0 {
		creator := ToUserDTO(project.CreatedBy)
		dto.CreatedBy = &creator
	}

	for _, member := range members {
		if member.UserID == actorID {
			role := member.Role
			dto.UserRole = &role
			break
		}
	}

	return dto
}
