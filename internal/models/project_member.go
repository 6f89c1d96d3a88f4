package models

import "time"

type ProjectRole string

const (
	RoleOwner  ProjectRole = "OWNER"
	RoleAdmin  ProjectRole = "ADMIN"
	RoleMember ProjectRole = "MEMBER"
)

// ValidRole reports whether role belongs to the recognized role set.
func ValidRole(role ProjectRole) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

type ProjectMember struct {
	ID        uint64      `gorm:"primarykey" json:"id"`
	UserID    uint64      `gorm:"not null;uniqueIndex:idx_member_user_project" json:"user_id"`
	ProjectID uint64      `gorm:"not null;uniqueIndex:idx_member_user_project" json:"project_id"`
	Role      ProjectRole `gorm:"type:varchar(10);not null;default:'MEMBER'" json:"role"`
	JoinedAt  time.Time   `gorm:"autoCreateTime" json:"joined_at"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
