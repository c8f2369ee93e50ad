package models

import "time"

// ProjectMember links a user to a project with a role label. The composite
// primary key keeps at most one row per (project, user) pair.
type ProjectMember struct {
	ProjectID uint      `gorm:"primaryKey" json:"project_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	Role      string    `gorm:"not null" json:"role"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}
