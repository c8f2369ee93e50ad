package models

import "time"

type Project struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description *string    `json:"description"`
	Status      string     `gorm:"not null" json:"status"`
	Priority    string     `gorm:"not null" json:"priority"`
	ProgressPct int        `gorm:"not null;default:0" json:"progress_pct"`
	Deadline    *time.Time `json:"deadline"`
	ManagerID   uint       `gorm:"not null;index" json:"manager_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relationships
	Manager User            `gorm:"foreignKey:ManagerID" json:"-"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
