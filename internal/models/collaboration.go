package models

import "time"

// Permission levels a collaborator can hold on a lab session.
const (
	PermissionRead  = "read"
	PermissionWrite = "write"
	PermissionAdmin = "admin"
)

// ValidPermission reports whether p is one of the known permission levels.
func ValidPermission(p string) bool {
	return p == PermissionRead || p == PermissionWrite || p == PermissionAdmin
}

// CollaborationInvite is a directed invitation from a lab owner to a
// collaborator email. Accepted only ever transitions false -> true.
type CollaborationInvite struct {
	ID                uint   `gorm:"primaryKey"`
	LabID             string `gorm:"index;size:255;not null"`
	CollaboratorEmail string `gorm:"index;size:255;not null"`
	Permission        string `gorm:"size:16;not null;default:read"`
	Accepted          bool   `gorm:"not null;default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Lab LabSession `gorm:"foreignKey:LabID;references:LabID;constraint:OnDelete:CASCADE"`
}
