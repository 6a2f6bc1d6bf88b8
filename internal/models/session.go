package models

import "time"

// Session stores user login sessions (for logout, invalidation, audit).
type Session struct {
	ID        string    `gorm:"primaryKey;size:64"` // UUID
	UserID    uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Revoked   bool      `gorm:"index;not null"`
	CreatedAt time.Time

	// LabToken remembers the verification token most recently issued to
	// this session by start_lab or rejoin_lab.
	LabToken string `gorm:"size:12"`

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
