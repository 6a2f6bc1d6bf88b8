package models

import "time"

// LabSession represents one running instance of a lab exercise.
//
// LabID is the primary key: at most one active session may exist per lab,
// and the uniqueness is enforced by the storage layer rather than only by a
// pre-insert existence check.
type LabSession struct {
	LabID              string        `gorm:"primaryKey;size:255"`
	LabName            string        `gorm:"size:255;not null"`
	OwnerID            uint          `gorm:"index;not null"`
	StartTime          time.Time     `gorm:"not null"`
	MaxDuration        time.Duration `gorm:"not null"` // stored as nanoseconds
	AllowCollaboration bool          `gorm:"not null;default:false"`
	VerificationToken  string        `gorm:"size:12;not null"`
	CreatedAt          time.Time

	Owner User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// ExpiresAt is the advisory expiry of the session. Nothing deletes the row
// when it passes; callers compute remaining time at read time.
func (l *LabSession) ExpiresAt() time.Time {
	return l.StartTime.Add(l.MaxDuration)
}

// TimeRemaining returns whole seconds left until expiry, clamped at zero.
func (l *LabSession) TimeRemaining(now time.Time) int64 {
	remaining := l.ExpiresAt().Sub(now)
	if remaining < 0 {
		return 0
	}
	return int64(remaining.Seconds())
}
