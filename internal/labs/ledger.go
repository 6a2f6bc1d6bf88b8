package labs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/models"

	"gorm.io/gorm"
)

// Invite creates a pending CollaborationInvite from owner to email on labID.
// Fails with ErrSelfInvite when the owner invites their own email and with
// ErrNotOwner when the caller did not start the lab. An empty permission
// defaults to read.
func Invite(db *gorm.DB, owner *models.User, labID, email, permission string) (*models.LabSession, error) {
	if strings.EqualFold(strings.TrimSpace(email), owner.Email) {
		return nil, ErrSelfInvite
	}
	if permission == "" {
		permission = models.PermissionRead
	}

	var lab models.LabSession
	if err := db.Where("lab_id = ? AND owner_id = ?", labID, owner.ID).
		First(&lab).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotOwner
		}
		return nil, fmt.Errorf("find owned lab: %w", err)
	}

	invite := models.CollaborationInvite{
		LabID:             labID,
		CollaboratorEmail: strings.TrimSpace(email),
		Permission:        permission,
		Accepted:          false,
	}
	if err := db.Create(&invite).Error; err != nil {
		return nil, fmt.Errorf("create invite: %w", err)
	}
	return &lab, nil
}

// Accept flips the invite for (labID, user.Email) from pending to accepted.
// The transition is one-way and one-shot: ErrNoInvite when none exists,
// ErrInviteExpired when it was already accepted.
func Accept(db *gorm.DB, user *models.User, labID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var invite models.CollaborationInvite
		if err := tx.Where("lab_id = ? AND collaborator_email = ?", labID, user.Email).
			First(&invite).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoInvite
			}
			return fmt.Errorf("find invite: %w", err)
		}

		if invite.Accepted {
			return ErrInviteExpired
		}

		if err := tx.Model(&invite).Update("accepted", true).Error; err != nil {
			return fmt.Errorf("accept invite: %w", err)
		}
		return nil
	})
}

// PendingLabs lists lab IDs with a pending (not yet accepted) invite for the
// user's email.
func PendingLabs(db *gorm.DB, user *models.User) ([]string, error) {
	var labIDs []string
	if err := db.Model(&models.CollaborationInvite{}).
		Where("collaborator_email = ? AND accepted = ?", user.Email, false).
		Pluck("lab_id", &labIDs).Error; err != nil {
		return nil, fmt.Errorf("list pending invites: %w", err)
	}
	return labIDs, nil
}

// SharedLab is an active lab the user can access through an accepted invite.
type SharedLab struct {
	OwnerEmail string `json:"owner_email"`
	LabID      string `json:"lab_id"`
	LabName    string `json:"lab_name"`
	Permission string `json:"permission"`
}

// SharedLabs lists every lab session shared with the user through an
// accepted invite, with the owner's email and the granted permission.
func SharedLabs(db *gorm.DB, user *models.User) ([]SharedLab, error) {
	var shared []SharedLab
	if err := db.Model(&models.CollaborationInvite{}).
		Select("users.email AS owner_email, lab_sessions.lab_id, lab_sessions.lab_name, collaboration_invites.permission").
		Joins("JOIN lab_sessions ON lab_sessions.lab_id = collaboration_invites.lab_id").
		Joins("JOIN users ON users.id = lab_sessions.owner_id").
		Where("collaboration_invites.collaborator_email = ? AND collaboration_invites.accepted = ?", user.Email, true).
		Scan(&shared).Error; err != nil {
		return nil, fmt.Errorf("list shared labs: %w", err)
	}
	return shared, nil
}
