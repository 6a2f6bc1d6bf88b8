package labs

import (
	"errors"
	"fmt"

	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/models"

	"gorm.io/gorm"
)

// Verify reports whether email currently has verified access to labID under
// token: either as the owner of the session or through an accepted invite.
// It is a pure read used by the companion socket server, which holds the
// out-of-band token instead of a login session.
func Verify(db *gorm.DB, email, labID, token string) (bool, error) {
	var count int64
	if err := db.Model(&models.LabSession{}).
		Joins("JOIN users ON users.id = lab_sessions.owner_id").
		Where("users.email = ? AND lab_sessions.lab_id = ? AND lab_sessions.verification_token = ?",
			email, labID, token).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("verify owner: %w", err)
	}
	if count > 0 {
		return true, nil
	}

	if err := db.Model(&models.CollaborationInvite{}).
		Joins("JOIN lab_sessions ON lab_sessions.lab_id = collaboration_invites.lab_id").
		Where("collaboration_invites.collaborator_email = ? AND collaboration_invites.accepted = ?", email, true).
		Where("lab_sessions.lab_id = ? AND lab_sessions.verification_token = ?", labID, token).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("verify collaborator: %w", err)
	}
	return count > 0, nil
}

// AccessibleLab returns the session for labID when user owns it or holds an
// accepted invite, ErrNoAccess otherwise.
func AccessibleLab(db *gorm.DB, user *models.User, labID string) (*models.LabSession, error) {
	var lab models.LabSession
	err := db.Where("lab_id = ? AND owner_id = ?", labID, user.ID).First(&lab).Error
	if err == nil {
		return &lab, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find owned lab: %w", err)
	}

	// not the owner: look for an accepted invite on this lab
	var count int64
	if err := db.Model(&models.CollaborationInvite{}).
		Where("lab_id = ? AND collaborator_email = ? AND accepted = ?", labID, user.Email, true).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("find accepted invite: %w", err)
	}
	if count == 0 {
		return nil, ErrNoAccess
	}

	if err := db.Where("lab_id = ?", labID).First(&lab).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAccess
		}
		return nil, fmt.Errorf("find shared lab: %w", err)
	}
	return &lab, nil
}
