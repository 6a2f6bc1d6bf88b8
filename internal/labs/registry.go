package labs

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/models"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/util"

	"gorm.io/gorm"
)

// StartLab creates a new LabSession owned by owner with a fresh verification
// token, plus a pending write-permission invite for every collaborator
// email. Entries matching the owner's own email are skipped.
//
// Returns ErrLabActive when a session with this lab ID already exists. The
// existence pre-check and the insert run in one transaction, and lab_id is
// the table's primary key, so a racing creator loses on the constraint
// rather than slipping past the check.
func StartLab(db *gorm.DB, owner *models.User, labID, labName string, durationHours int, collaborators []string) (*models.LabSession, error) {
	token, err := util.GenerateVerificationToken()
	if err != nil {
		return nil, fmt.Errorf("generate verification token: %w", err)
	}

	lab := models.LabSession{
		LabID:              labID,
		LabName:            labName,
		OwnerID:            owner.ID,
		StartTime:          time.Now(),
		MaxDuration:        time.Duration(durationHours) * time.Hour,
		AllowCollaboration: true,
		VerificationToken:  token,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.LabSession{}).
			Where("lab_id = ?", labID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check active lab: %w", err)
		}
		if count > 0 {
			return ErrLabActive
		}

		if err := tx.Create(&lab).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrLabActive
			}
			return fmt.Errorf("create lab session: %w", err)
		}

		for _, email := range collaborators {
			email = strings.TrimSpace(email)
			if email == "" || strings.EqualFold(email, owner.Email) {
				continue
			}
			invite := models.CollaborationInvite{
				LabID:             labID,
				CollaboratorEmail: email,
				Permission:        models.PermissionWrite,
				Accepted:          false,
			}
			if err := tx.Create(&invite).Error; err != nil {
				return fmt.Errorf("create invite for %s: %w", email, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &lab, nil
}

// CatalogStatus reports one catalog entry's live state for get_all_labs.
type CatalogStatus struct {
	LabID         string `json:"lab_id"`
	Name          string `json:"name"`
	Active        bool   `json:"active"`
	TimeRemaining int64  `json:"time_remaining"`
	OwnedByUser   bool   `json:"owned_by_user"`
}

// CatalogStatuses reports, for every catalog entry, whether a session is
// active, whether user owns it, and the seconds remaining until its
// advisory expiry. Active is reported separately from TimeRemaining: the
// expiry is advisory only, so a session past it is still active (and still
// blocks start_lab) until someone stops it.
func CatalogStatuses(db *gorm.DB, user *models.User) ([]CatalogStatus, error) {
	var active []models.LabSession
	if err := db.Find(&active).Error; err != nil {
		return nil, fmt.Errorf("list active labs: %w", err)
	}

	byID := make(map[string]*models.LabSession, len(active))
	for i := range active {
		byID[active[i].LabID] = &active[i]
	}

	now := time.Now()
	statuses := make([]CatalogStatus, 0, len(Catalog))
	for _, entry := range Catalog {
		status := CatalogStatus{LabID: entry.ID, Name: entry.Name}
		if lab, ok := byID[entry.ID]; ok {
			status.Active = true
			status.TimeRemaining = lab.TimeRemaining(now)
			status.OwnedByUser = lab.OwnerID == user.ID
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// RejoinLab returns the existing session for labID if user owns it or holds
// an accepted invite, ErrNoAccess otherwise. The token it carries is the one
// issued at start; rejoining never rotates it.
func RejoinLab(db *gorm.DB, user *models.User, labID string) (*models.LabSession, error) {
	return AccessibleLab(db, user, labID)
}

// StopLab deletes the session for labID together with its invites. Only the
// owner or a staff account may stop a lab.
func StopLab(db *gorm.DB, user *models.User, labID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var lab models.LabSession
		if err := tx.Where("lab_id = ?", labID).First(&lab).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoAccess
			}
			return fmt.Errorf("find lab: %w", err)
		}

		if lab.OwnerID != user.ID && !user.IsStaff {
			return ErrNotOwner
		}

		if err := tx.Where("lab_id = ?", labID).
			Delete(&models.CollaborationInvite{}).Error; err != nil {
			return fmt.Errorf("delete invites: %w", err)
		}
		if err := tx.Delete(&lab).Error; err != nil {
			return fmt.Errorf("delete lab: %w", err)
		}
		return nil
	})
}
