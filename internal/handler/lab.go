package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/labs"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/models"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// LabHandler serves the lab registry endpoints.
type LabHandler struct {
	DB *gorm.DB
}

func NewLabHandler(db *gorm.DB) *LabHandler {
	return &LabHandler{DB: db}
}

// GetActiveLabs lists labs shared with the caller through accepted invites.
func (h *LabHandler) GetActiveLabs(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	shared, err := labs.SharedLabs(h.DB, user)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	if shared == nil {
		shared = []labs.SharedLab{}
	}

	util.JSON(c, http.StatusOK, util.Response{"labs_shared": shared})
}

// GetAllLabs reports the full catalog with active/owned/time-remaining flags.
func (h *LabHandler) GetAllLabs(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	statuses, err := labs.CatalogStatuses(h.DB, user)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.JSON(c, http.StatusOK, util.Response{"labs": statuses})
}

type startLabReq struct {
	LabID         string   `json:"lab_id"`
	LabName       string   `json:"lab_name"`
	Collaborators []string `json:"collaborators"`
	TimeRestraint int      `json:"time_restraint"` // hours
}

// StartLab starts a new lab session and invites the listed collaborators.
func (h *LabHandler) StartLab(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req startLabReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.LabID == "" || req.LabName == "" {
		util.Fail(c, http.StatusBadRequest, "Lab ID and lab name are required")
		return
	}
	if req.TimeRestraint <= 0 {
		util.Fail(c, http.StatusBadRequest, "A positive time restraint is required")
		return
	}

	lab, err := labs.StartLab(h.DB, user, req.LabID, req.LabName, req.TimeRestraint, req.Collaborators)
	if err != nil {
		if errors.Is(err, labs.ErrLabActive) {
			util.Fail(c, http.StatusConflict, "Lab is already active")
			return
		}
		util.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	h.rememberToken(c, lab.VerificationToken)

	util.JSON(c, http.StatusOK, util.Response{
		"message":            fmt.Sprintf("Lab %s started successfully", lab.LabName),
		"verification_token": lab.VerificationToken,
		"success":            true,
	})
}

type rejoinLabReq struct {
	LabID string `json:"lab_id"`
}

// RejoinLab hands the original verification token back to the owner or an
// accepted collaborator.
func (h *LabHandler) RejoinLab(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req rejoinLabReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.LabID == "" {
		util.Fail(c, http.StatusBadRequest, "Lab ID is required")
		return
	}

	lab, err := labs.RejoinLab(h.DB, user, req.LabID)
	if err != nil {
		if errors.Is(err, labs.ErrNoAccess) {
			util.Fail(c, http.StatusNotFound, "No access or lab not found")
			return
		}
		util.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	h.rememberToken(c, lab.VerificationToken)

	util.JSON(c, http.StatusOK, util.Response{
		"message":            fmt.Sprintf("Lab '%s' rejoined successfully", lab.LabName),
		"verification_token": lab.VerificationToken,
		"success":            true,
	})
}

// StopLab ends a lab session; allowed for the owner or staff. The session's
// invites are deleted with it.
func (h *LabHandler) StopLab(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req rejoinLabReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.LabID == "" {
		util.Error(c, http.StatusBadRequest, "Lab ID is required")
		return
	}

	if err := labs.StopLab(h.DB, user, req.LabID); err != nil {
		switch {
		case errors.Is(err, labs.ErrNoAccess):
			util.Error(c, http.StatusNotFound, "Lab not found")
		case errors.Is(err, labs.ErrNotOwner):
			util.Error(c, http.StatusForbidden, "You are not the owner of this lab.")
		default:
			util.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	util.JSON(c, http.StatusOK, util.Response{
		"message": fmt.Sprintf("Lab %s stopped", req.LabID),
	})
}

// rememberToken stores the issued verification token on the caller's
// session row. A failure here does not fail the request, since the token
// was already handed back in the response body.
func (h *LabHandler) rememberToken(c *gin.Context, token string) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	if err := h.DB.Model(&models.Session{}).
		Where("id = ?", session.ID).
		Update("lab_token", token).Error; err != nil {
		log.Warn().Err(err).Str("session_id", session.ID).
			Msg("failed to store verification token on session")
	}
}
