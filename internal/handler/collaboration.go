package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/labs"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/models"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CollaborationHandler serves the collaboration ledger endpoints.
type CollaborationHandler struct {
	DB *gorm.DB
}

func NewCollaborationHandler(db *gorm.DB) *CollaborationHandler {
	return &CollaborationHandler{DB: db}
}

type inviteReq struct {
	LabID       string `json:"lab_id"`
	CollabEmail string `json:"collab_email"`
	Permission  string `json:"permission"`
}

// InvitePerson invites a collaborator email to a lab the caller owns.
func (h *CollaborationHandler) InvitePerson(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req inviteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.LabID == "" || req.CollabEmail == "" {
		util.Error(c, http.StatusBadRequest, "Lab ID and collaborator email are required.")
		return
	}
	if req.Permission != "" && !models.ValidPermission(req.Permission) {
		util.Error(c, http.StatusBadRequest, "Invalid permission level")
		return
	}

	lab, err := labs.Invite(h.DB, user, req.LabID, req.CollabEmail, req.Permission)
	if err != nil {
		switch {
		case errors.Is(err, labs.ErrSelfInvite):
			util.Error(c, http.StatusBadRequest, "You can't invite yourself!")
		case errors.Is(err, labs.ErrNotOwner):
			util.Error(c, http.StatusForbidden, "You are not the owner of this lab.")
		default:
			util.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	util.JSON(c, http.StatusOK, util.Response{
		"success": fmt.Sprintf("%s invited to lab %s.", req.CollabEmail, lab.LabName),
	})
}

type acceptReq struct {
	LabID string `json:"lab_id"`
}

// AcceptCollaboration accepts the pending invite for the caller on a lab.
// Acceptance is one-shot: a second call gets an expired-invite error.
func (h *CollaborationHandler) AcceptCollaboration(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req acceptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.LabID == "" {
		util.Error(c, http.StatusBadRequest, "Lab ID is required.")
		return
	}

	if err := labs.Accept(h.DB, user, req.LabID); err != nil {
		switch {
		case errors.Is(err, labs.ErrNoInvite):
			util.Error(c, http.StatusNotFound, "No collaboration found for this lab and user.")
		case errors.Is(err, labs.ErrInviteExpired):
			util.Error(c, http.StatusNotFound, "Invite Expired")
		default:
			util.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	util.JSON(c, http.StatusOK, util.Response{
		"success": fmt.Sprintf("Collaboration for lab %s accepted by %s.", req.LabID, user.Email),
	})
}

// GetAllCollaboratorsByEmail lists lab IDs with pending invites for the
// caller's email.
func (h *CollaborationHandler) GetAllCollaboratorsByEmail(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	labIDs, err := labs.PendingLabs(h.DB, user)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	if len(labIDs) == 0 {
		util.JSON(c, http.StatusOK, util.Response{"message": "No pending collaborations found."})
		return
	}

	util.JSON(c, http.StatusOK, util.Response{"lab_ids": labIDs})
}

// GetAllEmails lists every registered email except the caller's, for
// populating the invite picker.
func (h *CollaborationHandler) GetAllEmails(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var emails []string
	if err := h.DB.Model(&models.User{}).
		Where("email <> ?", user.Email).
		Pluck("email", &emails).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to list emails")
		return
	}
	if emails == nil {
		emails = []string{}
	}

	util.JSON(c, http.StatusOK, util.Response{"emails": emails})
}
