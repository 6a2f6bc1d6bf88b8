package handler

import (
	"errors"
	"net/http"

	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/labs"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// VerificationHandler serves the verification gateway endpoints.
type VerificationHandler struct {
	DB *gorm.DB
}

func NewVerificationHandler(db *gorm.DB) *VerificationHandler {
	return &VerificationHandler{DB: db}
}

type getVerificationReq struct {
	LabID string `json:"lab_id"`
}

// GetEmailAndVerification returns the verification token for a lab the
// caller owns or has accepted access to, for display and sharing.
func (h *VerificationHandler) GetEmailAndVerification(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req getVerificationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.LabID == "" {
		util.Error(c, http.StatusBadRequest, "Lab ID is required")
		return
	}

	lab, err := labs.AccessibleLab(h.DB, user, req.LabID)
	if err != nil {
		if errors.Is(err, labs.ErrNoAccess) {
			util.Error(c, http.StatusNotFound, "Lab not found or access denied")
			return
		}
		util.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.JSON(c, http.StatusOK, util.Response{
		"verification_token": lab.VerificationToken,
		"user_email":         user.Email,
		"lab_id":             lab.LabID,
	})
}

type verifyReq struct {
	Email             string `json:"email"`
	VerificationToken string `json:"verification_token"`
	LabID             string `json:"lab_id"`
}

// VerifyLabFromSocket answers whether the given email + token pair has
// verified access to the lab. Called by the companion socket server, which
// has no login session; the token is the credential.
func (h *VerificationHandler) VerifyLabFromSocket(c *gin.Context) {
	var req verifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.Email == "" || req.VerificationToken == "" || req.LabID == "" {
		util.Fail(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	verified, err := labs.Verify(h.DB, req.Email, req.LabID, req.VerificationToken)
	if err != nil {
		util.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	if !verified {
		util.Fail(c, http.StatusNotFound, "Lab not found or verification failed")
		return
	}

	util.JSON(c, http.StatusOK, util.Response{"success": true})
}
