package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/middleware"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/models"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves account registration, login and logout.
type AuthHandler struct {
	DB         *gorm.DB
	JWTSecret  string
	Issuer     string
	TokenTTL   time.Duration
	BcryptCost int
}

func NewAuthHandler(db *gorm.DB, jwtSecret, issuer string, ttlHours, bcryptCost int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthHandler{
		DB:         db,
		JWTSecret:  jwtSecret,
		Issuer:     issuer,
		TokenTTL:   time.Duration(ttlHours) * time.Hour,
		BcryptCost: bcryptCost,
	}
}

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUser registers a new account.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		util.Error(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("LOWER(email) = LOWER(?)", req.Email).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to check existing users")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, "User with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	util.JSON(c, http.StatusCreated, util.Response{
		"message": fmt.Sprintf("User with email %s created successfully", user.Email),
	})
}

// Login authenticates an account and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		util.Error(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	var user models.User
	if err := h.DB.Where("LOWER(email) = LOWER(?)", req.Email).
		First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusUnauthorized, "Invalid email or password")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to load user")
		}
		return
	}

	// inactive accounts fail the same way as bad credentials
	if !user.IsActive {
		util.Error(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(h.TokenTTL),
	}
	if err := h.DB.Create(&session).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to create session")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, user.ID, session.ID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.SetCookie(middleware.SessionCookie, token, int(h.TokenTTL.Seconds()), "/", "", false, true)
	util.JSON(c, http.StatusOK, util.Response{
		"message": "Login successful",
		"token":   token,
	})
}

// Logout revokes the current session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.DB.Model(session).Update("revoked", true).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to revoke session")
		return
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	util.JSON(c, http.StatusOK, util.Response{"message": "Logged out"})
}

// GetMe returns the current user's account info.
func GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	util.JSON(c, http.StatusOK, util.Response{
		"user": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"is_staff":   user.IsStaff,
			"created_at": user.CreatedAt,
		},
	})
}
