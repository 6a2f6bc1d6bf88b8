package handler

import (
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user placed by AuthMiddleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// currentSession pulls the login session placed by AuthMiddleware.
func currentSession(c *gin.Context) (*models.Session, bool) {
	v, ok := c.Get("currentSession")
	if !ok {
		return nil, false
	}
	session, ok := v.(*models.Session)
	if !ok || session == nil {
		return nil, false
	}
	return session, true
}
