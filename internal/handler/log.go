package handler

import (
	"net/http"
	"strconv"

	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/models"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LogHandler serves the audit trail.
type LogHandler struct {
	DB *gorm.DB
}

func NewLogHandler(db *gorm.DB) *LogHandler {
	return &LogHandler{DB: db}
}

// ListLogs returns recent audit entries, newest first. Staff only.
func (h *LogHandler) ListLogs(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	if !user.IsStaff {
		util.Error(c, http.StatusForbidden, "Staff access required")
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 500 {
		limit = 500
	}

	var entries []models.AuditLog
	if err := h.DB.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to load logs")
		return
	}

	logs := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		logs = append(logs, gin.H{
			"id":         entry.ID,
			"user_id":    entry.UserID,
			"method":     entry.Method,
			"path":       entry.Path,
			"action":     entry.Action,
			"ip":         entry.IP,
			"created_at": entry.CreatedAt,
		})
	}

	util.JSON(c, http.StatusOK, util.Response{"logs": logs})
}
