package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/models"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler exports lab activity as a spreadsheet.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

// ExportLabsXLSX writes the caller's active labs and their invites as an
// xlsx workbook. Staff accounts get every lab.
func (h *ExportHandler) ExportLabsXLSX(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	labQuery := h.DB.Preload("Owner").Order("start_time DESC")
	if !user.IsStaff {
		labQuery = labQuery.Where("owner_id = ?", user.ID)
	}
	var sessions []models.LabSession
	if err := labQuery.Find(&sessions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to load labs")
		return
	}

	labIDs := make([]string, 0, len(sessions))
	for _, lab := range sessions {
		labIDs = append(labIDs, lab.LabID)
	}
	var invites []models.CollaborationInvite
	if len(labIDs) > 0 {
		if err := h.DB.Where("lab_id IN ?", labIDs).
			Order("lab_id").Find(&invites).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "Failed to load invites")
			return
		}
	}

	f := excelize.NewFile()

	labSheet := "Labs"
	index, err := f.NewSheet(labSheet)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to create worksheet")
		return
	}
	f.SetActiveSheet(index)

	labHeaders := []string{"Lab ID", "Lab Name", "Owner Email", "Start Time", "Max Duration (h)", "Verification Token"}
	for i, header := range labHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(labSheet, cell, header)
	}
	for idx, lab := range sessions {
		row := idx + 2
		f.SetCellValue(labSheet, fmt.Sprintf("A%d", row), lab.LabID)
		f.SetCellValue(labSheet, fmt.Sprintf("B%d", row), lab.LabName)
		f.SetCellValue(labSheet, fmt.Sprintf("C%d", row), lab.Owner.Email)
		f.SetCellValue(labSheet, fmt.Sprintf("D%d", row), lab.StartTime.Format(time.RFC3339))
		f.SetCellValue(labSheet, fmt.Sprintf("E%d", row), lab.MaxDuration.Hours())
		f.SetCellValue(labSheet, fmt.Sprintf("F%d", row), lab.VerificationToken)
	}
	f.SetColWidth(labSheet, "A", "B", 28)
	f.SetColWidth(labSheet, "C", "C", 28)
	f.SetColWidth(labSheet, "D", "D", 22)
	f.SetColWidth(labSheet, "E", "F", 18)

	inviteSheet := "Collaborations"
	if _, err := f.NewSheet(inviteSheet); err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to create worksheet")
		return
	}
	inviteHeaders := []string{"Lab ID", "Collaborator Email", "Permission", "Accepted"}
	for i, header := range inviteHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(inviteSheet, cell, header)
	}
	for idx, invite := range invites {
		row := idx + 2
		f.SetCellValue(inviteSheet, fmt.Sprintf("A%d", row), invite.LabID)
		f.SetCellValue(inviteSheet, fmt.Sprintf("B%d", row), invite.CollaboratorEmail)
		f.SetCellValue(inviteSheet, fmt.Sprintf("C%d", row), invite.Permission)
		f.SetCellValue(inviteSheet, fmt.Sprintf("D%d", row), invite.Accepted)
	}
	f.SetColWidth(inviteSheet, "A", "B", 28)
	f.SetColWidth(inviteSheet, "C", "D", 14)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"labs_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to export")
	}
}
