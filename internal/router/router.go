package router

import (
	"net/http"

	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/config"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/handler"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/intent"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/logger"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/middleware"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and wires every endpoint.
func SetupRouter(cfg *config.Config, db *gorm.DB, classifier *intent.Classifier) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(logger.RequestLogger(), gin.Recovery())

	// wrong HTTP method on a known path answers 405, not 404
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		util.Error(c, http.StatusMethodNotAllowed, "Invalid request method")
	})

	api := r.Group("/api")

	// account endpoints (no session required)
	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.Issuer,
		cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/create_user", authHandler.CreateUser)
	api.POST("/login_user", authHandler.Login)

	// token-based verification for the companion socket server
	verificationHandler := handler.NewVerificationHandler(db)
	api.POST("/verify_lab_from_socket", verificationHandler.VerifyLabFromSocket)

	// intent classification is stateless and session-free
	intentHandler := handler.NewIntentHandler(classifier)
	api.POST("/predict_intentions", intentHandler.PredictIntentions)

	// everything below needs a login session
	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, db),
		middleware.AuditMiddleware(db),
	)

	protected.POST("/logout_user", authHandler.Logout)
	protected.GET("/me", handler.GetMe)

	labHandler := handler.NewLabHandler(db)
	protected.GET("/get_active_labs", labHandler.GetActiveLabs)
	protected.GET("/get_all_labs", labHandler.GetAllLabs)
	protected.POST("/start_lab", labHandler.StartLab)
	protected.POST("/rejoin_lab", labHandler.RejoinLab)
	protected.POST("/stop_lab", labHandler.StopLab)

	collabHandler := handler.NewCollaborationHandler(db)
	protected.POST("/invite_person", collabHandler.InvitePerson)
	protected.POST("/accept_collaboration", collabHandler.AcceptCollaboration)
	protected.GET("/get_all_collaborators_by_email", collabHandler.GetAllCollaboratorsByEmail)
	protected.GET("/get_all_emails", collabHandler.GetAllEmails)

	protected.POST("/get_email_and_verification", verificationHandler.GetEmailAndVerification)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/labs.xlsx", exportHandler.ExportLabsXLSX)

	logHandler := handler.NewLogHandler(db)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
