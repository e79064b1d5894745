package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"arogyachain-server/internal/blockchain"
	"arogyachain-server/internal/config"
	"arogyachain-server/internal/handlers"
	"arogyachain-server/internal/middleware"
	"arogyachain-server/internal/models"
	"arogyachain-server/internal/repositories"
	"arogyachain-server/internal/services"
	"arogyachain-server/internal/storage"
)

// SetupRoutes configures the application routes.
func SetupRoutes(
	router *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	blobs storage.BlobStore,
	notary blockchain.Client,
	logger *zap.Logger,
) {
	recordRepo := repositories.NewRecordRepository(db)
	userRepo := repositories.NewUserRepository(db)

	uploadService := services.NewUploadService(recordRepo, userRepo, blobs, notary, cfg.VerifyBaseURL, logger)
	verifyService := services.NewVerificationService(recordRepo, notary, logger)

	authHandler := handlers.NewAuthHandler(db, cfg)
	recordHandler := handlers.NewRecordHandler(uploadService, verifyService, recordRepo)
	noteHandler := handlers.NewNoteHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		// Verification is public: anyone scanning a record's QR code may check it
		public.GET("/verify/:id", recordHandler.VerifyRecord)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		// Record routes
		recordRoutes := private.Group("/records")
		{
			// Doctors upload records for patients
			recordRoutes.POST("/upload", middleware.RoleAuthMiddleware(models.RoleDoctor), recordHandler.UploadRecord)

			// Both roles list their own records; scoping happens in the handler
			recordRoutes.GET("", recordHandler.ListRecords)

			// Record owner (patient or doctor) fetches a single record
			recordRoutes.GET("/:id", recordHandler.GetRecordByID)
		}

		// Note routes (patients only)
		noteRoutes := private.Group("/notes")
		noteRoutes.Use(middleware.RoleAuthMiddleware(models.RolePatient))
		{
			noteRoutes.POST("", noteHandler.CreateNote)
			noteRoutes.GET("", noteHandler.ListNotes)
			noteRoutes.PUT("/:id", noteHandler.UpdateNote)
			noteRoutes.DELETE("/:id", noteHandler.DeleteNote)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
