package main

import (
	"context"
	"log"
	"os"
	"time"

	"tavolo/internal/auth"
	"tavolo/internal/caption"
	"tavolo/internal/cleanup"
	"tavolo/internal/db"
	"tavolo/internal/middleware"
	"tavolo/internal/notify"
	"tavolo/internal/storage"
	"tavolo/internal/submission"
	"tavolo/internal/wizard"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
		"R2_IMAGE_BUCKET",
		"R2_DOCUMENT_BUCKET",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── AUTH ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService)

	if err := authService.SeedAdmin(); err != nil {
		log.Fatal("❌ Admin seed failed:", err)
	}

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
	}

	// ───────────────────────── SUBMISSIONS ─────────────────────────
	submissionRepo := submission.NewPostgresRepository(pgDB)
	cleanupRepo := cleanup.NewRepository(pgDB)
	mailer := notify.NewMailerFromEnv()
	if mailer == nil {
		log.Println("RESEND_API_KEY not configured, submission emails disabled")
	}

	persister := submission.NewPersister(
		submissionRepo,
		r2Client,
		submission.Buckets{
			Images:    r2Client.ImageBucket,
			Documents: r2Client.DocumentBucket,
		},
		cleanupRepo,
		mailer,
	)

	// ───────────────────────── WIZARD ROUTES ─────────────────────────
	sessions := wizard.NewSessions(persister)
	wizardHandler := wizard.NewHandler(sessions)

	wizardGroup := r.Group("/wizard")
	{
		wizardGroup.GET("/fonts", wizardHandler.Fonts)
		wizardGroup.POST("/sessions", wizardHandler.CreateSession)
		wizardGroup.GET("/sessions/:id", wizardHandler.GetSession)
		wizardGroup.DELETE("/sessions/:id", wizardHandler.CancelSession)
		wizardGroup.POST("/sessions/:id/next", wizardHandler.Next)
		wizardGroup.POST("/sessions/:id/back", wizardHandler.Back)
		wizardGroup.PATCH("/sessions/:id/sections/:section", wizardHandler.UpdateSection)
		wizardGroup.POST("/sessions/:id/files/:field", wizardHandler.AttachFile)
	}

	// ───────────────────────── CAPTION ─────────────────────────
	captionHandler := caption.NewHandler(caption.NewGeminiClient())
	r.POST("/caption", captionHandler.Analyze)

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	editor := submission.NewEditor(submissionRepo)
	exporter := submission.NewExporter(
		submissionRepo,
		os.Getenv("EXPORT_LEGACY_FAQ_COMMENTS") == "true",
	)
	adminHandler := submission.NewHandler(editor, exporter)

	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireAdmin(),
	)
	{
		admin.GET("/submissions", adminHandler.List)
		admin.GET("/submissions/:id", adminHandler.Get)
		admin.PUT("/submissions/:id", adminHandler.Save)
		admin.POST("/submissions/:id/live", adminHandler.MarkLive)
		admin.GET("/submissions/:id/export", adminHandler.Export)
	}

	// ───────────────────────── CLEANUP WORKER ─────────────────────────
	cleanupService := cleanup.NewService(cleanupRepo, r2Client)
	go cleanupService.Run(context.Background())

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── SERVER ─────────────────────────
	log.Println("Server running on http://localhost:8000")
	if err := r.Run(":8000"); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
