package main

import (
	"log"
	"strconv"
	"time"

	"github.com/almahdy86/t-event/internal/config"
	"github.com/almahdy86/t-event/internal/database"
	"github.com/almahdy86/t-event/internal/handlers"
	"github.com/almahdy86/t-event/internal/middleware"
	"github.com/almahdy86/t-event/internal/models"
	"github.com/almahdy86/t-event/internal/services"
	"github.com/almahdy86/t-event/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Event Companion API
// @version         1.0
// @description     Real-time backend for the event-day companion app: registration, trivia, gallery, lottery and moderation
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()
	presence := ws.NewPresence()

	deadlineSec, _ := strconv.Atoi(cfg.AnswerDeadline)
	if deadlineSec < 0 {
		deadlineSec = 0
	}

	authService := services.NewAuthService(db, cfg.JWTSecret)
	participantService := services.NewParticipantService(db)
	activityService := services.NewActivityService(db)
	questionService := services.NewQuestionService(db)
	answerService := services.NewAnswerService(db, time.Duration(deadlineSec)*time.Second)
	photoService := services.NewPhotoService(db)
	lotteryService := services.NewLotteryService(db)
	notificationService := services.NewNotificationService(db)
	settingsService := services.NewSettingsService(db)
	statsService := services.NewStatsService(db)

	if err := authService.EnsureDefaultAdmin(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminFullName); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	if err := activityService.Seed([]string{
		models.ActivityTrivia,
		models.ActivityGallery,
		models.ActivityLottery,
		models.ActivityFinale,
	}); err != nil {
		log.Fatalf("failed to seed activities: %v", err)
	}

	authHandler := handlers.NewAuthHandler(authService)
	participantHandler := handlers.NewParticipantHandler(participantService, hub)
	activityHandler := handlers.NewActivityHandler(activityService, hub)
	questionHandler := handlers.NewQuestionHandler(questionService, hub)
	photoHandler := handlers.NewPhotoHandler(photoService, participantService, hub)
	notificationHandler := handlers.NewNotificationHandler(notificationService, hub)
	lotteryHandler := handlers.NewLotteryHandler(lotteryService)
	statsHandler := handlers.NewStatsHandler(statsService, answerService, presence)
	settingsHandler := handlers.NewSettingsHandler(settingsService, hub)
	wsHandler := handlers.NewWSHandler(hub, presence, participantService, answerService, photoService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Static("/uploads", "/uploads")
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws", wsHandler.HandleWebSocket)

	api := r.Group("/api/v1")
	{
		api.POST("/participants", participantHandler.Register)
		api.GET("/participants/:uid", participantHandler.GetByUID)
		api.GET("/activities", activityHandler.List)
		api.GET("/questions/active", questionHandler.GetActive)
		api.GET("/photos", photoHandler.ListApproved)
		api.POST("/photos", photoHandler.Create)
		api.GET("/leaderboard", statsHandler.Leaderboard)
		api.GET("/settings", settingsHandler.GetSettings)

		admin := api.Group("/admin")
		admin.POST("/login", authHandler.Login)

		protected := admin.Group("")
		protected.Use(middleware.JWTAuth(authService))
		{
			protected.GET("/stats", statsHandler.Stats)
			protected.POST("/activities/toggle", activityHandler.Toggle)

			protected.GET("/questions", questionHandler.List)
			protected.POST("/questions", questionHandler.Create)
			protected.PUT("/questions/:id", questionHandler.Update)
			protected.DELETE("/questions/:id", questionHandler.Delete)
			protected.POST("/questions/:id/activate", questionHandler.Activate)

			protected.GET("/photos/pending", photoHandler.ListPending)
			protected.POST("/photos/:id/approve", photoHandler.Approve)
			protected.DELETE("/photos/:id", photoHandler.Delete)

			protected.POST("/notifications", notificationHandler.Send)

			protected.GET("/participants", participantHandler.List)
			protected.DELETE("/participants/:id", participantHandler.Delete)

			protected.GET("/lottery/eligible", lotteryHandler.Eligible)
			protected.POST("/lottery/draw", lotteryHandler.Draw)

			protected.POST("/settings", settingsHandler.UpdateSetting)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
