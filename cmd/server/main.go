package main

import (
	"log"
	"net/http"

	_ "authapp/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"authapp/internal/auth"
	"authapp/internal/cache"
	"authapp/internal/config"
	"authapp/internal/db"
	"authapp/internal/handler"
	"authapp/internal/mail"
	"authapp/internal/model"
	"authapp/internal/oauth"
	"authapp/internal/repository"
	"authapp/internal/router"
	"authapp/internal/service"
)

// @title Auth App API
// @version 1.0
// @description Authentication service with credential and OAuth sign-in, email verification, profiles, posts, and an AI chat proxy.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Post{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	stateStore := auth.NewStateStore(cacheClient)

	// Outbound collaborators
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	mailService := mail.NewService(mailer, cfg.BaseURL)

	providers := oauth.Registry{}
	if cfg.GitHubClientID != "" {
		providers["github"] = oauth.NewGitHub(cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.BaseURL)
	}
	if cfg.GoogleClientID != "" {
		providers["google"] = oauth.NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.BaseURL)
	}

	// Services
	authService := service.NewAuthService(userRepo, jwtService, mailService, cfg.GenericLoginErrors)
	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo)
	chatService := service.NewChatService(cfg.LLMBaseURL, cfg.LLMToken, cfg.LLMModel)
	uploadService := service.NewUploadService(cfg.ImgurClientID)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, providers, stateStore)
	userHandler := handler.NewUserHandler(userService, uploadService)
	postHandler := handler.NewPostHandler(postService)
	chatHandler := handler.NewChatHandler(chatService)

	// Register routes
	router.Register(e, cfg, authHandler, userHandler, postHandler, chatHandler)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: http://%s/swagger/index.html", cfg.SwaggerHost)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
