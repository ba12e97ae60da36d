package main

import (
	"database/sql"
	"log"

	"github.com/redis/go-redis/v9"

	"imoveisBack/internal/config"
	"imoveisBack/internal/handlers"
	"imoveisBack/internal/repositories"
	"imoveisBack/internal/services"
	"imoveisBack/utils"
)

type application struct {
	errorLog        *log.Logger
	infoLog         *log.Logger
	signingKey      string
	db              *sql.DB
	sessionRepo     *repositories.SessionRepository
	propertyService *services.PropertyService
	statusHub       *StatusHub
	userHandler     *handlers.UserHandler
	propertyHandler *handlers.PropertyHandler
	favoriteHandler *handlers.FavoriteHandler
}

func initializeApp(db *sql.DB, rdb *redis.Client, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	storage := &utils.Storage{
		Endpoint:  cfg.Storage.Endpoint,
		Region:    cfg.Storage.Region,
		Bucket:    cfg.Storage.Bucket,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
	}

	tokenManager, err := utils.NewManager(cfg.JWT.SigningKey)
	if err != nil {
		errorLog.Fatal(err)
	}

	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	propertyRepo := repositories.PropertyRepository{DB: db}
	favoriteRepo := repositories.FavoriteRepository{DB: db}
	sessionRepo := repositories.SessionRepository{Client: rdb}

	// Services
	userService := &services.UserService{
		UserRepo:     &userRepo,
		SessionRepo:  &sessionRepo,
		TokenManager: tokenManager,
		SigningKey:   cfg.JWT.SigningKey,
	}
	propertyService := &services.PropertyService{PropertyRepo: &propertyRepo}
	favoriteService := &services.FavoriteService{FavoriteRepo: &favoriteRepo}

	// Live updates
	statusHub := NewStatusHub()

	// Handlers
	userHandler := &handlers.UserHandler{Service: userService, Storage: storage}
	propertyHandler := &handlers.PropertyHandler{
		Service:    propertyService,
		Storage:    storage,
		Notifier:   statusHub,
		SigningKey: cfg.JWT.SigningKey,
	}
	favoriteHandler := &handlers.FavoriteHandler{Service: favoriteService}

	return &application{
		errorLog:        errorLog,
		infoLog:         infoLog,
		signingKey:      cfg.JWT.SigningKey,
		db:              db,
		sessionRepo:     &sessionRepo,
		propertyService: propertyService,
		statusHub:       statusHub,
		userHandler:     userHandler,
		propertyHandler: propertyHandler,
		favoriteHandler: favoriteHandler,
	}
}

func openDB(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	return db, nil
}
