package main

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"autoshop/internal/api/router"
	"autoshop/internal/auth"
	"autoshop/internal/cache"
	"autoshop/internal/config"
	"autoshop/internal/core/repository"
	"autoshop/internal/core/service"
)

func main() {
	cfg := config.Load()

	// Connect to MongoDB
	mongoConfig := config.NewMongoConfig()
	db, err := config.ConnectMongoDB(mongoConfig)
	if err != nil {
		logrus.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := config.EnsureIndexes(db); err != nil {
		logrus.Fatalf("Failed to create indexes: %v", err)
	}

	// Optional Redis cache
	profileCache := cache.New(cfg.RedisURL)
	defer profileCache.Close()

	// Initialize repositories with MongoDB
	userRepo := repository.NewMongoUserRepository(db)
	vehicleRepo := repository.NewMongoVehicleRepository(db)
	recordRepo := repository.NewMongoServiceRecordRepository(db)

	// Token manager holds the signing secret for the process lifetime
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenLifetime)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokens)
	vehicleService := service.NewVehicleService(vehicleRepo)
	recordService := service.NewRecordService(recordRepo, vehicleRepo, userRepo, profileCache)

	// Initialize router
	r := router.NewRouter(authService, vehicleService, recordService, tokens)

	// Start server
	addr := cfg.Host + ":" + cfg.Port
	logrus.Infof("Server starting on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logrus.Fatalf("Server failed to start: %v", err)
	}
}
