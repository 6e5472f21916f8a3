package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"polls-backend/api"
	"polls-backend/cache"
	"polls-backend/config"
	"polls-backend/database"
	"polls-backend/repository"
	"polls-backend/routes"
	"polls-backend/service"

	"golang.org/x/time/rate"
)

func main() {
	cfg := config.Load()

	if err := database.InitDB(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	var store repository.Store = repository.NewGormStore(database.DB)
	var locks *cache.LockService

	// Redis is optional: without it the server runs uncached and the
	// participant upsert relies on the unique index alone.
	redisClient, err := cache.Connect(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, running without cache: %v", err)
	} else {
		store = repository.NewCachedStore(store, cache.NewPollCache(redisClient))
		locks = cache.NewLockService(redisClient)
	}

	pollService := service.NewPollService(store)
	answerService := service.NewAnswerService(store, locks)

	submitLimiter := rate.NewLimiter(rate.Limit(cfg.SubmitRateLimit), cfg.SubmitBurst)

	pollCtl := api.NewPollController(pollService)
	answerCtl := api.NewAnswerController(answerService, submitLimiter)

	router := routes.SetupRouter(pollCtl, answerCtl)
	srv := routes.StartServer(router, cfg)

	// Block until interrupted, then drain.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if err := srv.Shutdown(10 * time.Second); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Println("Server stopped")
}
