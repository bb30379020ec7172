package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/AlexP8on7/FullStack-Bank-Project/internal/bank/handler"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/bank/repository"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/bank/service"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/clients"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/middleware"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/models"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/mongodb"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/rediscache"
)

func main() {
	_ = godotenv.Load()

	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017")
	mongoDB := getEnv("MONGO_DB", "bam_bank")
	db, err := mongodb.NewClient(mongoURI, mongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to mongodb: %v", err)
	}
	defer db.Close()

	// Account view cache. Optional: without Redis every read hits the store.
	var cache service.AccountCache
	if redisAddr := getEnv("REDIS_ADDR", ""); redisAddr != "" {
		rdb, err := rediscache.NewClient(redisAddr, "", 0)
		if err != nil {
			log.Printf("Redis unavailable, running uncached: %v", err)
		} else {
			defer rdb.Close()
			cache = rediscache.NewViewCache[models.Account](rdb, 5*time.Minute)
		}
	}

	receiptClient := clients.NewReceiptClient(getEnv("RECEIPT_SERVICE_URL", "http://localhost:8082"))

	repo := repository.NewAccountRepository(db.Collection("accounts"))
	accountSvc := service.NewAccountService(repo, receiptClient, cache)
	accountHandler := handler.NewAccountHandler(accountSvc)

	router := gin.Default()
	router.Use(middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "bank-service"})
	})
	accountHandler.RegisterRoutes(router)

	port := getEnv("PORT", "8081")
	srv := &http.Server{Addr: ":" + port, Handler: router}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Bank service starting on port %s", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
