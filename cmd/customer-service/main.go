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

	"github.com/AlexP8on7/FullStack-Bank-Project/internal/customer/handler"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/customer/repository"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/customer/service"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/clients"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/middleware"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/mongodb"
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

	bankClient := clients.NewBankClient(getEnv("BANK_SERVICE_URL", "http://localhost:8081"))
	receiptClient := clients.NewReceiptClient(getEnv("RECEIPT_SERVICE_URL", "http://localhost:8082"))

	repo := repository.NewCustomerRepository(db.Collection("customers"), db.Collection("counters"))
	customerSvc := service.NewCustomerService(repo, bankClient, receiptClient)
	customerHandler := handler.NewCustomerHandler(customerSvc)

	router := gin.Default()
	router.Use(middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "customer-service"})
	})
	customerHandler.RegisterRoutes(router)

	port := getEnv("PORT", "8080")
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

	log.Printf("Customer service starting on port %s", port)
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
