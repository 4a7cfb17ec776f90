package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mhbagheri-99/e-commerce/internal/client"
	"github.com/mhbagheri-99/e-commerce/internal/config"
	"github.com/mhbagheri-99/e-commerce/internal/repository"
	"github.com/mhbagheri-99/e-commerce/internal/server"
	"github.com/mhbagheri-99/e-commerce/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db, err := client.InitDBClient(&cfg.Database)
	if err != nil {
		log.Fatal("init database: ", err)
	}

	paymentClient := client.NewPaymentClient(&cfg.Payment)
	emailClient := client.NewEmailClient(&cfg.Email)

	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	discountCodeRepo := repository.NewDiscountCodeRepository(db)
	verificationRepo := repository.NewDownloadVerificationRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)

	checkoutService := service.NewCheckoutService(
		paymentClient,
		productRepo,
		orderRepo,
		discountCodeRepo,
		verificationRepo,
	)
	catalogService := service.NewCatalogService(productRepo)
	fulfillmentService := service.NewFulfillmentService(
		db,
		paymentClient,
		emailClient,
		cfg.BaseURL,
		cfg.Email.From,
		cfg.Webhook.Dedupe,
		productRepo,
		userRepo,
		orderRepo,
		verificationRepo,
		webhookEventRepo,
	)
	orderHistoryService := service.NewOrderHistoryService(
		emailClient,
		cfg.BaseURL,
		cfg.Email.From,
		userRepo,
		orderRepo,
		verificationRepo,
	)
	adminService := service.NewAdminService(productRepo, discountCodeRepo, userRepo)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(
		cfg,
		checkoutService,
		catalogService,
		fulfillmentService,
		orderHistoryService,
		adminService,
	)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
