package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"clinic-backend/config"
	"clinic-backend/controllers"
	"clinic-backend/routes"
	"clinic-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	cfg := config.LoadSiteConfig()

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	db := config.DB
	log.Println("database connection established, migrations applied")

	// Redis is optional; a nil client disables the blog page cache.
	rdb := config.NewRedisClient()
	if rdb != nil {
		log.Println("redis connected, blog page cache enabled")
	}

	mailer := cfg.Mailer()

	appointmentService := services.NewAppointmentService(db, mailer, cfg)
	rightsService := services.NewRightsRequestService(db, mailer, cfg)
	blogService := services.NewBlogService(db)
	staffService := services.NewStaffService(db)
	consentService := services.NewConsentLogService(db)
	accountService := services.NewAccountService(db, cfg.JWTSecret)

	pagesController := controllers.NewPagesController(staffService, cfg)
	appointmentController := controllers.NewAppointmentController(appointmentService, cfg)
	rightsController := controllers.NewRightsRequestController(rightsService, cfg)
	blogController := controllers.NewBlogController(blogService, cfg)
	consentController := controllers.NewConsentController(consentService)
	adminController := controllers.NewAdminController(
		accountService, appointmentService, rightsService,
		blogService, staffService, consentService,
	)

	router := routes.SetupRouter(
		cfg, rdb,
		pagesController, appointmentController, rightsController,
		blogController, consentController, adminController,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped gracefully")
}
