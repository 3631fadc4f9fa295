package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/rs/cors"

	"phonebook/config"
	_ "phonebook/docs"
	"phonebook/internal/handlers"
	"phonebook/internal/repositories"
	"phonebook/internal/services"
	"phonebook/internal/utils"
	"phonebook/internal/wsnotify"
)

// @title Phonebook API
// @version 1.0
// @description Contact store with create, list, update and delete over a single contacts table
// @BasePath /api
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	utils.ConfigureLogger(cfg.LogLevel, cfg.LogFormat, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	repo, err := repositories.Open(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("Error opening %s backend: %v", cfg.Backend, err)
	}
	defer repo.Close()

	contacts := services.NewContactService(repo,
		services.WithSortKey(cfg.SortKey),
		services.WithOperationTimeout(cfg.OperationTimeout),
		services.WithNotifier(wsnotify.Manager),
	)

	var exports *services.ExportService
	if cfg.S3Config.Enabled() {
		s3Service, err := services.NewS3Service(cfg.S3Config)
		if err != nil {
			utils.LogError("Error creating S3 service, export disabled: %v", err)
		} else {
			exports = services.NewExportService(contacts, s3Service)
		}
	}

	httpHandler := handlers.NewHTTPHandler(contacts, exports)
	router := handlers.NewRouter(httpHandler, wsnotify.Manager, metrics.NewSet())

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.RequestLogger(c.Handler(router)),
		ReadHeaderTimeout: 15 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		utils.LogInfo("Server is running on http://localhost:%s (backend=%s, sort=%s)", cfg.Port, cfg.Backend, cfg.SortKey)
		utils.LogInfo("Swagger UI available at: http://localhost:%s/api/swagger-ui/", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	<-stop
	utils.LogInfo("Shutting down gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		utils.LogError("Error shutting down server: %v", err)
	}

	utils.LogInfo("Server stopped successfully")
}
