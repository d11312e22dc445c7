package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := mustOpenDatabase(configs)

	app := cmd.NewCompositionRoot(configs, db, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startOrderPaidConsumer(ctx, app)
	startWebServer(ctx, app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.ConfigFromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	db, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err = db.AutoMigrate(postgres.Models()...); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	return db
}

func startOrderPaidConsumer(ctx context.Context, app *cmd.CompositionRoot) {
	consumer, err := app.CreateOrderPaidConsumer()
	if err != nil {
		log.Fatalf("Failed to create order paid consumer: %v", err)
	}
	if consumer == nil {
		log.Warn("KAFKA_HOST is not set, order paid events are not consumed")
		return
	}

	go func() {
		consumer.Run(ctx)
		if err := consumer.Close(); err != nil {
			log.Errorf("Failed to close order paid consumer: %v", err)
		}
	}()
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string) {
	e, err := app.CreateRouter()
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
