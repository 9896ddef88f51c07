package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pizzadelivery/cmd"
	"pizzadelivery/internal/adapters/out/postgres"
	"pizzadelivery/internal/core/application/usecases/queries"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; the environment wins over it.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: config.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB := openDatabase(ctx, config, logger)

	app, err := cmd.NewCompositionRoot(ctx, config, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	server := app.NewTCPServer()
	if err = server.Listen(ctx); err != nil {
		log.Fatalf("Failed to listen on %s: %v", config.TCPAddress(), err)
	}

	if err = app.JobManager().StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	e := startWebServer(app, config.HTTPAddress(), logger)

	logger.Info("Pizza delivery server started",
		"tcp", server.Addr().String(),
		"udp", config.UDPTarget(),
		"http", config.HTTPAddress(),
		"journal", gormDB != nil,
	)

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("TCP listener shutdown failed", "error", err)
		}
	}()

	if err = server.Serve(ctx); err != nil {
		logger.Error("TCP server stopped", "error", err)
	}

	shutdown(app, e, gormDB, logger)
}

func openDatabase(ctx context.Context, config cmd.Config, logger *slog.Logger) *gorm.DB {
	if !config.DB.Enabled() {
		logger.Info("DB_HOST not set, delivery journal disabled")
		return nil
	}

	db, err := postgres.Open(ctx, config.DB, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err = postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	return db
}

func startWebServer(app *cmd.CompositionRoot, address string, logger *slog.Logger) *echo.Echo {
	if address == "" {
		return nil
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	app.NewHTTPServer().RegisterRoutes(e)

	go func() {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Admin HTTP server stopped", "error", err)
		}
	}()

	return e
}

func shutdown(app *cmd.CompositionRoot, e *echo.Echo, gormDB *gorm.DB, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	app.JobManager().StopAll()

	if e != nil {
		if err := e.Shutdown(ctx); err != nil {
			logger.Warn("Admin HTTP shutdown failed", "error", err)
		}
	}

	stats, err := app.CreateGetStatsQueryHandler().Handle(ctx, queries.NewGetStatsQuery())
	if err == nil {
		logger.Info("Final state",
			"drivers", stats.Drivers,
			"customers", stats.Customers,
			"active_orders", stats.ActiveOrders,
			"completed_orders", stats.CompletedOrders,
		)
	}

	if err = app.Close(ctx); err != nil {
		logger.Warn("Failed to release resources", "error", err)
	}

	if gormDB != nil {
		if err = postgres.Close(gormDB); err != nil {
			logger.Warn("Failed to close database", "error", err)
		}
	}

	logger.Info("Server stopped")
}
