package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/secondchance/secondchance/internal/auth"
	"github.com/secondchance/secondchance/internal/config"
	"github.com/secondchance/secondchance/internal/flagx"
	"github.com/secondchance/secondchance/internal/server"
	"github.com/secondchance/secondchance/internal/server/handlers"
	"github.com/secondchance/secondchance/internal/server/storage"
	"github.com/secondchance/secondchance/internal/server/storage/boltdb"
	"github.com/secondchance/secondchance/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	showVersion := fs.Bool("version", false, "Show version information")
	_ = fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-version"}))

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "secondchance-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	userStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer userStorage.Close()

	logger.Info("users store ready", "engine", cfg.DBEngine, "path", cfg.DBPath)

	issuer, err := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("token issuer: %w", err)
	}

	router := server.NewRouter(server.RouterConfig{
		Logger:          logger,
		Auth:            handlers.NewAuthHandler(logger, userStorage, issuer),
		Health:          handlers.NewHealthHandler(logger, Version),
		RateLimit:       cfg.RateLimit,
		RateLimitWindow: cfg.RateLimitWindow,
	})

	srv := server.New(logger, cfg.Address, router, cfg.ShutdownTimeout)
	return srv.Run(ctx)
}

func openStorage(ctx context.Context, cfg *config.Config) (storage.UserStorage, error) {
	switch cfg.DBEngine {
	case config.EngineBolt:
		return boltdb.New(ctx, cfg.DBPath)
	default:
		return sqlite.New(ctx, cfg.DBPath)
	}
}

func printVersion() {
	fmt.Printf("SecondChance Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
