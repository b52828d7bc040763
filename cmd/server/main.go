package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gng-scout/athlete-directory-service/internal/config"
	"github.com/gng-scout/athlete-directory-service/internal/logging"
	"github.com/gng-scout/athlete-directory-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	dotEnvErr := config.LoadDotEnv(os.Getenv("ENV_FILE"))

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "athlete-directory-service",
		Version: appVersion,
	})
	if dotEnvErr != nil {
		logging.Warn(logger, "env file ignored", logging.FieldError, dotEnvErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logging.Error(logger, "server setup failed", err)
		stop()
		os.Exit(1)
	}
	srv.Run(ctx, stop)
}
