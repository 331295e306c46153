package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/bootstrap"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/database"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/env"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/logging"
)

func main() {
	mainCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defaultLogger := logging.StdoutLogger

	_ = godotenv.Load()

	httpPort := ":8080"
	jwtSecret := "dev-secret"
	databaseSettings := database.PostgresSettings{
		User:       "admin",
		Password:   "password",
		Host:       "localhost",
		Port:       "5432",
		DBName:     "vending_db",
		SSlEnabled: false,
	}

	env.TrySetFromEnv(env.EnvHttpPort, &httpPort)
	env.TrySetFromEnv(env.EnvJwtSecret, &jwtSecret)
	env.TrySetFromEnv(env.EnvDatabaseHost, &databaseSettings.Host)
	env.TrySetFromEnv(env.EnvDatabasePort, &databaseSettings.Port)
	env.TrySetFromEnv(env.EnvDatabaseUser, &databaseSettings.User)
	env.TrySetFromEnv(env.EnvDatabasePassword, &databaseSettings.Password)
	env.TrySetFromEnv(env.EnvDatabaseName, &databaseSettings.DBName)

	cfg := bootstrap.VendingConfig{
		DbSettings: databaseSettings,
		HttpPort:   httpPort,
		JwtSecret:  jwtSecret,
	}

	app := bootstrap.NewVendingApp(cfg, defaultLogger)

	if err := app.Run(mainCtx); err != nil {
		defaultLogger.Error("application stopped with error", "error", err.Error())
	}

	app.Shutdown()
}
