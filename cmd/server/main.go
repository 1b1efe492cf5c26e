package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"roomshare-go/internal/config"
	"roomshare-go/internal/database"
	httpserver "roomshare-go/internal/http"
	"roomshare-go/internal/models"
	"roomshare-go/pkg/logging"
)

func main() {
	_ = godotenv.Load(".env")
	logging.Setup()

	cfg := config.Load()

	db, err := database.New(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Home{},
		&models.HomeMembership{},
		&models.Bill{},
		&models.BillShare{},
	); err != nil {
		slog.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	r := httpserver.NewServer(cfg, db)
	slog.Info("listening", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
