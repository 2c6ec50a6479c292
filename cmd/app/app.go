package main

import (
	"os"

	"github.com/DRSN-tech/cart-service/internal/app"
	config "github.com/DRSN-tech/cart-service/internal/cfg"
	"github.com/DRSN-tech/cart-service/pkg/logger"
)

// @title Cart Service API
// @version 1.0
// @description Управление корзиной с локальным снапшотом и best-effort синхронизацией с витриной
// @BasePath /api/v1
func main() {
	log := logger.NewZapLogger(os.Getenv("LOG_LEVEL"))
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	app.Run(cfg, log)
}
