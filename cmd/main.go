package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"motoride/config"
	"motoride/pkg/bot"
	"motoride/pkg/logger"
	"motoride/service"
	"motoride/storage/postgres"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	pgStore, err := postgres.New(context.Background(), cfg, log)
	if err != nil {
		log.Error("Failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pgStore.Close()

	svc := service.New(pgStore, cfg, log)

	rideBot, err := bot.New(&cfg, svc, log)
	if err != nil {
		log.Error("Failed to initialize bot", logger.Error(err))
		os.Exit(1)
	}

	go func() {
		log.Info("API server starting", logger.Int("port", cfg.AppPort))
		if err := bot.RunServer(cfg, svc); err != nil {
			log.Error("API server stopped", logger.Error(err))
		}
	}()

	go rideBot.Start()

	log.Info("🚀 MotoRide backend is running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("Stopping bot and shutting down...")
}
