package main

import (
	"context"
	"fmt"

	"motoride/config"
	"motoride/pkg/logger"
	"motoride/storage/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	pg, err := postgres.New(context.Background(), cfg, log)

	if err != nil {
		panic(err)
	}
	defer pg.Close()

	// Drivers and bookings reference accounts, so CASCADE cleans them up too.
	_, err = pg.GetPool().Exec(context.Background(), "TRUNCATE TABLE accounts, drivers, bookings CASCADE")
	if err != nil {
		log.Error(fmt.Sprintf("Failed to truncate tables: %v", err))
	} else {
		log.Info("Successfully truncated accounts, drivers, and bookings tables.")
	}
}
