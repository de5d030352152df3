package main

import (
	"hotelbooker/config"
	"hotelbooker/di"
	"hotelbooker/helper"
	"hotelbooker/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

// @title Hotel Booker API
// @version 1.0
// @description Hotel listings, guest bookings and Cashfree payments.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(os.Stdout, cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
