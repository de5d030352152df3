package main

import (
	"hotelbooker/config"
	"hotelbooker/helper"
	"hotelbooker/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down/drop/step-up) is required")
	}

	direction, err := helper.ParseDirection(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}

	cfg := config.Get()

	logger.Configure(os.Stdout, cfg)

	if err := helper.Run(cfg, direction); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
