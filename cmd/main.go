// Package main provides the API to manage employee benefits and value
// transfers between them.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/go-ald/benefit-bank/cmd/httpserver"
	"github.com/go-ald/benefit-bank/internal/middleware"
	"github.com/go-ald/benefit-bank/pkg/configpkg"
	"github.com/go-ald/benefit-bank/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Str("strategy", server.Config.TransferStrategy).Msg("BENEFIT API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
