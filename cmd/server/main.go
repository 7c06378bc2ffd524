package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/fornecedor-api/internal/config"
	"github.com/MKhiriev/fornecedor-api/internal/handler"
	"github.com/MKhiriev/fornecedor-api/internal/logger"
	"github.com/MKhiriev/fornecedor-api/internal/server"
	"github.com/MKhiriev/fornecedor-api/internal/service"
	"github.com/MKhiriev/fornecedor-api/internal/store"
	"github.com/MKhiriev/fornecedor-api/internal/tracing"
	"github.com/MKhiriev/fornecedor-api/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const flushTimeout = 5 * time.Second

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("fornecedor-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log = log.WithLevel(cfg.App.LogLevel)

	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	provider, err := tracing.NewProvider(ctx, cfg.Tracing, cfg.App.Version, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating tracer provider")
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()
		if err := provider.Shutdown(flushCtx); err != nil {
			log.Err(err).Msg("error flushing spans")
		}
	}()

	services, err := service.NewServices(storages, *cfg, provider.Tracer(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, provider.Tracer(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
