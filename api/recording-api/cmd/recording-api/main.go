package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	internal_entity "github.com/promptdeck/api/recording-api/internal/entity"
	recording_routers "github.com/promptdeck/api/recording-api/router"
	"github.com/promptdeck/config"
	gemini_client "github.com/promptdeck/pkg/clients/gemini"
	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/connectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load configuration: %v", err)
	}

	logger, err := commons.NewApplicationLogger(
		commons.Name(cfg.Name),
		commons.Level(cfg.LogLevel),
		commons.Path(cfg.LogPath),
	)
	if err != nil {
		log.Fatalf("unable to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	postgres, err := connectors.NewPostgresConnector(cfg.PostgresConfig, logger)
	if err != nil {
		logger.Errorf("unable to connect to postgres: %v", err)
		return
	}
	defer postgres.Close()

	if err := postgres.DB(ctx).AutoMigrate(
		&internal_entity.AudioTranscript{},
		&internal_entity.Project{},
		&internal_entity.ProjectAssistant{},
		&internal_entity.User{},
		&internal_entity.UserCalendarToken{},
	); err != nil {
		logger.Errorf("unable to migrate schema: %v", err)
		return
	}

	storage, err := connectors.NewStorageConnector(ctx, cfg.AssetStoreConfig, logger)
	if err != nil {
		logger.Errorf("unable to build storage connector: %v", err)
		return
	}

	// Missing Gemini credentials keep the service up; transcription and
	// prompt generation report their own configuration errors.
	var generator gemini_client.Generator
	if cfg.GeminiConfig.ApiKey != "" {
		generator, err = gemini_client.NewClient(ctx, cfg.GeminiConfig, logger)
		if err != nil {
			logger.Errorf("unable to build gemini client: %v", err)
			return
		}
	} else {
		logger.Warn("gemini api key not configured, transcription disabled")
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	recording_routers.HealthCheckRoutes(cfg, engine, logger, postgres)
	recording_routers.RecordingApiRoutes(cfg, engine, logger, postgres, storage, generator)

	address := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	logger.Infof("%s listening on %s", cfg.Name, address)
	if err := engine.Run(address); err != nil {
		logger.Errorf("server stopped: %v", err)
	}
}
