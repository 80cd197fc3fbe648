package recording_routers

import (
	"github.com/gin-gonic/gin"

	recordingApi "github.com/promptdeck/api/recording-api/api"
	internal_promptgen "github.com/promptdeck/api/recording-api/internal/promptgen"
	internal_service "github.com/promptdeck/api/recording-api/internal/service"
	internal_transcriber "github.com/promptdeck/api/recording-api/internal/transcriber"
	"github.com/promptdeck/config"
	calendar_client "github.com/promptdeck/pkg/clients/calendar"
	gemini_client "github.com/promptdeck/pkg/clients/gemini"
	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/connectors"
	"github.com/promptdeck/pkg/types"
)

// RecordingApiRoutes wires every HTTP surface of the recording service
// onto the engine.
func RecordingApiRoutes(
	cfg *config.AppConfig,
	engine *gin.Engine,
	logger commons.Logger,
	postgres connectors.PostgresConnector,
	storage connectors.StorageConnector,
	generator gemini_client.Generator,
) {
	logger.Info("Recording routes added to engine.")

	var transcriber internal_transcriber.Transcriber
	var promptGen *internal_promptgen.Generator
	if generator != nil {
		transcriber = internal_transcriber.NewGeminiTranscriber(generator, cfg.GeminiConfig.TranscriptionModel, logger)
		promptGen = internal_promptgen.NewGenerator(generator, cfg.GeminiConfig.PromptModel, logger)
	}

	recordings := internal_service.NewRecordingService(postgres, storage, transcriber, logger)
	assistants := internal_service.NewAssistantService(postgres, logger)
	users := internal_service.NewUserService(postgres, logger)
	api := recordingApi.NewRecordingApi(cfg, logger, recordings, assistants, users, promptGen,
		calendar_client.NewCalendarClient(logger),
		calendar_client.NewTokenVerifier(logger),
		calendar_client.NewOAuthExchanger(cfg.GoogleOAuth, logger),
	)

	transcripts := engine.Group("v1/audio-transcripts")
	{
		transcripts.GET("", api.ListRecordings)
		transcripts.POST("", api.SaveRecording)
		transcripts.GET("/:id", api.GetRecording)
		transcripts.DELETE("/:id", api.DeleteRecording)
		transcripts.POST("/:id/transcribe", api.TranscribeRecording)
	}

	prompts := engine.Group("v1/prompts")
	{
		prompts.POST("/generate", api.GenerateCanvasPrompt)
		prompts.PUT("/:promptId/favorite", api.TogglePromptFavorite)
		prompts.DELETE("/:promptId", api.DeletePrompt)
	}

	projects := engine.Group("v1/projects")
	{
		projects.POST("", api.CreateProject)
		projects.GET("", api.ListProjects)
		projects.POST("/:id/prompts/generate", api.GenerateProjectPrompts)
		projects.GET("/:id/prompts", api.ListProjectPrompts)
		projects.GET("/:id/prompts/stats", api.ProjectPromptStats)
	}

	calendar := engine.Group("v1/calendar", types.SessionMiddleware(cfg.Secret, logger))
	{
		calendar.GET("/events", api.CalendarEvents)
		calendar.GET("/auth-status", api.CalendarAuthStatus)
		calendar.GET("/auth-url", api.CalendarAuthURL)
	}

	// Google redirects the browser here; no session header rides along.
	engine.GET("v1/calendar/callback", api.CalendarOAuthCallback)

	engine.POST("v1/user/lookup", api.LookupUser)
}
