package recording_api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	internal_promptgen "github.com/promptdeck/api/recording-api/internal/promptgen"
	internal_service "github.com/promptdeck/api/recording-api/internal/service"
	"github.com/promptdeck/config"
	calendar_client "github.com/promptdeck/pkg/clients/calendar"
	"github.com/promptdeck/pkg/commons"
)

// RecordingApi bundles the HTTP handlers for recordings, prompt
// generation, calendar access and user lookup.
type RecordingApi struct {
	cfg        *config.AppConfig
	logger     commons.Logger
	recordings internal_service.RecordingService
	assistants internal_service.AssistantService
	users      internal_service.UserService
	promptGen  *internal_promptgen.Generator
	calendar   calendar_client.CalendarClient
	tokens     calendar_client.TokenVerifier
	oauth      calendar_client.OAuthExchanger
}

func NewRecordingApi(
	cfg *config.AppConfig,
	logger commons.Logger,
	recordings internal_service.RecordingService,
	assistants internal_service.AssistantService,
	users internal_service.UserService,
	promptGen *internal_promptgen.Generator,
	calendar calendar_client.CalendarClient,
	tokens calendar_client.TokenVerifier,
	oauth calendar_client.OAuthExchanger,
) *RecordingApi {
	return &RecordingApi{
		cfg:        cfg,
		logger:     logger,
		recordings: recordings,
		assistants: assistants,
		users:      users,
		promptGen:  promptGen,
		calendar:   calendar,
		tokens:     tokens,
		oauth:      oauth,
	}
}

// respondError maps the error taxonomy onto HTTP statuses.
func (a *RecordingApi) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case commons.IsUnsupported(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case commons.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": fallback})
	case commons.IsThrottled(err):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
	case commons.IsConfiguration(err):
		a.logger.Errorf("configuration error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	default:
		a.logger.Errorf("%s: %v", fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
