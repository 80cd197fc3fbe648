package recording_api

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	internal_service "github.com/promptdeck/api/recording-api/internal/service"
	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/utils"
)

type saveRecordingRequest struct {
	UserEmail       string  `json:"userEmail" binding:"required,email"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Audio           string  `json:"audio" binding:"required"`
	MimeType        string  `json:"mimeType" binding:"required"`
	DurationSeconds float64 `json:"durationSeconds"`
	Mode            string  `json:"mode" binding:"required"`
	Browser         string  `json:"browser"`
}

// ListRecordings handles GET /v1/audio-transcripts.
func (a *RecordingApi) ListRecordings(c *gin.Context) {
	userEmail := c.Query("userEmail")
	if utils.IsEmpty(userEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User email is required"})
		return
	}

	limit := internal_service.DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < internal_service.MinListLimit || parsed > internal_service.MaxListLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Limit must be between 1 and 100"})
			return
		}
		limit = parsed
	}

	search := c.Query("search")
	transcripts, err := a.recordings.List(c.Request.Context(), internal_service.ListRecordingsInput{
		OwnerEmail: userEmail,
		Limit:      limit,
		Search:     search,
	})
	if err != nil {
		a.respondError(c, err, "Failed to fetch audio transcripts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"transcripts": transcripts,
		"count":       len(transcripts),
		"searchTerm":  search,
		"limit":       limit,
	})
}

// SaveRecording handles POST /v1/audio-transcripts. Audio arrives
// base64-encoded in the JSON body.
func (a *RecordingApi) SaveRecording(c *gin.Context) {
	var req saveRecordingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recording payload: " + err.Error()})
		return
	}
	audio, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio must be base64 encoded"})
		return
	}

	record, err := a.recordings.Save(c.Request.Context(), internal_service.SaveRecordingInput{
		OwnerEmail:      req.UserEmail,
		Title:           req.Title,
		Description:     req.Description,
		Audio:           audio,
		MimeType:        req.MimeType,
		DurationSeconds: req.DurationSeconds,
		Mode:            req.Mode,
		Browser:         req.Browser,
	})
	if err != nil {
		if commons.IsUnsupported(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		a.respondError(c, err, "Failed to save recording")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "recording": record})
}

// GetRecording handles GET /v1/audio-transcripts/:id.
func (a *RecordingApi) GetRecording(c *gin.Context) {
	record, err := a.recordings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err, "Recording not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recording": record})
}

// DeleteRecording handles DELETE /v1/audio-transcripts/:id.
func (a *RecordingApi) DeleteRecording(c *gin.Context) {
	if err := a.recordings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.respondError(c, err, "Recording not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// TranscribeRecording handles POST /v1/audio-transcripts/:id/transcribe.
func (a *RecordingApi) TranscribeRecording(c *gin.Context) {
	record, err := a.recordings.AttachTranscription(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err, "Failed to transcribe recording")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recording": record})
}
