package recording_api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_entity "github.com/promptdeck/api/recording-api/internal/entity"
	internal_service "github.com/promptdeck/api/recording-api/internal/service"
	"github.com/promptdeck/config"
	"github.com/promptdeck/pkg/commons"
)

type stubRecordingService struct {
	records []internal_entity.AudioTranscript
	err     error
	lastIn  internal_service.ListRecordingsInput
}

func (s *stubRecordingService) Save(ctx context.Context, input internal_service.SaveRecordingInput) (*internal_entity.AudioTranscript, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &internal_entity.AudioTranscript{Id: "rec-1", Title: input.Title}, nil
}

func (s *stubRecordingService) Get(ctx context.Context, id string) (*internal_entity.AudioTranscript, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &internal_entity.AudioTranscript{Id: id}, nil
}

func (s *stubRecordingService) List(ctx context.Context, input internal_service.ListRecordingsInput) ([]internal_entity.AudioTranscript, error) {
	s.lastIn = input
	return s.records, s.err
}

func (s *stubRecordingService) Delete(ctx context.Context, id string) error {
	return s.err
}

func (s *stubRecordingService) AttachTranscription(ctx context.Context, id string) (*internal_entity.AudioTranscript, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &internal_entity.AudioTranscript{Id: id}, nil
}

type stubUserService struct {
	user       *internal_entity.User
	err        error
	savedToken *internal_entity.UserCalendarToken
}

func (s *stubUserService) Lookup(ctx context.Context, email string) (*internal_entity.User, error) {
	return s.user, s.err
}

func (s *stubUserService) Upsert(ctx context.Context, email string, name, image *string) (*internal_entity.User, error) {
	return s.user, s.err
}

func (s *stubUserService) SaveCalendarToken(ctx context.Context, token internal_entity.UserCalendarToken) error {
	s.savedToken = &token
	return s.err
}

func newTestApi(t *testing.T, recordings internal_service.RecordingService, users internal_service.UserService) (*RecordingApi, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, err := commons.NewApplicationLogger(commons.Name("api-test"))
	require.NoError(t, err)
	cfg := &config.AppConfig{Name: "recording-api", Version: "test"}
	api := NewRecordingApi(cfg, logger, recordings, nil, users, nil, nil, nil, nil)

	engine := gin.New()
	engine.GET("/v1/audio-transcripts", api.ListRecordings)
	engine.DELETE("/v1/audio-transcripts/:id", api.DeleteRecording)
	engine.POST("/v1/user/lookup", api.LookupUser)
	return api, engine
}

func doRequest(engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func TestListRecordingsRequiresUserEmail(t *testing.T) {
	_, engine := newTestApi(t, &stubRecordingService{}, &stubUserService{})

	resp := doRequest(engine, http.MethodGet, "/v1/audio-transcripts", "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "User email is required")
}

func TestListRecordingsLimitValidation(t *testing.T) {
	for _, limit := range []string{"0", "101", "-5", "abc"} {
		_, engine := newTestApi(t, &stubRecordingService{}, &stubUserService{})
		resp := doRequest(engine, http.MethodGet, "/v1/audio-transcripts?userEmail=dev@example.com&limit="+limit, "")
		assert.Equal(t, http.StatusBadRequest, resp.Code, "limit=%s", limit)
		assert.Contains(t, resp.Body.String(), "Limit must be between 1 and 100")
	}
}

func TestListRecordingsSuccess(t *testing.T) {
	stub := &stubRecordingService{records: []internal_entity.AudioTranscript{
		{Id: "a", Title: "First"},
		{Id: "b", Title: "Second"},
	}}
	_, engine := newTestApi(t, stub, &stubUserService{})

	resp := doRequest(engine, http.MethodGet, "/v1/audio-transcripts?userEmail=dev@example.com&limit=10&search=notes", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var payload struct {
		Success    bool                              `json:"success"`
		Count      int                               `json:"count"`
		SearchTerm string                            `json:"searchTerm"`
		Limit      int                               `json:"limit"`
		Items      []internal_entity.AudioTranscript `json:"transcripts"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.True(t, payload.Success)
	assert.Equal(t, 2, payload.Count)
	assert.Equal(t, "notes", payload.SearchTerm)
	assert.Equal(t, 10, payload.Limit)
	assert.Len(t, payload.Items, 2)

	assert.Equal(t, "dev@example.com", stub.lastIn.OwnerEmail)
	assert.Equal(t, 10, stub.lastIn.Limit)
	assert.Equal(t, "notes", stub.lastIn.Search)
}

func TestDeleteRecordingNotFound(t *testing.T) {
	_, engine := newTestApi(t, &stubRecordingService{err: commons.ErrNotFound}, &stubUserService{})
	resp := doRequest(engine, http.MethodDelete, "/v1/audio-transcripts/missing", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestLookupUser(t *testing.T) {
	user := &internal_entity.User{Id: "u-1", Email: "dev@example.com"}
	_, engine := newTestApi(t, &stubRecordingService{}, &stubUserService{user: user})

	resp := doRequest(engine, http.MethodPost, "/v1/user/lookup", `{"email": "dev@example.com"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"id":"u-1"`)

	resp = doRequest(engine, http.MethodPost, "/v1/user/lookup", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	_, engine = newTestApi(t, &stubRecordingService{}, &stubUserService{err: commons.ErrNotFound})
	resp = doRequest(engine, http.MethodPost, "/v1/user/lookup", `{"email": "ghost@example.com"}`)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
