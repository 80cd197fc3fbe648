package internal_service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	internal_entity "github.com/promptdeck/api/recording-api/internal/entity"
	internal_transcriber "github.com/promptdeck/api/recording-api/internal/transcriber"
	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/connectors"
	"github.com/promptdeck/pkg/utils"
)

const (
	// Object keys follow audio-recordings/{ownerEmail}/{ts}_{filename}.
	storageKeyPrefix = "audio-recordings"

	MinListLimit     = 1
	MaxListLimit     = 100
	DefaultListLimit = 50
)

// SaveRecordingInput carries a finished recording into the persistence
// gateway.
type SaveRecordingInput struct {
	OwnerEmail      string
	Title           string
	Description     string
	Audio           []byte
	MimeType        string
	DurationSeconds float64
	Mode            string
	Browser         string
}

// ListRecordingsInput scopes a transcript listing. Limit outside
// [MinListLimit, MaxListLimit] is rejected; zero means DefaultListLimit.
type ListRecordingsInput struct {
	OwnerEmail string
	Limit      int
	Search     string
}

// RecordingService is the persistence gateway for recordings. Save runs
// the full pipeline: best-effort transcription, metadata insert, blob
// upload with a compensating row delete when the upload fails.
type RecordingService interface {
	Save(ctx context.Context, input SaveRecordingInput) (*internal_entity.AudioTranscript, error)
	Get(ctx context.Context, id string) (*internal_entity.AudioTranscript, error)
	List(ctx context.Context, input ListRecordingsInput) ([]internal_entity.AudioTranscript, error)
	Delete(ctx context.Context, id string) error
	AttachTranscription(ctx context.Context, id string) (*internal_entity.AudioTranscript, error)
}

type recordingService struct {
	postgres    connectors.PostgresConnector
	storage     connectors.StorageConnector
	transcriber internal_transcriber.Transcriber
	logger      commons.Logger
	now         func() time.Time
}

// NewRecordingService wires the gateway. A nil transcriber disables the
// transcription stage; recordings are still persisted.
func NewRecordingService(
	postgres connectors.PostgresConnector,
	storage connectors.StorageConnector,
	transcriber internal_transcriber.Transcriber,
	logger commons.Logger,
) RecordingService {
	return &recordingService{
		postgres:    postgres,
		storage:     storage,
		transcriber: transcriber,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *recordingService) Save(ctx context.Context, input SaveRecordingInput) (*internal_entity.AudioTranscript, error) {
	if utils.IsEmpty(input.OwnerEmail) {
		return nil, fmt.Errorf("%w: owner email is required", commons.ErrUnsupported)
	}
	if len(input.Audio) == 0 {
		return nil, fmt.Errorf("%w: empty audio payload", commons.ErrUnsupported)
	}

	metadata := &internal_entity.RecordingMetadata{
		Mode:            input.Mode,
		DurationSeconds: input.DurationSeconds,
		MimeType:        input.MimeType,
		FileSizeBytes:   int64(len(input.Audio)),
		Browser:         input.Browser,
	}
	if err := metadata.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", commons.ErrUnsupported, err)
	}

	// Transcription is best effort. A failed pipeline leaves the
	// transcript columns null and the recording is still saved.
	record := &internal_entity.AudioTranscript{
		Title:        input.Title,
		Description:  input.Description,
		AddedByEmail: utils.Ptr(input.OwnerEmail),
		Metadata:     metadata,
	}
	if s.transcriber != nil {
		result, err := s.transcriber.Transcribe(ctx, input.Audio, input.MimeType)
		if err != nil {
			s.logger.Warnf("transcription failed, saving recording without transcript: %v", err)
		} else {
			applyTranscription(record, result)
		}
	}

	ts := s.now().UnixMilli()
	filename := fmt.Sprintf("recording_%d.%s", ts, extensionFor(input.MimeType))
	record.AudioFilename = utils.Ptr(filename)
	metadata.StoragePath = fmt.Sprintf("%s/%s/%d_%s", storageKeyPrefix, input.OwnerEmail, ts, filename)

	db := s.postgres.DB(ctx)
	if err := db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to save recording metadata: %w", err)
	}
	s.logger.Infof("saved recording row: id=%s, owner=%s, size=%d", record.Id, input.OwnerEmail, metadata.FileSizeBytes)

	if err := s.storage.Upload(ctx, metadata.StoragePath, input.Audio, input.MimeType); err != nil {
		// Compensate: the row must not survive without its blob.
		if delErr := db.Delete(&internal_entity.AudioTranscript{}, "id = ?", record.Id).Error; delErr != nil {
			s.logger.Errorf("failed to roll back recording row %s after upload failure: %v", record.Id, delErr)
		}
		return nil, fmt.Errorf("failed to upload audio file: %w", err)
	}

	link := s.storage.PublicURL(metadata.StoragePath)
	record.CompleteFileLink = utils.Ptr(link)
	updates := map[string]interface{}{
		"complete_file_link": link,
		"metadata":           metadata,
	}
	if err := db.Model(&internal_entity.AudioTranscript{}).Where("id = ?", record.Id).Updates(updates).Error; err != nil {
		// The blob and the row both exist; only the link is stale.
		s.logger.Errorf("failed to set file link on recording %s: %v", record.Id, err)
	}

	s.logger.Infof("saved recording: id=%s, path=%s", record.Id, metadata.StoragePath)
	return record, nil
}

func (s *recordingService) Get(ctx context.Context, id string) (*internal_entity.AudioTranscript, error) {
	var record internal_entity.AudioTranscript
	if err := s.postgres.DB(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recording %s: %w", id, commons.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch recording %s: %w", id, err)
	}
	return &record, nil
}

func (s *recordingService) List(ctx context.Context, input ListRecordingsInput) ([]internal_entity.AudioTranscript, error) {
	if utils.IsEmpty(input.OwnerEmail) {
		return nil, fmt.Errorf("%w: owner email is required", commons.ErrUnsupported)
	}
	limit := input.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < MinListLimit || limit > MaxListLimit {
		return nil, fmt.Errorf("%w: limit must be between %d and %d", commons.ErrUnsupported, MinListLimit, MaxListLimit)
	}

	query := s.postgres.DB(ctx).
		Where("added_by_email = ?", input.OwnerEmail).
		Order("created_at DESC").
		Limit(limit)

	if search := strings.TrimSpace(input.Search); search != "" {
		// Case-insensitive match, spelled so both postgres and the
		// sqlite driver used in tests accept it.
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(audio_filename) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var records []internal_entity.AudioTranscript
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list recordings for %s: %w", input.OwnerEmail, err)
	}
	s.logger.Debugf("listed %d recordings for %s", len(records), input.OwnerEmail)
	return records, nil
}

// Delete removes the metadata row first, then the blob. Blob removal is
// best effort; orphaned objects are logged, never surfaced.
func (s *recordingService) Delete(ctx context.Context, id string) error {
	record, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.postgres.DB(ctx).Delete(&internal_entity.AudioTranscript{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete recording %s: %w", id, err)
	}

	if path := record.StoragePath(); path != "" {
		if err := s.storage.Remove(ctx, path); err != nil {
			s.logger.Warnf("failed to remove blob %s for deleted recording %s: %v", path, id, err)
		}
	}
	s.logger.Infof("deleted recording: id=%s", id)
	return nil
}

// AttachTranscription re-runs the transcription pipeline for a stored
// recording and persists the result. Unlike Save, a pipeline failure
// here is fatal since transcription is the whole point of the call.
func (s *recordingService) AttachTranscription(ctx context.Context, id string) (*internal_entity.AudioTranscript, error) {
	if s.transcriber == nil {
		return nil, fmt.Errorf("%w: transcription is not configured", commons.ErrConfiguration)
	}
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	path := record.StoragePath()
	if path == "" {
		return nil, fmt.Errorf("recording %s has no stored audio: %w", id, commons.ErrNotFound)
	}

	audio, err := s.storage.Download(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch audio for recording %s: %w", id, err)
	}

	mimeType := ""
	if record.Metadata != nil {
		mimeType = record.Metadata.MimeType
	}
	result, err := s.transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return nil, fmt.Errorf("transcription failed for recording %s: %w", id, err)
	}

	applyTranscription(record, result)
	updates := map[string]interface{}{
		"raw_transcript": record.RawTranscript,
		"ai_summary":     record.AiSummary,
	}
	if err := s.postgres.DB(ctx).Model(&internal_entity.AudioTranscript{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to store transcription for recording %s: %w", id, err)
	}
	s.logger.Infof("attached transcription: id=%s, speakers=%d", id, result.SpeakerCount)
	return record, nil
}

func applyTranscription(record *internal_entity.AudioTranscript, result *internal_transcriber.TranscriptionResult) {
	segments := make([]internal_entity.SpeakerSegment, 0, len(result.SpeakerSegments))
	for _, seg := range result.SpeakerSegments {
		segments = append(segments, internal_entity.SpeakerSegment{
			Speaker:   seg.Speaker,
			Text:      seg.Text,
			Timestamp: seg.Timestamp,
		})
	}
	record.RawTranscript = &internal_entity.TranscriptPayload{
		RawTranscript:   result.RawTranscript,
		SpeakerCount:    result.SpeakerCount,
		SpeakerSegments: segments,
	}
	record.AiSummary = utils.Ptr(result.AiSummary)
}

func extensionFor(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "webm"):
		return "webm"
	case strings.Contains(mimeType, "mp4"):
		return "mp4"
	case strings.Contains(mimeType, "wav"):
		return "wav"
	default:
		return "webm"
	}
}
