package internal_entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptdeck/pkg/utils"
)

// Recording modes stored in metadata.
const (
	ModeDesktopAndMic = "full"
	ModeMicrophone    = "mic-only"
)

// SpeakerSegment mirrors one diarized span inside a stored transcript.
type SpeakerSegment struct {
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// TranscriptPayload is the structured transcript persisted as jsonb.
type TranscriptPayload struct {
	RawTranscript   string           `json:"rawTranscript"`
	SpeakerCount    int              `json:"speakerCount"`
	SpeakerSegments []SpeakerSegment `json:"speakerSegments"`
}

func (p TranscriptPayload) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *TranscriptPayload) Scan(value interface{}) error {
	return scanJSON(value, p)
}

// RecordingMetadata describes the captured blob. Every field is typed;
// rows never carry free-form metadata maps.
type RecordingMetadata struct {
	Mode            string  `json:"mode"`
	DurationSeconds float64 `json:"durationSeconds"`
	MimeType        string  `json:"mimeType"`
	FileSizeBytes   int64   `json:"fileSizeBytes"`
	StoragePath     string  `json:"storagePath,omitempty"`
	Browser         string  `json:"browser,omitempty"`
}

// Validate checks metadata at the persistence boundary.
func (m *RecordingMetadata) Validate() error {
	if m == nil {
		return errors.New("recording metadata is required")
	}
	if m.Mode != ModeDesktopAndMic && m.Mode != ModeMicrophone {
		return fmt.Errorf("unknown recording mode %q", m.Mode)
	}
	if utils.IsEmpty(m.MimeType) {
		return errors.New("mime type is required")
	}
	if m.DurationSeconds < 0 {
		return errors.New("duration must not be negative")
	}
	if m.FileSizeBytes < 0 {
		return errors.New("file size must not be negative")
	}
	return nil
}

func (m RecordingMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *RecordingMetadata) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// AudioTranscript is one persisted recording with its transcription
// artifacts. CompleteFileLink stays null until the blob upload succeeds.
type AudioTranscript struct {
	Id               string             `json:"id" gorm:"type:varchar(36);primaryKey;<-:create"`
	Title            string             `json:"title" gorm:"column:title;type:varchar(255);not null;default:''"`
	Description      string             `json:"description" gorm:"column:description;type:text;not null;default:''"`
	AudioFilename    *string            `json:"audio_filename" gorm:"column:audio_filename;type:varchar(255)"`
	CompleteFileLink *string            `json:"complete_file_link" gorm:"column:complete_file_link;type:text"`
	AddedByEmail     *string            `json:"added_by_email" gorm:"column:added_by_email;type:varchar(255);index"`
	RawTranscript    *TranscriptPayload `json:"raw_transcript" gorm:"column:raw_transcript;type:jsonb"`
	AiSummary        *string            `json:"ai_summary" gorm:"column:ai_summary;type:text"`
	Metadata         *RecordingMetadata `json:"metadata" gorm:"column:metadata;type:jsonb"`
	CreatedAt        time.Time          `json:"created_at" gorm:"column:created_at;type:timestamp;not null;default:NOW();<-:create"`
}

func (AudioTranscript) TableName() string {
	return "audio_transcript"
}

func (a *AudioTranscript) BeforeCreate(tx *gorm.DB) (err error) {
	if utils.IsEmpty(a.Id) {
		a.Id = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	return nil
}

// StoragePath returns the object key the blob lives under, empty when
// the recording was never uploaded.
func (a *AudioTranscript) StoragePath() string {
	if a.Metadata == nil {
		return ""
	}
	return a.Metadata.StoragePath
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}
