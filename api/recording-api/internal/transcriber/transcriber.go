package internal_transcriber

import (
	"context"
	"fmt"
	"strings"
)

// SpeakerSegment attributes one span of transcript text to a speaker.
type SpeakerSegment struct {
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// TranscriptionResult is the combined output of the two-stage pipeline.
// SpeakerSegments always holds at least one segment; when diarization
// parsing fails a single synthetic "Speaker 1" segment spans the full
// text. Immutable once returned.
type TranscriptionResult struct {
	RawTranscript   string           `json:"rawTranscript"`
	AiSummary       string           `json:"aiSummary"`
	SpeakerCount    int              `json:"speakerCount"`
	SpeakerSegments []SpeakerSegment `json:"speakerSegments"`
}

// FallbackSummary is substituted when the summary stage cannot produce a
// parseable response.
const FallbackSummary = "Unable to generate AI summary."

// Transcriber turns audio bytes into a transcript plus structured summary.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (*TranscriptionResult, error)
}

// FormatSegments renders speaker segments for display, one paragraph per
// segment with an optional timestamp prefix.
func FormatSegments(segments []SpeakerSegment) string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		prefix := ""
		if seg.Timestamp != "" {
			prefix = fmt.Sprintf("[%s] ", seg.Timestamp)
		}
		lines = append(lines, fmt.Sprintf("%s%s: %s", prefix, seg.Speaker, seg.Text))
	}
	return strings.Join(lines, "\n\n")
}
