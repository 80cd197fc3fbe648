package internal_transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gemini_client "github.com/promptdeck/pkg/clients/gemini"
	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/utils"
)

const defaultAudioMimeType = "audio/webm"

// GeminiTranscriber runs the two-stage transcription pipeline: a
// multimodal diarization pass followed by a text-only summary pass over
// the transcript from the first stage.
type GeminiTranscriber struct {
	generator gemini_client.Generator
	model     string
	logger    commons.Logger
}

func NewGeminiTranscriber(generator gemini_client.Generator, model string, logger commons.Logger) *GeminiTranscriber {
	return &GeminiTranscriber{generator: generator, model: model, logger: logger}
}

type transcriptPayload struct {
	RawTranscript   string           `json:"rawTranscript"`
	SpeakerCount    int              `json:"speakerCount"`
	SpeakerSegments []SpeakerSegment `json:"speakerSegments"`
}

type summaryPayload struct {
	AiSummary string `json:"aiSummary"`
}

// Transcribe produces a diarized transcript and summary for the given
// audio. Parse failures on either stage degrade to fallback content;
// only generation failures are returned as errors.
func (t *GeminiTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (*TranscriptionResult, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: empty audio payload", commons.ErrUnsupported)
	}
	if utils.IsEmpty(mimeType) {
		mimeType = defaultAudioMimeType
	}

	t.logger.Debugf("starting transcription, model %s, %d bytes of %s", t.model, len(audio), mimeType)
	transcriptText, err := t.generator.GenerateWithAudio(ctx, t.model, audio, mimeType, transcriptPrompt)
	if err != nil {
		return nil, fmt.Errorf("transcript generation: %w", err)
	}

	payload := t.parseTranscript(transcriptText)
	t.logger.Debugf("transcript stage done, %d speakers, %d segments", payload.SpeakerCount, len(payload.SpeakerSegments))

	summaryText, err := t.generator.GenerateText(ctx, t.model, summaryPrompt(payload.RawTranscript))
	if err != nil {
		return nil, fmt.Errorf("summary generation: %w", err)
	}

	return &TranscriptionResult{
		RawTranscript:   payload.RawTranscript,
		AiSummary:       t.parseSummary(summaryText),
		SpeakerCount:    payload.SpeakerCount,
		SpeakerSegments: payload.SpeakerSegments,
	}, nil
}

// parseTranscript extracts the structured transcript from the model
// response. Prose or malformed responses collapse to a single speaker
// segment holding the whole reply.
func (t *GeminiTranscriber) parseTranscript(text string) transcriptPayload {
	fallback := transcriptPayload{
		RawTranscript: text,
		SpeakerCount:  1,
		SpeakerSegments: []SpeakerSegment{
			{Speaker: "Speaker 1", Text: text, Timestamp: "00:00"},
		},
	}

	raw, err := utils.FirstJSONObject(text)
	if err != nil {
		t.logger.Warnf("transcript response had no JSON object, using raw text: %v", err)
		return fallback
	}
	var payload transcriptPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || strings.TrimSpace(payload.RawTranscript) == "" {
		t.logger.Warnf("failed to decode transcript response, using raw text: %v", err)
		return fallback
	}
	if payload.SpeakerCount < 1 {
		payload.SpeakerCount = 1
	}
	if len(payload.SpeakerSegments) == 0 {
		payload.SpeakerSegments = []SpeakerSegment{
			{Speaker: "Speaker 1", Text: payload.RawTranscript, Timestamp: "00:00"},
		}
	}
	return payload
}

func (t *GeminiTranscriber) parseSummary(text string) string {
	raw, err := utils.FirstJSONObject(text)
	if err != nil {
		t.logger.Warnf("summary response had no JSON object: %v", err)
		return FallbackSummary
	}
	var payload summaryPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || strings.TrimSpace(payload.AiSummary) == "" {
		t.logger.Warnf("failed to decode summary response: %v", err)
		return FallbackSummary
	}
	return payload.AiSummary
}
