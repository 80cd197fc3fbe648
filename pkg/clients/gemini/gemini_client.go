package gemini_client

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/configs"
)

// Generator is the generative surface required by transcription and
// prompt generation. The production implementation talks to the Gemini
// API; tests substitute canned generators.
type Generator interface {
	// GenerateText runs a text-only generation call.
	GenerateText(ctx context.Context, model string, prompt string) (string, error)

	// GenerateWithAudio runs a multimodal call with inline audio bytes
	// alongside the instruction prompt.
	GenerateWithAudio(ctx context.Context, model string, audio []byte, mimeType string, prompt string) (string, error)
}

type geminiClient struct {
	client *genai.Client
	logger commons.Logger
}

// NewClient builds a Gemini-backed Generator. A missing API key is a
// configuration error: nothing downstream can degrade around it.
func NewClient(ctx context.Context, cfg configs.GeminiConfig, logger commons.Logger) (Generator, error) {
	if strings.TrimSpace(cfg.ApiKey) == "" {
		return nil, fmt.Errorf("%w: gemini api key is not configured", commons.ErrConfiguration)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.ApiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v", commons.ErrConfiguration, err)
	}

	return &geminiClient{client: client, logger: logger}, nil
}

func (g *geminiClient) GenerateText(ctx context.Context, model string, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", classify(err)
	}
	return resp.Text(), nil
}

func (g *geminiClient) GenerateWithAudio(ctx context.Context, model string, audio []byte, mimeType string, prompt string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(audio, mimeType),
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", classify(err)
	}
	return resp.Text(), nil
}

// classify maps provider failures onto the shared error categories so
// handlers can choose a status code without string matching.
func classify(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "unauthenticated") ||
		strings.Contains(msg, "permission_denied"):
		return fmt.Errorf("%w: %v", commons.ErrConfiguration, err)
	case strings.Contains(msg, "quota") || strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "429"):
		return fmt.Errorf("%w: %v", commons.ErrThrottled, err)
	default:
		return fmt.Errorf("%w: %v", commons.ErrTransient, err)
	}
}
