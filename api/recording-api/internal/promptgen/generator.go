package internal_promptgen

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	gemini_client "github.com/promptdeck/pkg/clients/gemini"
	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/utils"
)

// Token and pricing estimates for cost reporting. Approximate.
const (
	estimatedTokensPerChar  = 0.25
	costPer1kInputTokens    = 0.00015 // $0.15 per 1M tokens
	costPer1kOutputTokens   = 0.0006  // $0.60 per 1M tokens
	minGeneratedPromptChars = 100
	audioSummarySeparator   = "\n\n---\n\n"
)

// PromptRequest asks for assistant prompts over a project and its
// recorded meeting summaries.
type PromptRequest struct {
	ProjectName        string          `json:"projectName"`
	ProjectDescription string          `json:"projectDescription"`
	AudioSummaries     []string        `json:"audioSummaries"`
	Roles              []AssistantRole `json:"assistantTypes"`
}

// PromptResult is one generated (or fallback) prompt with its token and
// cost estimate. Fallback prompts carry zero tokens and zero cost.
type PromptResult struct {
	Role          AssistantRole `json:"assistantType"`
	PromptContent string        `json:"promptContent"`
	InputTokens   int           `json:"inputTokens"`
	OutputTokens  int           `json:"outputTokens"`
	EstimatedCost float64       `json:"estimatedCost"`
}

// CanvasComponent is one element placed on the visual prompt builder.
type CanvasComponent struct {
	DisplayName   string                 `json:"displayName"`
	Position      CanvasPosition         `json:"position"`
	Configuration map[string]interface{} `json:"configuration,omitempty"`
}

type CanvasPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Generator produces role prompts and canvas prompts through a language
// model.
type Generator struct {
	client gemini_client.Generator
	model  string
	logger commons.Logger
}

func NewGenerator(client gemini_client.Generator, model string, logger commons.Logger) *Generator {
	return &Generator{client: client, model: model, logger: logger}
}

// ValidateRequest returns the list of problems with a prompt request,
// empty when the request is acceptable.
func ValidateRequest(req PromptRequest) []string {
	var errs []string
	if utils.IsEmpty(req.ProjectName) {
		errs = append(errs, "Project name is required")
	}
	if utils.IsEmpty(req.ProjectDescription) {
		errs = append(errs, "Project description is required")
	}
	if len(req.Roles) == 0 {
		errs = append(errs, "At least one assistant type must be selected")
	}
	for _, role := range req.Roles {
		if !KnownRole(role) {
			errs = append(errs, "Invalid assistant type provided")
			break
		}
	}
	return errs
}

// GenerateAssistantPrompts generates one prompt per requested role. A
// role whose generation fails gets a static fallback prompt instead of
// failing the whole batch.
func (g *Generator) GenerateAssistantPrompts(ctx context.Context, req PromptRequest) ([]PromptResult, error) {
	if errs := ValidateRequest(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", commons.ErrUnsupported, strings.Join(errs, "; "))
	}

	results := make([]PromptResult, 0, len(req.Roles))
	for _, role := range req.Roles {
		content, err := g.generateRolePrompt(ctx, role, req)
		if err != nil {
			g.logger.Warnf("prompt generation failed for %s, using fallback: %v", role, err)
			results = append(results, PromptResult{
				Role:          role,
				PromptContent: FallbackPrompt(role, req.ProjectName, req.ProjectDescription),
			})
			continue
		}

		inputText := estimationInput(role, req)
		inputTokens := estimateTokens(inputText)
		outputTokens := estimateTokens(content)
		results = append(results, PromptResult{
			Role:          role,
			PromptContent: content,
			InputTokens:   inputTokens,
			OutputTokens:  outputTokens,
			EstimatedCost: tokenCost(inputTokens, outputTokens),
		})
		g.logger.Debugf("generated %s prompt, %d output tokens", role, outputTokens)
	}
	return results, nil
}

// RegeneratePrompt regenerates the prompt for a single role.
func (g *Generator) RegeneratePrompt(ctx context.Context, role AssistantRole, projectName, projectDescription string, audioSummaries []string) (PromptResult, error) {
	results, err := g.GenerateAssistantPrompts(ctx, PromptRequest{
		ProjectName:        projectName,
		ProjectDescription: projectDescription,
		AudioSummaries:     audioSummaries,
		Roles:              []AssistantRole{role},
	})
	if err != nil {
		return PromptResult{}, err
	}
	return results[0], nil
}

// GenerateCanvasPrompt turns the components placed on the visual
// builder canvas into one cohesive prompt.
func (g *Generator) GenerateCanvasPrompt(ctx context.Context, components []CanvasComponent) (string, error) {
	if len(components) == 0 {
		return "", fmt.Errorf("%w: no components on canvas", commons.ErrUnsupported)
	}

	descriptions := make([]string, 0, len(components))
	for _, comp := range components {
		config := "default"
		if len(comp.Configuration) > 0 {
			encoded, err := json.Marshal(comp.Configuration)
			if err == nil {
				config = string(encoded)
			}
		}
		descriptions = append(descriptions, fmt.Sprintf("- %s at position (%g, %g) with config: %s",
			comp.DisplayName, comp.Position.X, comp.Position.Y, config))
	}

	out, err := g.client.GenerateText(ctx, g.model, canvasPrompt(strings.Join(descriptions, "\n")))
	if err != nil {
		return "", fmt.Errorf("canvas prompt generation: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (g *Generator) generateRolePrompt(ctx context.Context, role AssistantRole, req PromptRequest) (string, error) {
	out, err := g.client.GenerateText(ctx, g.model, rolePrompt(role, req))
	if err != nil {
		return "", err
	}
	content := strings.TrimSpace(out)
	if len(content) < minGeneratedPromptChars {
		return "", fmt.Errorf("generated prompt too short for %s", role)
	}
	return content, nil
}

// EstimateGenerationCost predicts the cost of generating prompts for
// the given roles before running them.
func EstimateGenerationCost(projectDescription string, audioSummaries []string, roles []AssistantRole) float64 {
	combined := strings.Join(audioSummaries, audioSummarySeparator)
	inputTokens := estimateTokens(projectDescription) + estimateTokens(combined) + estimateTokensFromLength(500)
	outputTokens := estimateTokensFromLength(600)
	return tokenCost(inputTokens, outputTokens) * float64(len(roles))
}

func estimateTokens(text string) int {
	return estimateTokensFromLength(len(text))
}

func estimateTokensFromLength(chars int) int {
	return int(math.Ceil(float64(chars) * estimatedTokensPerChar))
}

func tokenCost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)/1000*costPer1kInputTokens + float64(outputTokens)/1000*costPer1kOutputTokens
}
