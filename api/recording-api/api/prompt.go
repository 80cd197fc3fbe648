package recording_api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	internal_promptgen "github.com/promptdeck/api/recording-api/internal/promptgen"
	internal_service "github.com/promptdeck/api/recording-api/internal/service"
	"github.com/promptdeck/pkg/commons"
)

type generateCanvasPromptRequest struct {
	Components []internal_promptgen.CanvasComponent `json:"components" binding:"required"`
}

type generateProjectPromptsRequest struct {
	SelectedAudioIds []string                           `json:"selectedAudioIds"`
	AssistantTypes   []internal_promptgen.AssistantRole `json:"assistantTypes" binding:"required"`
}

// promptGenReady guards the generation routes when the service runs
// without a Gemini API key and no generator was wired.
func (a *RecordingApi) promptGenReady(c *gin.Context) bool {
	if a.promptGen == nil {
		a.respondError(c,
			fmt.Errorf("%w: prompt generation requires a Gemini API key", commons.ErrConfiguration),
			"Prompt generation is not configured")
		return false
	}
	return true
}

// GenerateCanvasPrompt handles POST /v1/prompts/generate.
func (a *RecordingApi) GenerateCanvasPrompt(c *gin.Context) {
	if !a.promptGenReady(c) {
		return
	}

	var req generateCanvasPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prompt request: " + err.Error()})
		return
	}

	prompt, err := a.promptGen.GenerateCanvasPrompt(c.Request.Context(), req.Components)
	if err != nil {
		a.respondError(c, err, "Failed to generate prompt. Please check your API key and try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "prompt": prompt})
}

// GenerateProjectPrompts handles POST /v1/projects/:id/prompts/generate.
// One prompt version per requested role is generated from the selected
// recordings and stored on the project.
func (a *RecordingApi) GenerateProjectPrompts(c *gin.Context) {
	if !a.promptGenReady(c) {
		return
	}

	var req generateProjectPromptsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prompt request: " + err.Error()})
		return
	}

	project, err := a.assistants.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err, "Project not found")
		return
	}

	summaries, err := a.assistants.AudioSummariesByIds(c.Request.Context(), req.SelectedAudioIds)
	if err != nil {
		a.respondError(c, err, "Failed to fetch audio summaries")
		return
	}

	results, err := a.promptGen.GenerateAssistantPrompts(c.Request.Context(), internal_promptgen.PromptRequest{
		ProjectName:        project.Name,
		ProjectDescription: project.Description,
		AudioSummaries:     summaries,
		Roles:              req.AssistantTypes,
	})
	if err != nil {
		a.respondError(c, err, "Failed to generate assistant prompts")
		return
	}

	prompts := make(map[string]string, len(results))
	totalInput, totalOutput := 0, 0
	totalCost := 0.0
	for _, result := range results {
		prompts[string(result.Role)] = result.PromptContent
		totalInput += result.InputTokens
		totalOutput += result.OutputTokens
		totalCost += result.EstimatedCost

		if _, err := a.assistants.CreatePromptVersion(c.Request.Context(), internal_service.CreatePromptVersionInput{
			ProjectId:             project.Id,
			AssistantType:         string(result.Role),
			PromptContent:         result.PromptContent,
			GeneratedFromAudioIds: req.SelectedAudioIds,
			GenerationModel:       a.cfg.GeminiConfig.PromptModel,
			InputTokens:           result.InputTokens,
			OutputTokens:          result.OutputTokens,
			EstimatedCost:         result.EstimatedCost,
		}); err != nil {
			a.respondError(c, err, "Failed to store prompt version")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"prompts": prompts,
		"metadata": gin.H{
			"inputTokens":     totalInput,
			"outputTokens":    totalOutput,
			"estimatedCost":   totalCost,
			"generationModel": a.cfg.GeminiConfig.PromptModel,
		},
	})
}

// ListProjectPrompts handles GET /v1/projects/:id/prompts.
func (a *RecordingApi) ListProjectPrompts(c *gin.Context) {
	prompts, err := a.assistants.LatestPrompts(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err, "Failed to fetch project prompts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "prompts": prompts, "count": len(prompts)})
}

// ProjectPromptStats handles GET /v1/projects/:id/prompts/stats.
func (a *RecordingApi) ProjectPromptStats(c *gin.Context) {
	stats, err := a.assistants.PromptStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err, "Failed to fetch prompt stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

type toggleFavoriteRequest struct {
	IsFavorite bool `json:"isFavorite"`
}

// TogglePromptFavorite handles PUT /v1/prompts/:promptId/favorite.
func (a *RecordingApi) TogglePromptFavorite(c *gin.Context) {
	var req toggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid favorite request: " + err.Error()})
		return
	}
	if err := a.assistants.ToggleFavorite(c.Request.Context(), c.Param("promptId"), req.IsFavorite); err != nil {
		a.respondError(c, err, "Prompt not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeletePrompt handles DELETE /v1/prompts/:promptId.
func (a *RecordingApi) DeletePrompt(c *gin.Context) {
	if err := a.assistants.DeletePrompt(c.Request.Context(), c.Param("promptId")); err != nil {
		a.respondError(c, err, "Prompt not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type createProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	OwnerEmail  string `json:"ownerEmail" binding:"required,email"`
}

// CreateProject handles POST /v1/projects.
func (a *RecordingApi) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project payload: " + err.Error()})
		return
	}
	project, err := a.assistants.CreateProject(c.Request.Context(), req.Name, req.Description, req.OwnerEmail)
	if err != nil {
		a.respondError(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "project": project})
}

// ListProjects handles GET /v1/projects?ownerEmail=.
func (a *RecordingApi) ListProjects(c *gin.Context) {
	ownerEmail := c.Query("ownerEmail")
	if ownerEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Owner email is required"})
		return
	}
	projects, err := a.assistants.ListProjects(c.Request.Context(), ownerEmail)
	if err != nil {
		a.respondError(c, err, "Failed to fetch projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "projects": projects, "count": len(projects)})
}
