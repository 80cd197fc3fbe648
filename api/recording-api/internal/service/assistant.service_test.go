package internal_service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_entity "github.com/promptdeck/api/recording-api/internal/entity"
	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/connectors"
	"github.com/promptdeck/pkg/utils"
)

func newAssistantFixture(t *testing.T) (AssistantService, connectors.PostgresConnector) {
	t.Helper()
	postgres := testConnector(t)
	return NewAssistantService(postgres, testLogger(t)), postgres
}

func TestCreateAndListProjects(t *testing.T) {
	svc, _ := newAssistantFixture(t)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, "PromptDeck", "Visual prompt builder", "dev@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, project.Id)

	_, err = svc.CreateProject(ctx, "", "missing name", "dev@example.com")
	assert.Error(t, err)

	projects, err := svc.ListProjects(ctx, "dev@example.com")
	require.NoError(t, err)
	require.Len(t, projects, 1)

	fetched, err := svc.GetProject(ctx, project.Id)
	require.NoError(t, err)
	assert.Equal(t, "PromptDeck", fetched.Name)

	_, err = svc.GetProject(ctx, "missing")
	assert.True(t, commons.IsNotFound(err))
}

func TestCreatePromptVersionIncrementsAndDeactivates(t *testing.T) {
	svc, _ := newAssistantFixture(t)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, "PromptDeck", "desc", "dev@example.com")
	require.NoError(t, err)

	first, err := svc.CreatePromptVersion(ctx, CreatePromptVersionInput{
		ProjectId:       project.Id,
		AssistantType:   "backend",
		PromptContent:   "You are a backend assistant.",
		GenerationModel: "gemini-2.5-pro",
		InputTokens:     100,
		OutputTokens:    200,
		EstimatedCost:   0.0002,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.PromptVersion)
	assert.True(t, first.IsActive)

	second, err := svc.CreatePromptVersion(ctx, CreatePromptVersionInput{
		ProjectId:     project.Id,
		AssistantType: "backend",
		PromptContent: "You are an improved backend assistant.",
		InputTokens:   50,
		OutputTokens:  80,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, second.PromptVersion)

	// only the latest version stays active
	latest, err := svc.LatestPrompts(ctx, project.Id)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, second.Id, latest[0].Id)

	history, err := svc.PromptHistory(ctx, project.Id)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 2, history[0].PromptVersion)
	assert.Equal(t, 1, history[1].PromptVersion)
}

func TestPromptStats(t *testing.T) {
	svc, _ := newAssistantFixture(t)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, "PromptDeck", "desc", "dev@example.com")
	require.NoError(t, err)

	for _, role := range []string{"backend", "qa"} {
		for i := 0; i < 2; i++ {
			_, err := svc.CreatePromptVersion(ctx, CreatePromptVersionInput{
				ProjectId:     project.Id,
				AssistantType: role,
				PromptContent: "prompt body",
				InputTokens:   10,
				OutputTokens:  20,
				EstimatedCost: 0.001,
			})
			require.NoError(t, err)
		}
	}

	stats, err := svc.PromptStats(ctx, project.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalPrompts)
	assert.Equal(t, 4, stats.TotalVersions)
	assert.Equal(t, 40, stats.TotalInputTokens)
	assert.Equal(t, 80, stats.TotalOutputTokens)
	assert.InDelta(t, 0.004, stats.TotalEstimatedCost, 1e-9)
	assert.NotNil(t, stats.LatestGeneration)
}

func TestToggleFavoriteAndDeletePrompt(t *testing.T) {
	svc, postgres := newAssistantFixture(t)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, "PromptDeck", "desc", "dev@example.com")
	require.NoError(t, err)
	prompt, err := svc.CreatePromptVersion(ctx, CreatePromptVersionInput{
		ProjectId:     project.Id,
		AssistantType: "uiux",
		PromptContent: "prompt body",
	})
	require.NoError(t, err)

	require.NoError(t, svc.ToggleFavorite(ctx, prompt.Id, true))
	var stored internal_entity.ProjectAssistant
	require.NoError(t, postgres.DB(ctx).Where("id = ?", prompt.Id).First(&stored).Error)
	assert.True(t, stored.IsFavorite)

	assert.True(t, commons.IsNotFound(svc.ToggleFavorite(ctx, "missing", true)))

	require.NoError(t, svc.DeletePrompt(ctx, prompt.Id))
	assert.True(t, commons.IsNotFound(svc.DeletePrompt(ctx, prompt.Id)))
}

func TestAudioSummariesByIds(t *testing.T) {
	svc, postgres := newAssistantFixture(t)
	ctx := context.Background()

	withSummary := &internal_entity.AudioTranscript{
		Title:     "Kickoff",
		AiSummary: utils.Ptr("**Meeting Overview:**\n- Kickoff held"),
	}
	withTranscriptOnly := &internal_entity.AudioTranscript{
		Title: "Standup",
		RawTranscript: &internal_entity.TranscriptPayload{
			RawTranscript: "Speaker 1: Standup notes.",
			SpeakerCount:  1,
		},
	}
	bare := &internal_entity.AudioTranscript{}
	for _, record := range []*internal_entity.AudioTranscript{withSummary, withTranscriptOnly, bare} {
		require.NoError(t, postgres.DB(ctx).Create(record).Error)
	}

	summaries, err := svc.AudioSummariesByIds(ctx, []string{withSummary.Id, withTranscriptOnly.Id, bare.Id})
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	joined := summaries[0] + summaries[1] + summaries[2]
	assert.Contains(t, joined, "**Kickoff**\n\n**Meeting Overview:**")
	assert.Contains(t, joined, "**Standup**\n\nSpeaker 1: Standup notes.")
	assert.Contains(t, joined, "**Untitled Recording**\n\nNo transcript available.")

	empty, err := svc.AudioSummariesByIds(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
