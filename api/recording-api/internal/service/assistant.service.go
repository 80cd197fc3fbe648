package internal_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	internal_entity "github.com/promptdeck/api/recording-api/internal/entity"
	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/connectors"
	"github.com/promptdeck/pkg/utils"
)

// PromptStats aggregates the prompt history of a project.
type PromptStats struct {
	TotalPrompts       int        `json:"totalPrompts"`
	TotalVersions      int        `json:"totalVersions"`
	TotalInputTokens   int        `json:"totalInputTokens"`
	TotalOutputTokens  int        `json:"totalOutputTokens"`
	TotalEstimatedCost float64    `json:"totalEstimatedCost"`
	LatestGeneration   *time.Time `json:"latestGeneration"`
}

// CreatePromptVersionInput stores one generated prompt as a new version.
type CreatePromptVersionInput struct {
	ProjectId             string
	AssistantType         string
	PromptContent         string
	GeneratedFromAudioIds []string
	GenerationModel       string
	InputTokens           int
	OutputTokens          int
	EstimatedCost         float64
	CustomModifications   *string
}

// AssistantService manages projects and their versioned assistant
// prompts. Versions are append-only; saving a new version deactivates
// the older ones for the same role.
type AssistantService interface {
	CreateProject(ctx context.Context, name, description, ownerEmail string) (*internal_entity.Project, error)
	GetProject(ctx context.Context, id string) (*internal_entity.Project, error)
	ListProjects(ctx context.Context, ownerEmail string) ([]internal_entity.Project, error)

	CreatePromptVersion(ctx context.Context, input CreatePromptVersionInput) (*internal_entity.ProjectAssistant, error)
	LatestPrompts(ctx context.Context, projectId string) ([]internal_entity.ProjectAssistant, error)
	PromptHistory(ctx context.Context, projectId string) ([]internal_entity.ProjectAssistant, error)
	PromptStats(ctx context.Context, projectId string) (*PromptStats, error)
	ToggleFavorite(ctx context.Context, promptId string, favorite bool) error
	DeletePrompt(ctx context.Context, promptId string) error

	AudioSummariesByIds(ctx context.Context, audioIds []string) ([]string, error)
}

type assistantService struct {
	postgres connectors.PostgresConnector
	logger   commons.Logger
}

func NewAssistantService(postgres connectors.PostgresConnector, logger commons.Logger) AssistantService {
	return &assistantService{postgres: postgres, logger: logger}
}

func (s *assistantService) CreateProject(ctx context.Context, name, description, ownerEmail string) (*internal_entity.Project, error) {
	if utils.IsEmpty(name) || utils.IsEmpty(ownerEmail) {
		return nil, fmt.Errorf("%w: project name and owner email are required", commons.ErrUnsupported)
	}
	project := &internal_entity.Project{
		Name:        name,
		Description: description,
		OwnerEmail:  ownerEmail,
	}
	if err := s.postgres.DB(ctx).Create(project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	s.logger.Infof("created project: id=%s, owner=%s", project.Id, ownerEmail)
	return project, nil
}

func (s *assistantService) GetProject(ctx context.Context, id string) (*internal_entity.Project, error) {
	var project internal_entity.Project
	if err := s.postgres.DB(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %s: %w", id, commons.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch project %s: %w", id, err)
	}
	return &project, nil
}

func (s *assistantService) ListProjects(ctx context.Context, ownerEmail string) ([]internal_entity.Project, error) {
	var projects []internal_entity.Project
	err := s.postgres.DB(ctx).
		Where("owner_email = ?", ownerEmail).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for %s: %w", ownerEmail, err)
	}
	return projects, nil
}

// CreatePromptVersion appends a new prompt version inside a transaction:
// older versions for the same (project, role) are deactivated, and the
// new row takes max(version)+1.
func (s *assistantService) CreatePromptVersion(ctx context.Context, input CreatePromptVersionInput) (*internal_entity.ProjectAssistant, error) {
	if utils.IsEmpty(input.ProjectId) || utils.IsEmpty(input.AssistantType) || utils.IsEmpty(input.PromptContent) {
		return nil, fmt.Errorf("%w: project id, assistant type and prompt content are required", commons.ErrUnsupported)
	}

	var created *internal_entity.ProjectAssistant
	err := s.postgres.DB(ctx).Transaction(func(tx *gorm.DB) error {
		var latest internal_entity.ProjectAssistant
		version := 1
		err := tx.Where("project_id = ? AND assistant_type = ?", input.ProjectId, input.AssistantType).
			Order("prompt_version DESC").
			First(&latest).Error
		switch {
		case err == nil:
			version = latest.PromptVersion + 1
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first version for this role
		default:
			return fmt.Errorf("failed to resolve current prompt version: %w", err)
		}

		deactivate := tx.Model(&internal_entity.ProjectAssistant{}).
			Where("project_id = ? AND assistant_type = ? AND is_active = ?", input.ProjectId, input.AssistantType, true).
			Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
		if deactivate.Error != nil {
			return fmt.Errorf("failed to deactivate old prompt versions: %w", deactivate.Error)
		}

		row := &internal_entity.ProjectAssistant{
			ProjectId:             input.ProjectId,
			AssistantType:         input.AssistantType,
			PromptContent:         input.PromptContent,
			PromptVersion:         version,
			GeneratedFromAudioIds: input.GeneratedFromAudioIds,
			GenerationModel:       input.GenerationModel,
			InputTokens:           input.InputTokens,
			OutputTokens:          input.OutputTokens,
			EstimatedCost:         input.EstimatedCost,
			IsActive:              true,
			CustomModifications:   input.CustomModifications,
		}
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("failed to create prompt version: %w", err)
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("created prompt version: project=%s, type=%s, version=%d",
		input.ProjectId, input.AssistantType, created.PromptVersion)
	return created, nil
}

func (s *assistantService) LatestPrompts(ctx context.Context, projectId string) ([]internal_entity.ProjectAssistant, error) {
	var prompts []internal_entity.ProjectAssistant
	err := s.postgres.DB(ctx).
		Where("project_id = ? AND is_active = ?", projectId, true).
		Order("assistant_type ASC").
		Find(&prompts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest prompts for project %s: %w", projectId, err)
	}
	return prompts, nil
}

func (s *assistantService) PromptHistory(ctx context.Context, projectId string) ([]internal_entity.ProjectAssistant, error) {
	var prompts []internal_entity.ProjectAssistant
	err := s.postgres.DB(ctx).
		Where("project_id = ?", projectId).
		Order("assistant_type ASC").
		Order("prompt_version DESC").
		Find(&prompts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prompt history for project %s: %w", projectId, err)
	}
	return prompts, nil
}

func (s *assistantService) PromptStats(ctx context.Context, projectId string) (*PromptStats, error) {
	rows, err := s.PromptHistory(ctx, projectId)
	if err != nil {
		return nil, err
	}

	stats := &PromptStats{}
	activeTypes := map[string]bool{}
	for i := range rows {
		row := &rows[i]
		if row.IsActive {
			activeTypes[row.AssistantType] = true
		}
		stats.TotalVersions++
		stats.TotalInputTokens += row.InputTokens
		stats.TotalOutputTokens += row.OutputTokens
		stats.TotalEstimatedCost += row.EstimatedCost
		if stats.LatestGeneration == nil || row.GenerationTimestamp.After(*stats.LatestGeneration) {
			ts := row.GenerationTimestamp
			stats.LatestGeneration = &ts
		}
	}
	stats.TotalPrompts = len(activeTypes)
	return stats, nil
}

func (s *assistantService) ToggleFavorite(ctx context.Context, promptId string, favorite bool) error {
	result := s.postgres.DB(ctx).Model(&internal_entity.ProjectAssistant{}).
		Where("id = ?", promptId).
		Updates(map[string]interface{}{"is_favorite": favorite, "updated_at": time.Now()})
	if result.Error != nil {
		return fmt.Errorf("failed to toggle favorite on prompt %s: %w", promptId, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("prompt %s: %w", promptId, commons.ErrNotFound)
	}
	return nil
}

func (s *assistantService) DeletePrompt(ctx context.Context, promptId string) error {
	result := s.postgres.DB(ctx).Delete(&internal_entity.ProjectAssistant{}, "id = ?", promptId)
	if result.Error != nil {
		return fmt.Errorf("failed to delete prompt %s: %w", promptId, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("prompt %s: %w", promptId, commons.ErrNotFound)
	}
	s.logger.Debugf("deleted prompt: id=%s", promptId)
	return nil
}

// AudioSummariesByIds returns one display block per recording, preferring
// the AI summary, then the raw transcript, then a placeholder.
func (s *assistantService) AudioSummariesByIds(ctx context.Context, audioIds []string) ([]string, error) {
	if len(audioIds) == 0 {
		return nil, nil
	}

	var records []internal_entity.AudioTranscript
	err := s.postgres.DB(ctx).
		Where("id IN ?", audioIds).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch audio summaries: %w", err)
	}

	summaries := make([]string, 0, len(records))
	for i := range records {
		record := &records[i]
		title := record.Title
		if utils.IsEmpty(title) {
			title = "Untitled Recording"
		}
		switch {
		case record.AiSummary != nil && !utils.IsEmpty(*record.AiSummary):
			summaries = append(summaries, fmt.Sprintf("**%s**\n\n%s", title, *record.AiSummary))
		case record.RawTranscript != nil && !utils.IsEmpty(record.RawTranscript.RawTranscript):
			summaries = append(summaries, fmt.Sprintf("**%s**\n\n%s", title, record.RawTranscript.RawTranscript))
		default:
			summaries = append(summaries, fmt.Sprintf("**%s**\n\nNo transcript available.", title))
		}
	}
	return summaries, nil
}
