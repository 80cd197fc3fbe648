package internal_entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptdeck/pkg/utils"
)

// Project groups recordings and generated assistant prompts.
type Project struct {
	Id          string    `json:"id" gorm:"type:varchar(36);primaryKey;<-:create"`
	Name        string    `json:"name" gorm:"column:name;type:varchar(255);not null"`
	Description string    `json:"description" gorm:"column:description;type:text;not null;default:''"`
	OwnerEmail  string    `json:"owner_email" gorm:"column:owner_email;type:varchar(255);not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;type:timestamp;not null;default:NOW();<-:create"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at;type:timestamp;default:null"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) (err error) {
	if utils.IsEmpty(p.Id) {
		p.Id = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return nil
}

// StringList stores a list of ids as a jsonb array.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// ProjectAssistant is one versioned generated prompt for a role within a
// project. Versions are append-only; at most one row per
// (project, assistant type) is active.
type ProjectAssistant struct {
	Id                    string     `json:"id" gorm:"type:varchar(36);primaryKey;<-:create"`
	ProjectId             string     `json:"project_id" gorm:"column:project_id;type:varchar(36);not null;index"`
	AssistantType         string     `json:"assistant_type" gorm:"column:assistant_type;type:varchar(20);not null;index"`
	PromptContent         string     `json:"prompt_content" gorm:"column:prompt_content;type:text;not null"`
	PromptVersion         int        `json:"prompt_version" gorm:"column:prompt_version;type:int;not null;default:1"`
	GeneratedFromAudioIds StringList `json:"generated_from_audio_ids" gorm:"column:generated_from_audio_ids;type:jsonb"`
	GenerationModel       string     `json:"generation_model" gorm:"column:generation_model;type:varchar(100);not null;default:''"`
	GenerationTimestamp   time.Time  `json:"generation_timestamp" gorm:"column:generation_timestamp;type:timestamp;not null;default:NOW()"`
	InputTokens           int        `json:"input_tokens" gorm:"column:input_tokens;type:int;not null;default:0"`
	OutputTokens          int        `json:"output_tokens" gorm:"column:output_tokens;type:int;not null;default:0"`
	EstimatedCost         float64    `json:"estimated_cost" gorm:"column:estimated_cost;type:decimal(10,6);not null;default:0"`
	IsActive              bool       `json:"is_active" gorm:"column:is_active;not null;default:true"`
	IsFavorite            bool       `json:"is_favorite" gorm:"column:is_favorite;not null;default:false"`
	CustomModifications   *string    `json:"custom_modifications" gorm:"column:custom_modifications;type:text"`
	CreatedAt             time.Time  `json:"created_at" gorm:"column:created_at;type:timestamp;not null;default:NOW();<-:create"`
	UpdatedAt             time.Time  `json:"updated_at" gorm:"column:updated_at;type:timestamp;default:null"`
}

func (ProjectAssistant) TableName() string {
	return "project_assistants"
}

func (pa *ProjectAssistant) BeforeCreate(tx *gorm.DB) (err error) {
	if utils.IsEmpty(pa.Id) {
		pa.Id = uuid.NewString()
	}
	if pa.CreatedAt.IsZero() {
		pa.CreatedAt = time.Now()
	}
	if pa.GenerationTimestamp.IsZero() {
		pa.GenerationTimestamp = pa.CreatedAt
	}
	return nil
}
