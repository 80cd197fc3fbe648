package internal_entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptdeck/pkg/utils"
)

// User is an account known to the prompt builder.
type User struct {
	Id        string    `json:"id" gorm:"type:varchar(36);primaryKey;<-:create"`
	Email     string    `json:"email" gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	Name      *string   `json:"name" gorm:"column:name;type:varchar(255)"`
	Image     *string   `json:"image" gorm:"column:image;type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;type:timestamp;not null;default:NOW();<-:create"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if utils.IsEmpty(u.Id) {
		u.Id = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	return nil
}
