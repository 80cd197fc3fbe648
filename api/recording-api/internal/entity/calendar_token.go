package internal_entity

import "time"

// UserCalendarToken stores the Google Calendar grant obtained through
// the consent callback, one row per user.
type UserCalendarToken struct {
	UserId       string    `json:"user_id" gorm:"column:user_id;type:varchar(36);primaryKey"`
	AccessToken  string    `json:"-" gorm:"column:access_token;type:text;not null"`
	RefreshToken string    `json:"-" gorm:"column:refresh_token;type:text"`
	ExpiresAt    time.Time `json:"expires_at" gorm:"column:expires_at;type:timestamp"`
	Scope        string    `json:"scope" gorm:"column:scope;type:varchar(255)"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;type:timestamp"`
}

func (UserCalendarToken) TableName() string {
	return "user_calendar_tokens"
}
