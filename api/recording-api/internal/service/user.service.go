package internal_service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	internal_entity "github.com/promptdeck/api/recording-api/internal/entity"
	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/connectors"
	"github.com/promptdeck/pkg/utils"
)

// UserService resolves accounts by email and keeps their calendar grant.
type UserService interface {
	Lookup(ctx context.Context, email string) (*internal_entity.User, error)
	Upsert(ctx context.Context, email string, name, image *string) (*internal_entity.User, error)
	SaveCalendarToken(ctx context.Context, token internal_entity.UserCalendarToken) error
}

type userService struct {
	postgres connectors.PostgresConnector
	logger   commons.Logger
}

func NewUserService(postgres connectors.PostgresConnector, logger commons.Logger) UserService {
	return &userService{postgres: postgres, logger: logger}
}

func (s *userService) Lookup(ctx context.Context, email string) (*internal_entity.User, error) {
	if utils.IsEmpty(email) {
		return nil, fmt.Errorf("%w: email is required", commons.ErrUnsupported)
	}
	var user internal_entity.User
	err := s.postgres.DB(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", email, commons.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up user %s: %w", email, err)
	}
	return &user, nil
}

// Upsert creates the account on first sight and refreshes profile fields
// after.
func (s *userService) Upsert(ctx context.Context, email string, name, image *string) (*internal_entity.User, error) {
	if utils.IsEmpty(email) {
		return nil, fmt.Errorf("%w: email is required", commons.ErrUnsupported)
	}
	normalized := strings.ToLower(strings.TrimSpace(email))

	user, err := s.Lookup(ctx, normalized)
	if err != nil {
		if !commons.IsNotFound(err) {
			return nil, err
		}
		user = &internal_entity.User{Email: normalized, Name: name, Image: image}
		if err := s.postgres.DB(ctx).Create(user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", normalized, err)
		}
		s.logger.Infof("created user: id=%s", user.Id)
		return user, nil
	}

	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
		user.Name = name
	}
	if image != nil {
		updates["image"] = *image
		user.Image = image
	}
	if len(updates) > 0 {
		if err := s.postgres.DB(ctx).Model(&internal_entity.User{}).Where("id = ?", user.Id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update user %s: %w", normalized, err)
		}
	}
	return user, nil
}

// SaveCalendarToken upserts the calendar grant delivered by the consent
// callback. A repeat grant overwrites the previous row for the user.
func (s *userService) SaveCalendarToken(ctx context.Context, token internal_entity.UserCalendarToken) error {
	if utils.IsEmpty(token.UserId) {
		return fmt.Errorf("%w: user id is required", commons.ErrUnsupported)
	}
	if utils.IsEmpty(token.AccessToken) {
		return fmt.Errorf("%w: access token is required", commons.ErrUnsupported)
	}
	token.UpdatedAt = time.Now()
	err := s.postgres.DB(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, UpdateAll: true}).
		Create(&token).Error
	if err != nil {
		return fmt.Errorf("failed to save calendar token for user %s: %w", token.UserId, err)
	}
	s.logger.Debugf("saved calendar token: user=%s", token.UserId)
	return nil
}
