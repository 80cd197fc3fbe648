package internal_service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_entity "github.com/promptdeck/api/recording-api/internal/entity"
	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/utils"
)

func TestUserLookupAndUpsert(t *testing.T) {
	svc := NewUserService(testConnector(t), testLogger(t))
	ctx := context.Background()

	_, err := svc.Lookup(ctx, "nobody@example.com")
	assert.True(t, commons.IsNotFound(err))

	created, err := svc.Upsert(ctx, "Dev@Example.com", utils.Ptr("Dev One"), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, created.Id)
	assert.Equal(t, "dev@example.com", created.Email)

	// lookup is normalized the same way as upsert
	found, err := svc.Lookup(ctx, " DEV@example.com ")
	require.NoError(t, err)
	assert.Equal(t, created.Id, found.Id)

	updated, err := svc.Upsert(ctx, "dev@example.com", utils.Ptr("Dev Renamed"), utils.Ptr("https://img.example.com/a.png"))
	require.NoError(t, err)
	assert.Equal(t, created.Id, updated.Id)
	require.NotNil(t, updated.Name)
	assert.Equal(t, "Dev Renamed", *updated.Name)

	_, err = svc.Lookup(ctx, "")
	assert.Error(t, err)
}

func TestSaveCalendarTokenUpsert(t *testing.T) {
	conn := testConnector(t)
	svc := NewUserService(conn, testLogger(t))
	ctx := context.Background()

	err := svc.SaveCalendarToken(ctx, internal_entity.UserCalendarToken{AccessToken: "tok"})
	assert.True(t, commons.IsUnsupported(err))
	err = svc.SaveCalendarToken(ctx, internal_entity.UserCalendarToken{UserId: "u-1"})
	assert.True(t, commons.IsUnsupported(err))

	grant := internal_entity.UserCalendarToken{
		UserId:       "u-1",
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(time.Hour),
		Scope:        "https://www.googleapis.com/auth/calendar.readonly",
	}
	require.NoError(t, svc.SaveCalendarToken(ctx, grant))

	// a repeat grant replaces the row instead of adding one
	grant.AccessToken = "access-2"
	require.NoError(t, svc.SaveCalendarToken(ctx, grant))

	var tokens []internal_entity.UserCalendarToken
	require.NoError(t, conn.DB(ctx).Find(&tokens).Error)
	require.Len(t, tokens, 1)
	assert.Equal(t, "u-1", tokens[0].UserId)
	assert.Equal(t, "access-2", tokens[0].AccessToken)
	assert.Equal(t, "refresh-1", tokens[0].RefreshToken)
}
