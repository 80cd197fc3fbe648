package calendar_client

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/configs"
)

func newExchanger(t *testing.T, cfg configs.GoogleOAuthConfig) OAuthExchanger {
	t.Helper()
	logger, err := commons.NewApplicationLogger(commons.Name("calendar-test"))
	require.NoError(t, err)
	return NewOAuthExchanger(cfg, logger)
}

func TestOAuthExchangerAuthCodeURL(t *testing.T) {
	ex := newExchanger(t, configs.GoogleOAuthConfig{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		RedirectURL:  "https://app.example.com/v1/calendar/callback",
	})

	consent, err := ex.AuthCodeURL("user-1")
	require.NoError(t, err)
	assert.Contains(t, consent, "client_id=client-1")
	assert.Contains(t, consent, "state=user-1")
	assert.Contains(t, consent, "access_type=offline")
	assert.Contains(t, consent, "prompt=consent")
	assert.Contains(t, consent, url.QueryEscape(ReadonlyScope))
	assert.Contains(t, consent, url.QueryEscape("https://app.example.com/v1/calendar/callback"))
}

func TestOAuthExchangerUnconfigured(t *testing.T) {
	ex := newExchanger(t, configs.GoogleOAuthConfig{})

	_, err := ex.AuthCodeURL("user-1")
	assert.True(t, commons.IsConfiguration(err))

	_, err = ex.Exchange(context.Background(), "code-1")
	assert.True(t, commons.IsConfiguration(err))
}
