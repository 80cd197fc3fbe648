package calendar_client

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"

	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/configs"
	"github.com/promptdeck/pkg/utils"
)

// ReadonlyScope is the only scope the consent flow ever requests.
const ReadonlyScope = calendar.CalendarReadonlyScope

// OAuthExchanger runs the calendar consent flow: it issues the Google
// consent URL and exchanges the returned authorization code for tokens.
type OAuthExchanger interface {
	AuthCodeURL(state string) (string, error)
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
}

type googleOAuthExchanger struct {
	config *oauth2.Config
	logger commons.Logger
}

func NewOAuthExchanger(cfg configs.GoogleOAuthConfig, logger commons.Logger) OAuthExchanger {
	return &googleOAuthExchanger{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{ReadonlyScope},
			Endpoint:     google.Endpoint,
		},
		logger: logger,
	}
}

func (g *googleOAuthExchanger) AuthCodeURL(state string) (string, error) {
	if utils.IsEmpty(g.config.ClientID) {
		return "", fmt.Errorf("%w: google oauth client is not configured", commons.ErrConfiguration)
	}
	// offline access so a refresh token arrives with the first grant
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent")), nil
}

func (g *googleOAuthExchanger) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if utils.IsEmpty(g.config.ClientID) {
		return nil, fmt.Errorf("%w: google oauth client is not configured", commons.ErrConfiguration)
	}
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	g.logger.Debugf("exchanged calendar authorization code, expiry=%s", token.Expiry)
	return token, nil
}
