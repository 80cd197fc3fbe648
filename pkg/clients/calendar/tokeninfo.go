package calendar_client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/utils"
)

const (
	defaultTokenInfoEndpoint = "https://oauth2.googleapis.com/tokeninfo"
	calendarReadScope        = "https://www.googleapis.com/auth/calendar.readonly"
	calendarEventsScope      = "https://www.googleapis.com/auth/calendar.events.readonly"
)

// TokenStatus describes whether a provider token can reach the calendar.
type TokenStatus struct {
	IsAuthorized bool   `json:"isAuthorized"`
	Scope        string `json:"scope,omitempty"`
	ExpiresIn    int    `json:"expiresIn,omitempty"`
}

// TokenVerifier checks a Google OAuth access token against the
// tokeninfo endpoint.
type TokenVerifier interface {
	Verify(ctx context.Context, accessToken string) (*TokenStatus, error)
}

type tokenInfoResponse struct {
	Scope            string `json:"scope"`
	ExpiresIn        string `json:"expires_in"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type googleTokenVerifier struct {
	http     *resty.Client
	endpoint string
	logger   commons.Logger
}

func NewTokenVerifier(logger commons.Logger) TokenVerifier {
	return &googleTokenVerifier{
		http: resty.New().
			SetTimeout(10 * time.Second).
			SetRetryCount(2),
		endpoint: defaultTokenInfoEndpoint,
		logger:   logger,
	}
}

// Verify resolves the token's scopes. An expired or revoked token is
// reported as unauthorized, not as an error; only transport failures
// surface.
func (g *googleTokenVerifier) Verify(ctx context.Context, accessToken string) (*TokenStatus, error) {
	if utils.IsEmpty(accessToken) {
		return &TokenStatus{IsAuthorized: false}, nil
	}

	var payload tokenInfoResponse
	resp, err := g.http.R().
		SetContext(ctx).
		SetQueryParam("access_token", accessToken).
		SetResult(&payload).
		SetError(&payload).
		Get(g.endpoint)
	if err != nil {
		return nil, fmt.Errorf("token verification request failed: %w", err)
	}

	if resp.IsError() || payload.Error != "" {
		g.logger.Debugf("token rejected by tokeninfo: %s %s", payload.Error, payload.ErrorDescription)
		return &TokenStatus{IsAuthorized: false}, nil
	}

	authorized := strings.Contains(payload.Scope, calendarReadScope) ||
		strings.Contains(payload.Scope, calendarEventsScope) ||
		strings.Contains(payload.Scope, "https://www.googleapis.com/auth/calendar")

	expires := 0
	fmt.Sscanf(payload.ExpiresIn, "%d", &expires)
	return &TokenStatus{
		IsAuthorized: authorized,
		Scope:        payload.Scope,
		ExpiresIn:    expires,
	}, nil
}
