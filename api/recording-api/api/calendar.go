package recording_api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	internal_entity "github.com/promptdeck/api/recording-api/internal/entity"
	calendar_client "github.com/promptdeck/pkg/clients/calendar"
	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/types"
	"github.com/promptdeck/pkg/utils"
)

// CalendarEvents handles GET /v1/calendar/events. The provider token
// rides on the caller's session; an expired grant maps to 403 so the
// client can restart the OAuth flow.
func (a *RecordingApi) CalendarEvents(c *gin.Context) {
	principle, err := types.CurrentPrinciple(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if utils.IsEmpty(principle.ProviderToken) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Calendar not authorized"})
		return
	}

	events, err := a.calendar.UpcomingEvents(c.Request.Context(), principle.ProviderToken)
	if err != nil {
		if commons.IsPermission(err) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Authorization expired"})
			return
		}
		a.respondError(c, err, "Failed to fetch calendar events")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "total": len(events)})
}

// CalendarAuthStatus handles GET /v1/calendar/auth-status.
func (a *RecordingApi) CalendarAuthStatus(c *gin.Context) {
	principle, err := types.CurrentPrinciple(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	status, err := a.tokens.Verify(c.Request.Context(), principle.ProviderToken)
	if err != nil {
		a.respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, status)
}

// CalendarAuthURL handles GET /v1/calendar/auth-url. The caller's user id
// travels as the OAuth state so the callback can attribute the grant.
func (a *RecordingApi) CalendarAuthURL(c *gin.Context) {
	principle, err := types.CurrentPrinciple(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	state := principle.UserId
	if utils.IsEmpty(state) {
		state = principle.Email
	}
	authUrl, err := a.oauth.AuthCodeURL(state)
	if err != nil {
		a.respondError(c, err, "Calendar authorization is not configured")
		return
	}
	c.JSON(http.StatusOK, gin.H{"authUrl": authUrl})
}

const calendarRedirectBase = "/dashboard/calendar"

// CalendarOAuthCallback handles GET /v1/calendar/callback, the browser
// redirect from Google's consent screen. Outcomes land back on the
// calendar page as query parameters, never as a JSON body.
func (a *RecordingApi) CalendarOAuthCallback(c *gin.Context) {
	if c.Query("error") != "" {
		c.Redirect(http.StatusFound, calendarRedirectBase+"?error=access_denied")
		return
	}
	code := c.Query("code")
	state := c.Query("state")
	if utils.IsEmpty(code) || utils.IsEmpty(state) {
		c.Redirect(http.StatusFound, calendarRedirectBase+"?error=invalid_request")
		return
	}

	token, err := a.oauth.Exchange(c.Request.Context(), code)
	if err != nil || utils.IsEmpty(token.AccessToken) {
		a.logger.Errorf("calendar code exchange failed: %v", err)
		c.Redirect(http.StatusFound, calendarRedirectBase+"?error=token_error")
		return
	}

	saveErr := a.users.SaveCalendarToken(c.Request.Context(), internal_entity.UserCalendarToken{
		UserId:       state,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
		Scope:        calendar_client.ReadonlyScope,
	})
	if saveErr != nil {
		a.logger.Errorf("failed to save calendar tokens: %v", saveErr)
		c.Redirect(http.StatusFound, calendarRedirectBase+"?error=save_failed")
		return
	}
	c.Redirect(http.StatusFound, calendarRedirectBase+"?success=true")
}
