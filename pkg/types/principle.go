package types

import "github.com/golang-jwt/jwt/v5"

// SessionPrinciple identifies the caller of an authenticated endpoint
// and carries the Google provider token from their sign-in session.
type SessionPrinciple struct {
	UserId        string
	Email         string
	ProviderToken string
}

// SessionClaims is the JWT payload issued at sign-in.
type SessionClaims struct {
	Email         string `json:"email"`
	ProviderToken string `json:"provider_token,omitempty"`
	jwt.RegisteredClaims
}

func (c *SessionClaims) ToPrinciple() *SessionPrinciple {
	return &SessionPrinciple{
		UserId:        c.Subject,
		Email:         c.Email,
		ProviderToken: c.ProviderToken,
	}
}
