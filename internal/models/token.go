package models

import "time"

const (
	// TokenCookieName is the cookie carrying the session token.
	TokenCookieName = "tokenId"
	// DefaultTokenTTL is how long the token cookie lives after registration.
	DefaultTokenTTL = 7 * 24 * time.Hour
)

// Token is the bearer capability handed out at registration. It is the
// owning user's ID and nothing more: whoever presents it acts as that user.
type Token string

// UserID returns the ID of the user the token stands for.
func (t Token) UserID() string {
	return string(t)
}

// IsZero reports whether no token was presented.
func (t Token) IsZero() bool {
	return t == ""
}

func (t Token) String() string {
	return string(t)
}
