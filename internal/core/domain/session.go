package domain

import "time"

// Session is the server-issued proof of a successful login. Token is the
// opaque bearer value delivered to the client in the session cookie.
type Session struct {
	ID        string    `json:"-"`
	UserID    string    `json:"-"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user,omitempty"`
}
