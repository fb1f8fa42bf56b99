package domain

import "time"

// User models a registered account. PasswordHash and PinHash hold bcrypt
// digests; plaintext secrets never leave the service boundary.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PinHash      string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName returns the display name shown to the user after sign-in.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
