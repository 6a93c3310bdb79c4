// Package auth implements registration, password login and the user profile
// endpoint. Sessions are stateless signed tokens; there is no server-side
// session store.
package auth

import "time"

// User is one account. The password hash never serializes.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Credentials is the login/register request payload.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the auth response: a signed token plus the public user fields.
type Session struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// SessionUser is the user subset embedded in auth responses.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
