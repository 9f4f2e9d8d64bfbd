// Package models holds the client-side data types exchanged with the backend.
package models

import "strings"

// User is the profile returned by /users/login and cached next to the
// session token for display.
type User struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Surname string `json:"surname,omitempty"`
	Email   string `json:"email,omitempty"`
}

// DisplayName returns "Name Surname", falling back to the email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	full := strings.TrimSpace(u.Name + " " + u.Surname)
	if full != "" {
		return full
	}
	return u.Email
}

// Credentials is the /users/login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the /users/complete-registration request body.
type Registration struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
