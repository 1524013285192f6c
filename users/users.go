package users

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           string `json:"id,omitempty"`         // Unique identifier for the user
	Email        string `json:"email,omitempty"`      // User's email address, used to sign in
	Username     string `json:"username,omitempty"`   // Display username
	PasswordHash string `json:"-"`                    // bcrypt hash of the user's password - never serialize
	FirstName    string `json:"first_name,omitempty"` // First name of the user
	LastName     string `json:"last_name,omitempty"`  // Last name of the user

	Verified bool `json:"verified,omitempty"` // Verified, has the user verified who they are
	Blocked  bool `json:"blocked,omitempty"`  // Blocked, has the user been blocked from signing in
}

// CanSignIn reports whether the account is allowed to authenticate at all.
func (u *User) CanSignIn() bool {
	return u != nil && u.Verified && !u.Blocked
}

// DisplayName returns the username, falling back to the email address.
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
