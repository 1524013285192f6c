package users

import (
	"encoding/json"
	"fmt"
	"os"
)

// seedUser is the on-disk form of a user. Unlike User it carries the password
// hash, or a plain password that is hashed while loading.
type seedUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PasswordHash string `json:"password_hash"`
	Password     string `json:"password"`
	Verified     bool   `json:"verified"`
	Blocked      bool   `json:"blocked"`
}

// LoadFile reads a JSON array of users from path and upserts each into repo.
// It returns the number of users loaded.
func LoadFile(path string, repo UserRepo) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("users.LoadFile: %w", err)
	}

	var seeds []seedUser
	if err := json.Unmarshal(data, &seeds); err != nil {
		return 0, fmt.Errorf("users.LoadFile parse %s: %w", path, err)
	}

	for i, s := range seeds {
		if s.Email == "" {
			return i, fmt.Errorf("users.LoadFile: entry %d has no email", i)
		}

		hash := s.PasswordHash
		if hash == "" && s.Password != "" {
			if hash, err = HashPassword(s.Password); err != nil {
				return i, fmt.Errorf("users.LoadFile hash password for %s: %w", s.Email, err)
			}
		}

		if err := repo.Upsert(&User{
			ID:           s.ID,
			Email:        s.Email,
			Username:     s.Username,
			FirstName:    s.FirstName,
			LastName:     s.LastName,
			PasswordHash: hash,
			Verified:     s.Verified,
			Blocked:      s.Blocked,
		}); err != nil {
			return i, fmt.Errorf("users.LoadFile upsert %s: %w", s.Email, err)
		}
	}
	return len(seeds), nil
}
