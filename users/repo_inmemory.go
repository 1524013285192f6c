package users

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-signin/internal/errors"
)

var _ UserRepo = (*InMemoryUserRepo)(nil)

// InMemoryUserRepo is an in-memory implementation of UserRepo. Emails are
// matched case-insensitively and lookups return copies.
type InMemoryUserRepo struct {
	mu       sync.RWMutex
	users    map[string]*User
	emailIds map[string]string // email to user id
}

// NewInMemoryUserRepo creates a new in-memory user repository
func NewInMemoryUserRepo() *InMemoryUserRepo {
	return &InMemoryUserRepo{
		users:    make(map[string]*User),
		emailIds: make(map[string]string),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Upsert creates or updates a user, assigning an ID when it has none
func (r *InMemoryUserRepo) Upsert(user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	// An email change must release the previous address
	if prev, ok := r.users[user.ID]; ok && emailKey(prev.Email) != emailKey(user.Email) {
		delete(r.emailIds, emailKey(prev.Email))
	}
	// Store a copy to avoid external modifications
	stored := *user
	r.users[user.ID] = &stored
	r.emailIds[emailKey(user.Email)] = user.ID
	return nil
}

func (r *InMemoryUserRepo) Delete(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.emailIds[emailKey(email)]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.emailIds, emailKey(email))
	delete(r.users, userID)
	return nil
}

func (r *InMemoryUserRepo) GetByEmail(email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.emailIds[emailKey(email)]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	stored, ok := r.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u := *stored
	return &u, nil
}

func (r *InMemoryUserRepo) GetByID(id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u := *stored
	return &u, nil
}
