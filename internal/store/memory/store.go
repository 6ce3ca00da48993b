package memory

import (
	db_models "agrotech-backend/internal/models"
	"agrotech-backend/internal/store"
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Compile-time check to ensure MemoryStore implements store.Store
var _ store.Store = (*MemoryStore)(nil)

// MemoryStore keeps users in process memory. It is the default backend when
// no DATABASE_URL is configured; its contents are lost on restart.
type MemoryStore struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]db_models.User
	byUsername map[string]uuid.UUID
	byEmail    map[string]uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[uuid.UUID]db_models.User),
		byUsername: make(map[string]uuid.UUID),
		byEmail:    make(map[string]uuid.UUID),
	}
}

// foldKey normalizes usernames and emails, which are unique ignoring case.
func foldKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// GetUserByID returns a copy of the user, or store.ErrNotFound.
func (s *MemoryStore) GetUserByID(_ context.Context, id uuid.UUID) (*db_models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

// GetUserByUsername returns a copy of the user, or store.ErrNotFound.
func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*db_models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[foldKey(username)]
	if !ok {
		return nil, store.ErrNotFound
	}
	user := s.users[id]
	return &user, nil
}

// CreateUser inserts user, filling ID and timestamps when unset.
func (s *MemoryStore) CreateUser(_ context.Context, user *db_models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := foldKey(user.Username)
	if _, exists := s.byUsername[key]; exists {
		return store.ErrConflict
	}
	emailKey := foldKey(user.Email)
	if _, exists := s.byEmail[emailKey]; exists {
		return store.ErrEmailConflict
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if _, exists := s.users[user.ID]; exists {
		return store.ErrConflict
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	s.users[user.ID] = *user
	s.byUsername[key] = user.ID
	s.byEmail[emailKey] = user.ID
	log.Printf("[MemoryStore] CreateUser: inserted user ID %s for username %s", user.ID, user.Username)
	return nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error { return nil }
