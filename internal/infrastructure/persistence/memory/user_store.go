package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/filmorate/filmorate/internal/domain/shared"
	"github.com/filmorate/filmorate/internal/domain/user"
)

// UserStore implements user.Repository on an in-memory map.
type UserStore struct {
	mu     sync.RWMutex
	users  map[user.UserID]*user.User
	nextID user.UserID
}

// NewUserStore creates an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{
		users:  make(map[user.UserID]*user.User),
		nextID: 1,
	}
}

// Create stores a new user and assigns the next id from the store-owned
// sequence.
func (s *UserStore) Create(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.nextID
	s.nextID++
	s.users[u.ID] = u.Clone()
	return nil
}

// Update overwrites the scalar fields of an existing user.
func (s *UserStore) Update(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return shared.ErrUserNotFound
	}
	s.users[u.ID] = u.Clone()
	return nil
}

// Delete removes the user row.
func (s *UserStore) Delete(_ context.Context, id user.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return shared.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

// GetByID returns a detached copy of the user.
func (s *UserStore) GetByID(_ context.Context, id user.UserID) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, shared.ErrUserNotFound
	}
	return u.Clone(), nil
}

// GetByLogin returns a detached copy of the user owning the login.
func (s *UserStore) GetByLogin(_ context.Context, login string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Login == login {
			return u.Clone(), nil
		}
	}
	return nil, shared.ErrUserNotFound
}

// GetAll returns detached copies of every user, ordered by ascending id.
func (s *UserStore) GetAll(_ context.Context) ([]*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*user.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByIDs returns users matching the given ids, ordered by ascending id.
// Missing ids are skipped.
func (s *UserStore) GetByIDs(_ context.Context, ids []user.UserID) ([]*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Exists checks user existence by id.
func (s *UserStore) Exists(_ context.Context, id user.UserID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[id]
	return ok, nil
}
