package memory

import (
	"context"
	"sync"

	"github.com/filmorate/filmorate/internal/domain/film"
	"github.com/filmorate/filmorate/internal/domain/shared"
	"github.com/filmorate/filmorate/internal/domain/user"
)

// LikeStore implements film.LikeRepository on an in-memory map keyed by
// film id. At most one entry per (film, user) pair.
type LikeStore struct {
	mu    sync.RWMutex
	likes map[film.FilmID]map[user.UserID]struct{}
}

// NewLikeStore creates an empty LikeStore.
func NewLikeStore() *LikeStore {
	return &LikeStore{likes: make(map[film.FilmID]map[user.UserID]struct{})}
}

// Add inserts the pair if absent. Re-adding is a no-op.
func (s *LikeStore) Add(_ context.Context, filmID film.FilmID, userID user.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byUser, ok := s.likes[filmID]
	if !ok {
		byUser = make(map[user.UserID]struct{})
		s.likes[filmID] = byUser
	}
	byUser[userID] = struct{}{}
	return nil
}

// Remove deletes the pair, failing when it is absent.
func (s *LikeStore) Remove(_ context.Context, filmID film.FilmID, userID user.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byUser, ok := s.likes[filmID]
	if !ok {
		return shared.ErrLikeNotFound
	}
	if _, ok := byUser[userID]; !ok {
		return shared.ErrLikeNotFound
	}
	delete(byUser, userID)
	if len(byUser) == 0 {
		delete(s.likes, filmID)
	}
	return nil
}

// Exists checks whether the pair is present.
func (s *LikeStore) Exists(_ context.Context, filmID film.FilmID, userID user.UserID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.likes[filmID][userID]
	return ok, nil
}

// CountByFilm returns the number of distinct users who liked the film.
func (s *LikeStore) CountByFilm(_ context.Context, filmID film.FilmID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.likes[filmID]), nil
}

// Counts returns like counts for every film with at least one like.
func (s *LikeStore) Counts(_ context.Context) (map[film.FilmID]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[film.FilmID]int, len(s.likes))
	for id, byUser := range s.likes {
		out[id] = len(byUser)
	}
	return out, nil
}

// RemoveByFilm deletes every like of a film.
func (s *LikeStore) RemoveByFilm(_ context.Context, filmID film.FilmID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.likes, filmID)
	return nil
}

// RemoveByUser deletes every like of a user.
func (s *LikeStore) RemoveByUser(_ context.Context, userID user.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for filmID, byUser := range s.likes {
		delete(byUser, userID)
		if len(byUser) == 0 {
			delete(s.likes, filmID)
		}
	}
	return nil
}
