// Package memory implements the repository interfaces on plain in-process
// maps. It is the storage variant used by tests and by development
// bootstrap without a database. Every store owns its id sequence; ids are
// never shared across store instances.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/filmorate/filmorate/internal/domain/film"
	"github.com/filmorate/filmorate/internal/domain/shared"
)

// FilmStore implements film.Repository on an in-memory map.
type FilmStore struct {
	mu     sync.RWMutex
	films  map[film.FilmID]*film.Film
	nextID film.FilmID
}

// NewFilmStore creates an empty FilmStore.
func NewFilmStore() *FilmStore {
	return &FilmStore{
		films:  make(map[film.FilmID]*film.Film),
		nextID: 1,
	}
}

// Create stores a new film and assigns the next id from the store-owned
// sequence. Genre sets are not stored here; see GenreStore.
func (s *FilmStore) Create(_ context.Context, f *film.Film) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f.ID = s.nextID
	s.nextID++

	stored := f.Clone()
	stored.Genres = nil
	s.films[f.ID] = stored
	return nil
}

// Update overwrites the scalar fields of an existing film.
func (s *FilmStore) Update(_ context.Context, f *film.Film) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[f.ID]; !ok {
		return shared.ErrFilmNotFound
	}
	stored := f.Clone()
	stored.Genres = nil
	s.films[f.ID] = stored
	return nil
}

// Delete removes the film row.
func (s *FilmStore) Delete(_ context.Context, id film.FilmID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[id]; !ok {
		return shared.ErrFilmNotFound
	}
	delete(s.films, id)
	return nil
}

// GetByID returns a detached copy of the film, without its genre set.
func (s *FilmStore) GetByID(_ context.Context, id film.FilmID) (*film.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.films[id]
	if !ok {
		return nil, shared.ErrFilmNotFound
	}
	return f.Clone(), nil
}

// GetAll returns detached copies of every film, ordered by ascending id.
func (s *FilmStore) GetAll(_ context.Context) ([]*film.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*film.Film, 0, len(s.films))
	for _, f := range s.films {
		out = append(out, f.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Exists checks film existence by id.
func (s *FilmStore) Exists(_ context.Context, id film.FilmID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.films[id]
	return ok, nil
}
