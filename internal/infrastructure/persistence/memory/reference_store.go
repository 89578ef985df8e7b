package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/filmorate/filmorate/internal/domain/film"
	"github.com/filmorate/filmorate/internal/domain/shared"
)

// DefaultGenres is the reference genre catalog seeded into a fresh store.
func DefaultGenres() []film.Genre {
	return []film.Genre{
		{ID: 1, Name: "Comedy"},
		{ID: 2, Name: "Drama"},
		{ID: 3, Name: "Cartoon"},
		{ID: 4, Name: "Thriller"},
		{ID: 5, Name: "Documentary"},
		{ID: 6, Name: "Action"},
	}
}

// DefaultMpaRatings is the reference MPA catalog seeded into a fresh store.
func DefaultMpaRatings() []film.Mpa {
	return []film.Mpa{
		{ID: 1, Name: "G", Description: "No age restrictions"},
		{ID: 2, Name: "PG", Description: "Parental guidance suggested"},
		{ID: 3, Name: "PG-13", Description: "Not recommended under 13"},
		{ID: 4, Name: "R", Description: "Under 17 requires an adult"},
		{ID: 5, Name: "NC-17", Description: "No one 17 and under admitted"},
	}
}

// GenreStore implements film.GenreRepository on in-memory maps. It owns
// both the genre catalog and the film-genre relationship rows.
type GenreStore struct {
	mu     sync.RWMutex
	genres map[film.GenreID]film.Genre
	byFilm map[film.FilmID][]film.GenreID
}

// NewGenreStore creates a GenreStore seeded with the given catalog.
func NewGenreStore(catalog []film.Genre) *GenreStore {
	s := &GenreStore{
		genres: make(map[film.GenreID]film.Genre, len(catalog)),
		byFilm: make(map[film.FilmID][]film.GenreID),
	}
	for _, g := range catalog {
		s.genres[g.ID] = g
	}
	return s
}

// GetByID returns a genre from the catalog.
func (s *GenreStore) GetByID(_ context.Context, id film.GenreID) (*film.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.genres[id]
	if !ok {
		return nil, shared.ErrGenreNotFound
	}
	return &g, nil
}

// GetAll returns the catalog ordered by ascending id.
func (s *GenreStore) GetAll(_ context.Context) ([]film.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]film.Genre, 0, len(s.genres))
	for _, g := range s.genres {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Exists checks genre existence by id.
func (s *GenreStore) Exists(_ context.Context, id film.GenreID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.genres[id]
	return ok, nil
}

// ReplaceForFilm fully overwrites the genre set of a film. The whole
// replacement happens under one lock, so no reader ever observes the
// intermediate empty state.
func (s *GenreStore) ReplaceForFilm(_ context.Context, filmID film.FilmID, genres []film.Genre) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(genres) == 0 {
		delete(s.byFilm, filmID)
		return nil
	}
	ids := make([]film.GenreID, 0, len(genres))
	seen := make(map[film.GenreID]struct{}, len(genres))
	for _, g := range genres {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		ids = append(ids, g.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	s.byFilm[filmID] = ids
	return nil
}

// FindByFilm returns the genre set of a film, ordered by ascending id.
func (s *GenreStore) FindByFilm(_ context.Context, filmID film.FilmID) ([]film.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.genresOf(filmID), nil
}

// FindByFilms returns the genre sets of several films in one pass.
func (s *GenreStore) FindByFilms(_ context.Context, filmIDs []film.FilmID) (map[film.FilmID][]film.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[film.FilmID][]film.Genre, len(filmIDs))
	for _, id := range filmIDs {
		out[id] = s.genresOf(id)
	}
	return out, nil
}

// genresOf resolves relationship rows to catalog entries. Callers must
// hold the lock.
func (s *GenreStore) genresOf(filmID film.FilmID) []film.Genre {
	ids := s.byFilm[filmID]
	out := make([]film.Genre, 0, len(ids))
	for _, id := range ids {
		if g, ok := s.genres[id]; ok {
			out = append(out, g)
		}
	}
	return out
}

// MpaStore implements film.MpaRepository on an in-memory map.
type MpaStore struct {
	mu      sync.RWMutex
	ratings map[film.MpaID]film.Mpa
}

// NewMpaStore creates an MpaStore seeded with the given catalog.
func NewMpaStore(catalog []film.Mpa) *MpaStore {
	s := &MpaStore{ratings: make(map[film.MpaID]film.Mpa, len(catalog))}
	for _, m := range catalog {
		s.ratings[m.ID] = m
	}
	return s
}

// GetByID returns an MPA rating from the catalog.
func (s *MpaStore) GetByID(_ context.Context, id film.MpaID) (*film.Mpa, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.ratings[id]
	if !ok {
		return nil, shared.ErrMpaNotFound
	}
	return &m, nil
}

// GetAll returns the catalog ordered by ascending id.
func (s *MpaStore) GetAll(_ context.Context) ([]film.Mpa, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]film.Mpa, 0, len(s.ratings))
	for _, m := range s.ratings {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Exists checks MPA rating existence by id.
func (s *MpaStore) Exists(_ context.Context, id film.MpaID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.ratings[id]
	return ok, nil
}
