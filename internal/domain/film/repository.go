package film

import (
	"context"

	"github.com/filmorate/filmorate/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// These interfaces define the storage contract for the film aggregate.
// Implementations live in infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository defines scalar film storage. It carries the film row and its
// MPA reference; the genre set is owned by GenreRepository and is assembled
// by the service layer.
type Repository interface {
	// Create persists a new film and assigns its generated id.
	Create(ctx context.Context, f *Film) error

	// Update overwrites the scalar fields of an existing film.
	// Returns shared.ErrFilmNotFound if the film does not exist.
	Update(ctx context.Context, f *Film) error

	// Delete removes the film row.
	// Returns shared.ErrFilmNotFound if the film does not exist.
	Delete(ctx context.Context, id FilmID) error

	// GetByID returns the film without its genre set.
	// Returns shared.ErrFilmNotFound if the film does not exist.
	GetByID(ctx context.Context, id FilmID) (*Film, error)

	// GetAll returns every film without genre sets, ordered by ascending id.
	GetAll(ctx context.Context) ([]*Film, error)

	// Exists checks film existence by id.
	Exists(ctx context.Context, id FilmID) (bool, error)
}

// GenreRepository defines reference-data access for genres and the
// film-genre relationship.
type GenreRepository interface {
	// GetByID returns a genre. Returns shared.ErrGenreNotFound if absent.
	GetByID(ctx context.Context, id GenreID) (*Genre, error)

	// GetAll returns every genre ordered by ascending id.
	GetAll(ctx context.Context) ([]Genre, error)

	// Exists checks genre existence by id.
	Exists(ctx context.Context, id GenreID) (bool, error)

	// ReplaceForFilm fully overwrites the genre set of a film
	// (delete-all-then-insert inside one transactional boundary).
	ReplaceForFilm(ctx context.Context, filmID FilmID, genres []Genre) error

	// FindByFilm returns the genre set of a film, ordered by ascending id.
	FindByFilm(ctx context.Context, filmID FilmID) ([]Genre, error)

	// FindByFilms returns the genre sets of several films in one pass.
	FindByFilms(ctx context.Context, filmIDs []FilmID) (map[FilmID][]Genre, error)
}

// MpaRepository defines read-only access to MPA rating reference data.
type MpaRepository interface {
	// GetByID returns an MPA rating. Returns shared.ErrMpaNotFound if absent.
	GetByID(ctx context.Context, id MpaID) (*Mpa, error)

	// GetAll returns every MPA rating ordered by ascending id.
	GetAll(ctx context.Context) ([]Mpa, error)

	// Exists checks MPA rating existence by id.
	Exists(ctx context.Context, id MpaID) (bool, error)
}

// LikeRepository defines storage of the film-user like relationship.
// A like is a membership fact: at most one row per (film, user) pair.
type LikeRepository interface {
	// Add inserts the pair if absent. Re-adding is a no-op.
	Add(ctx context.Context, filmID FilmID, userID user.UserID) error

	// Remove deletes the pair.
	// Returns shared.ErrLikeNotFound if the pair is absent.
	Remove(ctx context.Context, filmID FilmID, userID user.UserID) error

	// Exists checks whether the pair is present.
	Exists(ctx context.Context, filmID FilmID, userID user.UserID) (bool, error)

	// CountByFilm returns the number of distinct users who liked the film.
	CountByFilm(ctx context.Context, filmID FilmID) (int, error)

	// Counts returns like counts for every film that has at least one like.
	Counts(ctx context.Context) (map[FilmID]int, error)

	// RemoveByFilm deletes every like of a film (cascade on film delete).
	RemoveByFilm(ctx context.Context, filmID FilmID) error

	// RemoveByUser deletes every like of a user (cascade on user delete).
	RemoveByUser(ctx context.Context, userID user.UserID) error
}

// PopularityCache is an optional hot cache of per-film like counts.
// Services treat a nil cache as disabled.
type PopularityCache interface {
	// Top returns up to limit film ids ordered by descending like count,
	// ties broken by ascending id. Returns a cache-miss error when the
	// ranking is not cached.
	Top(ctx context.Context, limit int) ([]FilmID, error)

	// Rebuild replaces the cached ranking with the given counts.
	Rebuild(ctx context.Context, counts map[FilmID]int) error

	// IncrementLike bumps the cached like count of a film.
	IncrementLike(ctx context.Context, id FilmID) error

	// DecrementLike lowers the cached like count of a film.
	DecrementLike(ctx context.Context, id FilmID) error

	// Remove drops a film from the cached ranking.
	Remove(ctx context.Context, id FilmID) error

	// Invalidate drops the whole cached ranking.
	Invalidate(ctx context.Context) error
}
