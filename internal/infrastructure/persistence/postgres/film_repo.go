package postgres

import (
	"context"
	"fmt"

	"github.com/filmorate/filmorate/internal/domain/film"
	"github.com/filmorate/filmorate/internal/domain/shared"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// FILM REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// FilmRepository implements film.Repository for PostgreSQL.
// Rows carry the joined MPA rating; genre sets are owned by GenreRepository.
type FilmRepository struct {
	conn *Connection
}

// NewFilmRepository creates a new FilmRepository.
func NewFilmRepository(conn *Connection) *FilmRepository {
	return &FilmRepository{conn: conn}
}

const filmSelectColumns = `
	f.id, f.name, f.description, f.release_date, f.duration,
	m.id, m.name, m.description
`

// Create persists a new film and assigns its generated id.
func (r *FilmRepository) Create(ctx context.Context, f *film.Film) error {
	query := `
		INSERT INTO films (name, description, release_date, duration, mpa_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int
	err := r.conn.QueryRow(ctx, query,
		f.Name,
		f.Description,
		f.ReleaseDate,
		f.Duration,
		f.Mpa.ID.Int(),
	).Scan(&id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.ErrMpaNotFound
		}
		return fmt.Errorf("failed to create film: %w", err)
	}

	f.ID = film.FilmID(id)
	return nil
}

// Update overwrites the scalar fields of an existing film.
func (r *FilmRepository) Update(ctx context.Context, f *film.Film) error {
	query := `
		UPDATE films SET
			name = $1,
			description = $2,
			release_date = $3,
			duration = $4,
			mpa_id = $5,
			updated_at = NOW()
		WHERE id = $6
	`

	result, err := r.conn.Exec(ctx, query,
		f.Name,
		f.Description,
		f.ReleaseDate,
		f.Duration,
		f.Mpa.ID.Int(),
		f.ID.Int(),
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.ErrMpaNotFound
		}
		return fmt.Errorf("failed to update film: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrFilmNotFound
	}

	return nil
}

// Delete removes the film row.
func (r *FilmRepository) Delete(ctx context.Context, id film.FilmID) error {
	result, err := r.conn.Exec(ctx, `DELETE FROM films WHERE id = $1`, id.Int())
	if err != nil {
		return fmt.Errorf("failed to delete film: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrFilmNotFound
	}

	return nil
}

// GetByID returns the film without its genre set.
func (r *FilmRepository) GetByID(ctx context.Context, id film.FilmID) (*film.Film, error) {
	query := `
		SELECT ` + filmSelectColumns + `
		FROM films f
		JOIN mpa_ratings m ON m.id = f.mpa_id
		WHERE f.id = $1
	`

	f, err := scanFilm(r.conn.QueryRow(ctx, query, id.Int()))
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrFilmNotFound
		}
		return nil, fmt.Errorf("failed to get film: %w", err)
	}

	return f, nil
}

// GetAll returns every film without genre sets, ordered by ascending id.
func (r *FilmRepository) GetAll(ctx context.Context) ([]*film.Film, error) {
	query := `
		SELECT ` + filmSelectColumns + `
		FROM films f
		JOIN mpa_ratings m ON m.id = f.mpa_id
		ORDER BY f.id
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list films: %w", err)
	}
	defer rows.Close()

	films := make([]*film.Film, 0)
	for rows.Next() {
		f, err := scanFilm(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan film: %w", err)
		}
		films = append(films, f)
	}

	return films, rows.Err()
}

// Exists checks film existence by id.
func (r *FilmRepository) Exists(ctx context.Context, id film.FilmID) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM films WHERE id = $1)`, id.Int(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check film existence: %w", err)
	}

	return exists, nil
}

// scanFilm scans a film row joined with its MPA rating.
func scanFilm(row pgx.Row) (*film.Film, error) {
	var (
		f     film.Film
		mpa   film.Mpa
		fID   int
		mpaID int
	)

	err := row.Scan(
		&fID,
		&f.Name,
		&f.Description,
		&f.ReleaseDate,
		&f.Duration,
		&mpaID,
		&mpa.Name,
		&mpa.Description,
	)
	if err != nil {
		return nil, err
	}

	f.ID = film.FilmID(fID)
	mpa.ID = film.MpaID(mpaID)
	f.Mpa = &mpa

	return &f, nil
}
