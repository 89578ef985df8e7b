package postgres

import (
	"context"
	"fmt"

	"github.com/filmorate/filmorate/internal/domain/film"
	"github.com/filmorate/filmorate/internal/domain/shared"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// GENRE REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// GenreRepository implements film.GenreRepository for PostgreSQL.
// The genre catalog is seeded by migrations; only the film-genre
// relationship is written at runtime.
type GenreRepository struct {
	conn *Connection
}

// NewGenreRepository creates a new GenreRepository.
func NewGenreRepository(conn *Connection) *GenreRepository {
	return &GenreRepository{conn: conn}
}

// GetByID returns a genre by id.
func (r *GenreRepository) GetByID(ctx context.Context, id film.GenreID) (*film.Genre, error) {
	var (
		g     film.Genre
		rawID int
	)

	err := r.conn.QueryRow(ctx,
		`SELECT id, name FROM genres WHERE id = $1`, id.Int(),
	).Scan(&rawID, &g.Name)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}

	g.ID = film.GenreID(rawID)
	return &g, nil
}

// GetAll returns every genre ordered by ascending id.
func (r *GenreRepository) GetAll(ctx context.Context) ([]film.Genre, error) {
	rows, err := r.conn.Query(ctx, `SELECT id, name FROM genres ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	return collectGenres(rows)
}

// Exists checks genre existence by id.
func (r *GenreRepository) Exists(ctx context.Context, id film.GenreID) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM genres WHERE id = $1)`, id.Int(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check genre existence: %w", err)
	}

	return exists, nil
}

// ReplaceForFilm fully overwrites the genre set of a film. Delete and
// re-insert run in one transaction so readers never see a partial set.
func (r *GenreRepository) ReplaceForFilm(ctx context.Context, filmID film.FilmID, genres []film.Genre) error {
	return r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM film_genre WHERE film_id = $1`, filmID.Int(),
		); err != nil {
			return fmt.Errorf("failed to clear film genres: %w", err)
		}

		for _, g := range genres {
			_, err := tx.Exec(ctx,
				`INSERT INTO film_genre (film_id, genre_id) VALUES ($1, $2)
				 ON CONFLICT (film_id, genre_id) DO NOTHING`,
				filmID.Int(), g.ID.Int(),
			)
			if err != nil {
				if IsForeignKeyViolation(err) {
					return shared.ErrGenreNotFound
				}
				return fmt.Errorf("failed to insert film genre: %w", err)
			}
		}

		return nil
	})
}

// FindByFilm returns the genre set of a film, ordered by ascending id.
func (r *GenreRepository) FindByFilm(ctx context.Context, filmID film.FilmID) ([]film.Genre, error) {
	query := `
		SELECT g.id, g.name
		FROM film_genre fg
		JOIN genres g ON g.id = fg.genre_id
		WHERE fg.film_id = $1
		ORDER BY g.id
	`

	rows, err := r.conn.Query(ctx, query, filmID.Int())
	if err != nil {
		return nil, fmt.Errorf("failed to list film genres: %w", err)
	}
	defer rows.Close()

	return collectGenres(rows)
}

// FindByFilms returns the genre sets of several films in one query.
func (r *GenreRepository) FindByFilms(ctx context.Context, filmIDs []film.FilmID) (map[film.FilmID][]film.Genre, error) {
	result := make(map[film.FilmID][]film.Genre, len(filmIDs))
	if len(filmIDs) == 0 {
		return result, nil
	}

	raw := make([]int, len(filmIDs))
	for i, id := range filmIDs {
		raw[i] = id.Int()
	}

	query := `
		SELECT fg.film_id, g.id, g.name
		FROM film_genre fg
		JOIN genres g ON g.id = fg.genre_id
		WHERE fg.film_id = ANY($1)
		ORDER BY fg.film_id, g.id
	`

	rows, err := r.conn.Query(ctx, query, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres by films: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			filmID  int
			genreID int
			g       film.Genre
		)
		if err := rows.Scan(&filmID, &genreID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan film genre: %w", err)
		}
		g.ID = film.GenreID(genreID)
		result[film.FilmID(filmID)] = append(result[film.FilmID(filmID)], g)
	}

	return result, rows.Err()
}

func collectGenres(rows pgx.Rows) ([]film.Genre, error) {
	genres := make([]film.Genre, 0)
	for rows.Next() {
		var (
			g     film.Genre
			rawID int
		)
		if err := rows.Scan(&rawID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		g.ID = film.GenreID(rawID)
		genres = append(genres, g)
	}

	return genres, rows.Err()
}

// ══════════════════════════════════════════════════════════════════════════════
// MPA REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// MpaRepository implements film.MpaRepository for PostgreSQL.
type MpaRepository struct {
	conn *Connection
}

// NewMpaRepository creates a new MpaRepository.
func NewMpaRepository(conn *Connection) *MpaRepository {
	return &MpaRepository{conn: conn}
}

// GetByID returns an MPA rating by id.
func (r *MpaRepository) GetByID(ctx context.Context, id film.MpaID) (*film.Mpa, error) {
	var (
		m     film.Mpa
		rawID int
	)

	err := r.conn.QueryRow(ctx,
		`SELECT id, name, description FROM mpa_ratings WHERE id = $1`, id.Int(),
	).Scan(&rawID, &m.Name, &m.Description)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrMpaNotFound
		}
		return nil, fmt.Errorf("failed to get mpa rating: %w", err)
	}

	m.ID = film.MpaID(rawID)
	return &m, nil
}

// GetAll returns every MPA rating ordered by ascending id.
func (r *MpaRepository) GetAll(ctx context.Context) ([]film.Mpa, error) {
	rows, err := r.conn.Query(ctx, `SELECT id, name, description FROM mpa_ratings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list mpa ratings: %w", err)
	}
	defer rows.Close()

	ratings := make([]film.Mpa, 0)
	for rows.Next() {
		var (
			m     film.Mpa
			rawID int
		)
		if err := rows.Scan(&rawID, &m.Name, &m.Description); err != nil {
			return nil, fmt.Errorf("failed to scan mpa rating: %w", err)
		}
		m.ID = film.MpaID(rawID)
		ratings = append(ratings, m)
	}

	return ratings, rows.Err()
}

// Exists checks MPA rating existence by id.
func (r *MpaRepository) Exists(ctx context.Context, id film.MpaID) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM mpa_ratings WHERE id = $1)`, id.Int(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check mpa existence: %w", err)
	}

	return exists, nil
}
