package postgres

import (
	"context"
	"fmt"

	"github.com/filmorate/filmorate/internal/domain/film"
	"github.com/filmorate/filmorate/internal/domain/shared"
	"github.com/filmorate/filmorate/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIKE REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// LikeRepository implements film.LikeRepository for PostgreSQL.
// A like is one row per (film, user) pair; the primary key enforces
// the at-most-once invariant.
type LikeRepository struct {
	conn *Connection
}

// NewLikeRepository creates a new LikeRepository.
func NewLikeRepository(conn *Connection) *LikeRepository {
	return &LikeRepository{conn: conn}
}

// Add inserts the pair if absent. Re-adding is a no-op.
func (r *LikeRepository) Add(ctx context.Context, filmID film.FilmID, userID user.UserID) error {
	query := `
		INSERT INTO film_like (film_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (film_id, user_id) DO NOTHING
	`

	_, err := r.conn.Exec(ctx, query, filmID.Int(), userID.Int())
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.ErrFilmNotFound
		}
		return fmt.Errorf("failed to add like: %w", err)
	}

	return nil
}

// Remove deletes the pair. Returns shared.ErrLikeNotFound if absent.
func (r *LikeRepository) Remove(ctx context.Context, filmID film.FilmID, userID user.UserID) error {
	result, err := r.conn.Exec(ctx,
		`DELETE FROM film_like WHERE film_id = $1 AND user_id = $2`,
		filmID.Int(), userID.Int(),
	)
	if err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrLikeNotFound
	}

	return nil
}

// Exists checks whether the pair is present.
func (r *LikeRepository) Exists(ctx context.Context, filmID film.FilmID, userID user.UserID) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM film_like WHERE film_id = $1 AND user_id = $2)`,
		filmID.Int(), userID.Int(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check like existence: %w", err)
	}

	return exists, nil
}

// CountByFilm returns the number of distinct users who liked the film.
func (r *LikeRepository) CountByFilm(ctx context.Context, filmID film.FilmID) (int, error) {
	var count int
	err := r.conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM film_like WHERE film_id = $1`, filmID.Int(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}

	return count, nil
}

// Counts returns like counts for every film that has at least one like.
func (r *LikeRepository) Counts(ctx context.Context) (map[film.FilmID]int, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT film_id, COUNT(*) FROM film_like GROUP BY film_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	defer rows.Close()

	counts := make(map[film.FilmID]int)
	for rows.Next() {
		var (
			filmID int
			count  int
		)
		if err := rows.Scan(&filmID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan like count: %w", err)
		}
		counts[film.FilmID(filmID)] = count
	}

	return counts, rows.Err()
}

// RemoveByFilm deletes every like of a film.
func (r *LikeRepository) RemoveByFilm(ctx context.Context, filmID film.FilmID) error {
	_, err := r.conn.Exec(ctx,
		`DELETE FROM film_like WHERE film_id = $1`, filmID.Int(),
	)
	if err != nil {
		return fmt.Errorf("failed to remove likes by film: %w", err)
	}

	return nil
}

// RemoveByUser deletes every like of a user.
func (r *LikeRepository) RemoveByUser(ctx context.Context, userID user.UserID) error {
	_, err := r.conn.Exec(ctx,
		`DELETE FROM film_like WHERE user_id = $1`, userID.Int(),
	)
	if err != nil {
		return fmt.Errorf("failed to remove likes by user: %w", err)
	}

	return nil
}
