package postgres

import (
	"context"
	"fmt"

	"github.com/filmorate/filmorate/internal/domain/user"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// FRIENDSHIP REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// FriendshipRepository implements user.FriendshipRepository for PostgreSQL.
// Every friendship is stored as two directional rows written in one
// transaction, so queries from either side always agree.
type FriendshipRepository struct {
	conn *Connection
}

// NewFriendshipRepository creates a new FriendshipRepository.
func NewFriendshipRepository(conn *Connection) *FriendshipRepository {
	return &FriendshipRepository{conn: conn}
}

// Add links both users. Adding an existing friendship is a no-op.
func (r *FriendshipRepository) Add(ctx context.Context, id, otherID user.UserID) error {
	return r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		query := `
			INSERT INTO friendship (user_id, friend_id)
			VALUES ($1, $2), ($2, $1)
			ON CONFLICT (user_id, friend_id) DO NOTHING
		`

		if _, err := tx.Exec(ctx, query, id.Int(), otherID.Int()); err != nil {
			return fmt.Errorf("failed to add friendship: %w", err)
		}

		return nil
	})
}

// Remove unlinks both users. Removing an absent friendship is a no-op.
func (r *FriendshipRepository) Remove(ctx context.Context, id, otherID user.UserID) error {
	return r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		query := `
			DELETE FROM friendship
			WHERE (user_id = $1 AND friend_id = $2)
			   OR (user_id = $2 AND friend_id = $1)
		`

		if _, err := tx.Exec(ctx, query, id.Int(), otherID.Int()); err != nil {
			return fmt.Errorf("failed to remove friendship: %w", err)
		}

		return nil
	})
}

// FriendIDs returns the ids of the users related to id, ordered ascending.
func (r *FriendshipRepository) FriendIDs(ctx context.Context, id user.UserID) ([]user.UserID, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT friend_id FROM friendship WHERE user_id = $1 ORDER BY friend_id`,
		id.Int(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	ids := make([]user.UserID, 0)
	for rows.Next() {
		var friendID int
		if err := rows.Scan(&friendID); err != nil {
			return nil, fmt.Errorf("failed to scan friend id: %w", err)
		}
		ids = append(ids, user.UserID(friendID))
	}

	return ids, rows.Err()
}

// AreFriends checks whether the two users are linked.
func (r *FriendshipRepository) AreFriends(ctx context.Context, id, otherID user.UserID) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM friendship WHERE user_id = $1 AND friend_id = $2)`,
		id.Int(), otherID.Int(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}

	return exists, nil
}

// RemoveAllOf unlinks the user from everyone.
func (r *FriendshipRepository) RemoveAllOf(ctx context.Context, id user.UserID) error {
	return r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		query := `DELETE FROM friendship WHERE user_id = $1 OR friend_id = $1`

		if _, err := tx.Exec(ctx, query, id.Int()); err != nil {
			return fmt.Errorf("failed to remove friendships: %w", err)
		}

		return nil
	})
}
