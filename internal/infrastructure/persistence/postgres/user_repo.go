package postgres

import (
	"context"
	"fmt"

	"github.com/filmorate/filmorate/internal/domain/shared"
	"github.com/filmorate/filmorate/internal/domain/user"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// USER REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// UserRepository implements user.Repository for PostgreSQL.
type UserRepository struct {
	conn *Connection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(conn *Connection) *UserRepository {
	return &UserRepository{conn: conn}
}

const userSelectColumns = `id, email, login, name, birthday`

// Create persists a new user and assigns its generated id.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (email, login, name, birthday)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int
	err := r.conn.QueryRow(ctx, query,
		u.Email,
		u.Login,
		u.Name,
		u.Birthday,
	).Scan(&id)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrLoginConflict
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	u.ID = user.UserID(id)
	return nil
}

// Update overwrites the scalar fields of an existing user.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users SET
			email = $1,
			login = $2,
			name = $3,
			birthday = $4,
			updated_at = NOW()
		WHERE id = $5
	`

	result, err := r.conn.Exec(ctx, query,
		u.Email,
		u.Login,
		u.Name,
		u.Birthday,
		u.ID.Int(),
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrLoginConflict
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrUserNotFound
	}

	return nil
}

// Delete removes the user row.
func (r *UserRepository) Delete(ctx context.Context, id user.UserID) error {
	result, err := r.conn.Exec(ctx, `DELETE FROM users WHERE id = $1`, id.Int())
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrUserNotFound
	}

	return nil
}

// GetByID returns a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id user.UserID) (*user.User, error) {
	query := `SELECT ` + userSelectColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.conn.QueryRow(ctx, query, id.Int()))
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetByLogin returns a user by the login natural key.
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*user.User, error) {
	query := `SELECT ` + userSelectColumns + ` FROM users WHERE login = $1`

	u, err := scanUser(r.conn.QueryRow(ctx, query, login))
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by login: %w", err)
	}

	return u, nil
}

// GetAll returns every user ordered by ascending id.
func (r *UserRepository) GetAll(ctx context.Context) ([]*user.User, error) {
	query := `SELECT ` + userSelectColumns + ` FROM users ORDER BY id`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// GetByIDs returns users matching the given ids, ordered by ascending id.
// Missing ids are silently skipped.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []user.UserID) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}

	raw := make([]int, len(ids))
	for i, id := range ids {
		raw[i] = id.Int()
	}

	query := `SELECT ` + userSelectColumns + ` FROM users WHERE id = ANY($1) ORDER BY id`

	rows, err := r.conn.Query(ctx, query, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by ids: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// Exists checks user existence by id.
func (r *UserRepository) Exists(ctx context.Context, id user.UserID) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id.Int(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		u  user.User
		id int
	)

	err := row.Scan(&id, &u.Email, &u.Login, &u.Name, &u.Birthday)
	if err != nil {
		return nil, err
	}

	u.ID = user.UserID(id)
	return &u, nil
}

func collectUsers(rows pgx.Rows) ([]*user.User, error) {
	users := make([]*user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
