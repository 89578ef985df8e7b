package user

import "context"

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Implementations live in infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository defines scalar user storage.
type Repository interface {
	// Create persists a new user and assigns its generated id.
	Create(ctx context.Context, u *User) error

	// Update overwrites the scalar fields of an existing user.
	// Returns shared.ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, u *User) error

	// Delete removes the user row.
	// Returns shared.ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id UserID) error

	// GetByID returns a user by id.
	// Returns shared.ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id UserID) (*User, error)

	// GetByLogin returns a user by the login natural key.
	// Returns shared.ErrUserNotFound if no user owns the login.
	GetByLogin(ctx context.Context, login string) (*User, error)

	// GetAll returns every user ordered by ascending id.
	GetAll(ctx context.Context) ([]*User, error)

	// GetByIDs returns users matching the given ids, ordered by ascending id.
	GetByIDs(ctx context.Context, ids []UserID) ([]*User, error)

	// Exists checks user existence by id.
	Exists(ctx context.Context, id UserID) (bool, error)
}

// FriendshipRepository defines storage of the symmetric friendship relation.
// Both directions of a pair are written and removed atomically, so the
// relation is always queryable consistently from either side.
type FriendshipRepository interface {
	// Add links both users. Adding an existing friendship is a no-op.
	Add(ctx context.Context, id, otherID UserID) error

	// Remove unlinks both users. Removing an absent friendship is a no-op.
	Remove(ctx context.Context, id, otherID UserID) error

	// FriendIDs returns the ids of the users related to id, ordered
	// ascending. An empty slice is returned for a user with no friends.
	FriendIDs(ctx context.Context, id UserID) ([]UserID, error)

	// AreFriends checks whether the two users are linked.
	AreFriends(ctx context.Context, id, otherID UserID) (bool, error)

	// RemoveAllOf unlinks the user from everyone (cascade on user delete).
	RemoveAllOf(ctx context.Context, id UserID) error
}
