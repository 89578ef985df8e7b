package service

import (
	"context"

	"github.com/filmorate/filmorate/internal/domain/film"
	"github.com/filmorate/filmorate/internal/domain/shared"
	"github.com/filmorate/filmorate/internal/domain/user"
	"github.com/filmorate/filmorate/pkg/logger"
)

// UserService orchestrates user CRUD with upsert-by-login semantics.
type UserService struct {
	users       user.Repository
	friendships user.FriendshipRepository
	likes       film.LikeRepository
	cache       film.PopularityCache // optional, nil disables caching
	validation  *ValidationService
	log         *logger.Logger
}

// NewUserService creates a new UserService. The cache may be nil.
func NewUserService(
	users user.Repository,
	friendships user.FriendshipRepository,
	likes film.LikeRepository,
	cache film.PopularityCache,
	validation *ValidationService,
	log *logger.Logger,
) *UserService {
	return &UserService{
		users:       users,
		friendships: friendships,
		likes:       likes,
		cache:       cache,
		validation:  validation,
		log:         log,
	}
}

// Add persists a user with upsert-by-login semantics. The login is the
// natural business key:
//
//   - login already taken, incoming id zero or equal to the owner's id:
//     the existing row is updated;
//   - login already taken by a different id: the request is ambiguous and
//     fails with a not-found error;
//   - login free: the user is created with a freshly assigned id.
func (s *UserService) Add(ctx context.Context, u *user.User) (*user.User, error) {
	if err := s.validation.ValidateUser(u); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByLogin(ctx, u.Login)
	switch {
	case err == nil:
		if u.ID != 0 && u.ID != existing.ID {
			s.log.Warn("conflicting upsert by login",
				logger.Login(u.Login), logger.UserID(u.ID.Int()))
			return nil, shared.ErrLoginConflict
		}
		u.ID = existing.ID
		if err := s.users.Update(ctx, u); err != nil {
			return nil, err
		}
		s.log.Info("user updated via upsert", logger.UserID(u.ID.Int()), logger.Login(u.Login))
		return s.users.GetByID(ctx, u.ID)
	case shared.IsNotFound(err):
		if err := s.users.Create(ctx, u); err != nil {
			return nil, err
		}
		s.log.Info("user created", logger.UserID(u.ID.Int()), logger.Login(u.Login))
		return s.users.GetByID(ctx, u.ID)
	default:
		return nil, err
	}
}

// Update fully overwrites the scalar fields of an existing user. Unlike
// Add, it is strict: the id must reference an existing row, and the login
// must not move onto a row owned by a different id. The login ownership
// check runs in the service so every backend enforces the natural key,
// not only the ones with a UNIQUE constraint.
func (s *UserService) Update(ctx context.Context, u *user.User) (*user.User, error) {
	if err := s.validation.ValidateUser(u); err != nil {
		return nil, err
	}
	if err := s.validation.EnsureUserExists(ctx, u.ID); err != nil {
		return nil, err
	}

	owner, err := s.users.GetByLogin(ctx, u.Login)
	switch {
	case err == nil:
		if owner.ID != u.ID {
			s.log.Warn("update would steal login",
				logger.Login(u.Login), logger.UserID(u.ID.Int()))
			return nil, shared.ErrLoginConflict
		}
	case shared.IsNotFound(err):
		// Login is free.
	default:
		return nil, err
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user updated", logger.UserID(u.ID.Int()))
	return s.users.GetByID(ctx, u.ID)
}

// GetByID returns a user by id.
func (s *UserService) GetByID(ctx context.Context, id user.UserID) (*user.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetAll returns every user.
func (s *UserService) GetAll(ctx context.Context) ([]*user.User, error) {
	return s.users.GetAll(ctx)
}

// Delete removes a user together with every friendship and like row
// referencing it, so no orphan relationship rows survive the operation.
func (s *UserService) Delete(ctx context.Context, id user.UserID) error {
	if err := s.validation.EnsureUserExists(ctx, id); err != nil {
		return err
	}
	if err := s.friendships.RemoveAllOf(ctx, id); err != nil {
		return err
	}
	if err := s.likes.RemoveByUser(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	// Removing the user's likes changes the popularity ranking.
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn("popularity cache invalidation failed", logger.Err(err))
		}
	}
	s.log.Info("user deleted", logger.UserID(id.Int()))
	return nil
}
