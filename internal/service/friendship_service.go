package service

import (
	"context"

	"github.com/filmorate/filmorate/internal/domain/shared"
	"github.com/filmorate/filmorate/internal/domain/user"
	"github.com/filmorate/filmorate/pkg/logger"
)

// FriendshipService maintains the symmetric friendship relation: adding or
// removing a friendship always touches both directions atomically, so the
// relation is consistent no matter which side queries it.
type FriendshipService struct {
	friendships user.FriendshipRepository
	users       user.Repository
	validation  *ValidationService
	log         *logger.Logger
}

// NewFriendshipService creates a new FriendshipService.
func NewFriendshipService(
	friendships user.FriendshipRepository,
	users user.Repository,
	validation *ValidationService,
	log *logger.Logger,
) *FriendshipService {
	return &FriendshipService{
		friendships: friendships,
		users:       users,
		validation:  validation,
		log:         log,
	}
}

// AddFriend links the two users as friends. Adding an existing friendship
// is a no-op, never an error and never a duplicate row.
func (s *FriendshipService) AddFriend(ctx context.Context, id, otherID user.UserID) error {
	if id == otherID {
		return shared.Validationf("friendship", "Add", "a user cannot befriend themselves")
	}
	if err := s.ensureBoth(ctx, id, otherID); err != nil {
		return err
	}

	linked, err := s.friendships.AreFriends(ctx, id, otherID)
	if err != nil {
		return err
	}
	if linked {
		return nil
	}

	if err := s.friendships.Add(ctx, id, otherID); err != nil {
		return err
	}
	s.log.Info("friendship added", logger.UserID(id.Int()), logger.FriendID(otherID.Int()))
	return nil
}

// RemoveFriend unlinks the two users. Removing an absent friendship is a
// no-op.
func (s *FriendshipService) RemoveFriend(ctx context.Context, id, otherID user.UserID) error {
	if err := s.ensureBoth(ctx, id, otherID); err != nil {
		return err
	}
	if err := s.friendships.Remove(ctx, id, otherID); err != nil {
		return err
	}
	s.log.Info("friendship removed", logger.UserID(id.Int()), logger.FriendID(otherID.Int()))
	return nil
}

// GetFriends returns the user's friends resolved to full User entities.
// A user with no friends yields an empty slice.
func (s *FriendshipService) GetFriends(ctx context.Context, id user.UserID) ([]*user.User, error) {
	if err := s.validation.EnsureUserExists(ctx, id); err != nil {
		return nil, err
	}
	ids, err := s.friendships.FriendIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.users.GetByIDs(ctx, ids)
}

// GetCommonFriends returns the intersection of the two users' friend sets
// as full User entities. No overlap yields an empty slice, never an error.
func (s *FriendshipService) GetCommonFriends(ctx context.Context, id, otherID user.UserID) ([]*user.User, error) {
	if err := s.ensureBoth(ctx, id, otherID); err != nil {
		return nil, err
	}

	first, err := s.friendships.FriendIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	second, err := s.friendships.FriendIDs(ctx, otherID)
	if err != nil {
		return nil, err
	}

	inSecond := make(map[user.UserID]struct{}, len(second))
	for _, fid := range second {
		inSecond[fid] = struct{}{}
	}
	common := make([]user.UserID, 0)
	for _, fid := range first {
		if _, ok := inSecond[fid]; ok {
			common = append(common, fid)
		}
	}
	return s.users.GetByIDs(ctx, common)
}

func (s *FriendshipService) ensureBoth(ctx context.Context, id, otherID user.UserID) error {
	if err := s.validation.EnsureUserExists(ctx, id); err != nil {
		return err
	}
	return s.validation.EnsureUserExists(ctx, otherID)
}
