package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmorate/filmorate/internal/domain/shared"
	"github.com/filmorate/filmorate/internal/domain/user"
)

func TestAddFriend_Symmetric(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	u1 := fx.addUser(t, "neo")
	u2 := fx.addUser(t, "trinity")

	require.NoError(t, fx.friendships.AddFriend(ctx, u1.ID, u2.ID))

	// Both directions are visible after a single add.
	friendsOf1, err := fx.friendships.GetFriends(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, friendsOf1, 1)
	assert.Equal(t, u2.ID, friendsOf1[0].ID)

	friendsOf2, err := fx.friendships.GetFriends(ctx, u2.ID)
	require.NoError(t, err)
	require.Len(t, friendsOf2, 1)
	assert.Equal(t, u1.ID, friendsOf2[0].ID)
}

func TestAddFriend_Idempotent(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	u1 := fx.addUser(t, "neo")
	u2 := fx.addUser(t, "trinity")

	require.NoError(t, fx.friendships.AddFriend(ctx, u1.ID, u2.ID))
	require.NoError(t, fx.friendships.AddFriend(ctx, u1.ID, u2.ID))

	friends, err := fx.friendships.GetFriends(ctx, u1.ID)
	require.NoError(t, err)
	assert.Len(t, friends, 1)
}

func TestAddFriend_SelfRejected(t *testing.T) {
	fx := newFixture(t)

	u := fx.addUser(t, "neo")

	err := fx.friendships.AddFriend(context.Background(), u.ID, u.ID)
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestAddFriend_UnknownUser(t *testing.T) {
	fx := newFixture(t)

	u := fx.addUser(t, "neo")

	err := fx.friendships.AddFriend(context.Background(), u.ID, 999)
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}

func TestRemoveFriend_SymmetricAndIdempotent(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	u1 := fx.addUser(t, "neo")
	u2 := fx.addUser(t, "trinity")

	require.NoError(t, fx.friendships.AddFriend(ctx, u1.ID, u2.ID))
	require.NoError(t, fx.friendships.RemoveFriend(ctx, u2.ID, u1.ID))

	friends, err := fx.friendships.GetFriends(ctx, u1.ID)
	require.NoError(t, err)
	assert.Empty(t, friends, "removal from either side unlinks both")

	// Removing an absent friendship is a no-op.
	assert.NoError(t, fx.friendships.RemoveFriend(ctx, u1.ID, u2.ID))
}

func TestGetCommonFriends(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	u1 := fx.addUser(t, "neo")
	u2 := fx.addUser(t, "trinity")
	u3 := fx.addUser(t, "morpheus")
	u4 := fx.addUser(t, "smith")

	// u1 knows u3 and u4; u2 knows only u3.
	require.NoError(t, fx.friendships.AddFriend(ctx, u1.ID, u3.ID))
	require.NoError(t, fx.friendships.AddFriend(ctx, u1.ID, u4.ID))
	require.NoError(t, fx.friendships.AddFriend(ctx, u2.ID, u3.ID))

	common, err := fx.friendships.GetCommonFriends(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	require.Len(t, common, 1)
	assert.Equal(t, u3.ID, common[0].ID)
}

func TestGetCommonFriends_EmptyIsNotError(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	u1 := fx.addUser(t, "neo")
	u2 := fx.addUser(t, "trinity")

	common, err := fx.friendships.GetCommonFriends(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	assert.NotNil(t, common)
	assert.Empty(t, common)
}

func TestGetFriends_SortedAscending(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	u1 := fx.addUser(t, "neo")
	u2 := fx.addUser(t, "trinity")
	u3 := fx.addUser(t, "morpheus")

	// Add in reverse id order; reads come back ascending.
	require.NoError(t, fx.friendships.AddFriend(ctx, u1.ID, u3.ID))
	require.NoError(t, fx.friendships.AddFriend(ctx, u1.ID, u2.ID))

	friends, err := fx.friendships.GetFriends(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, friends, 2)
	assert.Equal(t, []user.UserID{u2.ID, u3.ID}, []user.UserID{friends[0].ID, friends[1].ID})
}
