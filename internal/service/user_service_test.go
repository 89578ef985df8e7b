package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmorate/filmorate/internal/domain/shared"
	"github.com/filmorate/filmorate/internal/domain/user"
)

func TestUserAdd_AssignsIDAndDefaultsName(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	created, err := fx.users.Add(ctx, &user.User{
		Email: "neo@example.com",
		Login: "neo",
	})
	require.NoError(t, err)
	assert.True(t, created.ID.IsValid())
	assert.Equal(t, "neo", created.Name, "blank name defaults to login")
}

func TestUserAdd_UpsertByLoginDoesNotGrowList(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	first, err := fx.users.Add(ctx, &user.User{Email: "a@example.com", Login: "trinity"})
	require.NoError(t, err)

	// Same login again: the existing row is overwritten, not duplicated.
	second, err := fx.users.Add(ctx, &user.User{Email: "b@example.com", Login: "trinity"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "b@example.com", second.Email)

	all, err := fx.users.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserAdd_ConflictingIDForTakenLogin(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	owner := fx.addUser(t, "morpheus")

	_, err := fx.users.Add(ctx, &user.User{
		ID:    owner.ID + 100,
		Email: "other@example.com",
		Login: "morpheus",
	})
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}

func TestUserAdd_RejectsFutureBirthday(t *testing.T) {
	fx := newFixture(t)

	future := time.Now().AddDate(1, 0, 0)
	_, err := fx.users.Add(context.Background(), &user.User{
		Email:    "kid@example.com",
		Login:    "kid",
		Birthday: &future,
	})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestUserUpdate_UnknownIDLeavesListUnchanged(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.addUser(t, "neo")
	before, err := fx.users.GetAll(ctx)
	require.NoError(t, err)

	_, err = fx.users.Update(ctx, &user.User{
		ID:    999,
		Email: "ghost@example.com",
		Login: "ghost",
	})
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))

	after, err := fx.users.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUserUpdate_CannotStealAnotherUsersLogin(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.addUser(t, "alpha")
	beta := fx.addUser(t, "beta")

	// Moving beta onto alpha's login would leave two rows sharing the
	// natural key, making later upserts by that login ambiguous.
	_, err := fx.users.Update(ctx, &user.User{
		ID:    beta.ID,
		Email: "beta@example.com",
		Login: "alpha",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrLoginConflict)

	kept, err := fx.users.GetByID(ctx, beta.ID)
	require.NoError(t, err)
	assert.Equal(t, "beta", kept.Login)
}

func TestUserUpdate_KeepingOwnLoginSucceeds(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	u := fx.addUser(t, "gamma")

	updated, err := fx.users.Update(ctx, &user.User{
		ID:    u.ID,
		Email: "new@example.com",
		Login: "gamma",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
}

func TestUserDelete_CascadesFriendshipsAndLikes(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	u1 := fx.addUser(t, "neo")
	u2 := fx.addUser(t, "trinity")
	f := fx.addFilm(t, "The Matrix")

	require.NoError(t, fx.friendships.AddFriend(ctx, u1.ID, u2.ID))
	require.NoError(t, fx.likes.AddLike(ctx, f.ID, u1.ID))

	require.NoError(t, fx.users.Delete(ctx, u1.ID))

	_, err := fx.users.GetByID(ctx, u1.ID)
	assert.True(t, shared.IsNotFound(err))

	// The survivor no longer lists the deleted user as a friend.
	friends, err := fx.friendships.GetFriends(ctx, u2.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	count, err := fx.likeStore.CountByFilm(ctx, f.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUserGetByID_NotFound(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.users.GetByID(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}
