package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmorate/filmorate/internal/domain/film"
	"github.com/filmorate/filmorate/internal/domain/shared"
	"github.com/filmorate/filmorate/internal/domain/user"
)

func newFilm(name string) *film.Film {
	release := time.Date(2001, time.July, 20, 0, 0, 0, 0, time.UTC)
	duration := 110
	return &film.Film{
		Name:        name,
		ReleaseDate: &release,
		Duration:    &duration,
		Mpa:         &film.Mpa{ID: 3, Name: "PG-13"},
	}
}

func TestFilmStore_CreateAssignsSequentialIDs(t *testing.T) {
	store := NewFilmStore()
	ctx := context.Background()

	a := newFilm("A")
	b := newFilm("B")
	require.NoError(t, store.Create(ctx, a))
	require.NoError(t, store.Create(ctx, b))

	assert.Equal(t, film.FilmID(1), a.ID)
	assert.Equal(t, film.FilmID(2), b.ID)
}

func TestFilmStore_SnapshotsAreDetached(t *testing.T) {
	store := NewFilmStore()
	ctx := context.Background()

	f := newFilm("A")
	require.NoError(t, store.Create(ctx, f))

	got, err := store.GetByID(ctx, f.ID)
	require.NoError(t, err)

	// Mutating a returned snapshot does not touch storage.
	got.Name = "mutated"
	*got.Duration = 1

	again, err := store.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Name)
	assert.Equal(t, 110, *again.Duration)
}

func TestFilmStore_UpdateAndDeleteUnknown(t *testing.T) {
	store := NewFilmStore()
	ctx := context.Background()

	ghost := newFilm("Ghost")
	ghost.ID = 42
	assert.True(t, shared.IsNotFound(store.Update(ctx, ghost)))
	assert.True(t, shared.IsNotFound(store.Delete(ctx, 42)))
}

func TestFilmStore_GetAllSortedByID(t *testing.T) {
	store := NewFilmStore()
	ctx := context.Background()

	for _, name := range []string{"C", "A", "B"} {
		require.NoError(t, store.Create(ctx, newFilm(name)))
	}

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, film.FilmID(1), all[0].ID)
	assert.Equal(t, film.FilmID(3), all[2].ID)
}

func TestUserStore_GetByLogin(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	u := &user.User{Email: "neo@example.com", Login: "neo", Name: "Neo"}
	require.NoError(t, store.Create(ctx, u))

	found, err := store.GetByLogin(ctx, "neo")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = store.GetByLogin(ctx, "nobody")
	assert.True(t, shared.IsNotFound(err))
}

func TestUserStore_GetByIDsSkipsMissing(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	u1 := &user.User{Email: "a@example.com", Login: "a", Name: "a"}
	u2 := &user.User{Email: "b@example.com", Login: "b", Name: "b"}
	require.NoError(t, store.Create(ctx, u1))
	require.NoError(t, store.Create(ctx, u2))

	users, err := store.GetByIDs(ctx, []user.UserID{u2.ID, 99, u1.ID})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, u1.ID, users[0].ID, "results come back in ascending id order")
	assert.Equal(t, u2.ID, users[1].ID)
}

func TestGenreStore_ReplaceForFilm(t *testing.T) {
	store := NewGenreStore(DefaultGenres())
	ctx := context.Background()

	filmID := film.FilmID(1)
	require.NoError(t, store.ReplaceForFilm(ctx, filmID, []film.Genre{{ID: 6}, {ID: 1}, {ID: 6}}))

	genres, err := store.FindByFilm(ctx, filmID)
	require.NoError(t, err)
	require.Len(t, genres, 2, "duplicates are dropped")
	assert.Equal(t, "Comedy", genres[0].Name, "genres come back in ascending id order")
	assert.Equal(t, "Action", genres[1].Name)

	// Replacing with nil clears the set.
	require.NoError(t, store.ReplaceForFilm(ctx, filmID, nil))
	genres, err = store.FindByFilm(ctx, filmID)
	require.NoError(t, err)
	assert.Empty(t, genres)
}

func TestGenreStore_FindByFilms(t *testing.T) {
	store := NewGenreStore(DefaultGenres())
	ctx := context.Background()

	require.NoError(t, store.ReplaceForFilm(ctx, 1, []film.Genre{{ID: 1}}))
	require.NoError(t, store.ReplaceForFilm(ctx, 2, []film.Genre{{ID: 2}, {ID: 4}}))

	byFilm, err := store.FindByFilms(ctx, []film.FilmID{1, 2, 3})
	require.NoError(t, err)
	assert.Len(t, byFilm[1], 1)
	assert.Len(t, byFilm[2], 2)
	_, ok := byFilm[3]
	assert.False(t, ok, "films without genres are absent from the map")
}

func TestMpaStore_Seeded(t *testing.T) {
	store := NewMpaStore(DefaultMpaRatings())
	ctx := context.Background()

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "G", all[0].Name)
	assert.Equal(t, "NC-17", all[4].Name)

	_, err = store.GetByID(ctx, 42)
	assert.True(t, shared.IsNotFound(err))
}

func TestLikeStore_AddRemoveCounts(t *testing.T) {
	store := NewLikeStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, 1, 10))
	require.NoError(t, store.Add(ctx, 1, 10), "re-adding is a no-op")
	require.NoError(t, store.Add(ctx, 1, 11))
	require.NoError(t, store.Add(ctx, 2, 10))

	count, err := store.CountByFilm(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[film.FilmID]int{1: 2, 2: 1}, counts)

	require.NoError(t, store.Remove(ctx, 1, 10))
	assert.True(t, shared.IsNotFound(store.Remove(ctx, 1, 10)), "removing an absent like errors")
}

func TestLikeStore_RemoveByFilmAndUser(t *testing.T) {
	store := NewLikeStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, 1, 10))
	require.NoError(t, store.Add(ctx, 1, 11))
	require.NoError(t, store.Add(ctx, 2, 10))

	require.NoError(t, store.RemoveByFilm(ctx, 1))
	count, err := store.CountByFilm(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, store.RemoveByUser(ctx, 10))
	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestFriendshipStore_Symmetry(t *testing.T) {
	store := NewFriendshipStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, 1, 2))

	ok, err := store.AreFriends(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, ok, "visible from both sides")

	require.NoError(t, store.Remove(ctx, 2, 1))
	ok, err = store.AreFriends(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFriendshipStore_RemoveAllOf(t *testing.T) {
	store := NewFriendshipStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, 1, 2))
	require.NoError(t, store.Add(ctx, 1, 3))
	require.NoError(t, store.Add(ctx, 2, 3))

	require.NoError(t, store.RemoveAllOf(ctx, 1))

	ids, err := store.FriendIDs(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// The unrelated friendship survives.
	ids, err = store.FriendIDs(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []user.UserID{3}, ids)
}

func TestFriendshipStore_FriendIDsSorted(t *testing.T) {
	store := NewFriendshipStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, 1, 5))
	require.NoError(t, store.Add(ctx, 1, 3))
	require.NoError(t, store.Add(ctx, 1, 4))

	ids, err := store.FriendIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []user.UserID{3, 4, 5}, ids)
}
