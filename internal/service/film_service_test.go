package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmorate/filmorate/internal/domain/film"
	"github.com/filmorate/filmorate/internal/domain/shared"
)

func TestFilmAdd_AssignsIDAndPersistsGenres(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	duration := 90
	created, err := fx.films.Add(ctx, &film.Film{
		Name:     "Snatch",
		Duration: &duration,
		Mpa:      &film.Mpa{ID: 4},
		Genres: []film.Genre{
			{ID: 1},
			{ID: 6},
			{ID: 1}, // duplicate is dropped
		},
	})
	require.NoError(t, err)
	assert.True(t, created.ID.IsValid())
	assert.Equal(t, "R", created.Mpa.Name, "MPA is read back with its name")

	require.Len(t, created.Genres, 2)
	assert.Equal(t, "Comedy", created.Genres[0].Name)
	assert.Equal(t, "Action", created.Genres[1].Name)
}

func TestFilmAdd_UnknownReferences(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.films.Add(ctx, &film.Film{
		Name: "Ghost",
		Mpa:  &film.Mpa{ID: 99},
	})
	assert.True(t, shared.IsNotFound(err), "unknown MPA id")

	_, err = fx.films.Add(ctx, &film.Film{
		Name:   "Ghost",
		Mpa:    &film.Mpa{ID: 1},
		Genres: []film.Genre{{ID: 99}},
	})
	assert.True(t, shared.IsNotFound(err), "unknown genre id")
}

func TestFilmAdd_ValidationRejected(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	early := time.Date(1895, time.December, 27, 0, 0, 0, 0, time.UTC)
	_, err := fx.films.Add(ctx, &film.Film{
		Name:        "Too Early",
		ReleaseDate: &early,
		Mpa:         &film.Mpa{ID: 1},
	})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))

	all, err := fx.films.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "rejected film is not persisted")
}

func TestFilmUpdate_ReplacesGenreSet(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	created := fx.addFilm(t, "Heat")
	created.Genres = []film.Genre{{ID: 2}, {ID: 4}}
	updated, err := fx.films.Update(ctx, created)
	require.NoError(t, err)
	require.Len(t, updated.Genres, 2)

	// Second update with a smaller set fully overwrites, never merges.
	updated.Genres = []film.Genre{{ID: 2}}
	again, err := fx.films.Update(ctx, updated)
	require.NoError(t, err)
	require.Len(t, again.Genres, 1)
	assert.Equal(t, "Drama", again.Genres[0].Name)
}

func TestFilmUpdate_UnknownIDLeavesListUnchanged(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.addFilm(t, "Heat")
	before, err := fx.films.GetAll(ctx)
	require.NoError(t, err)

	_, err = fx.films.Update(ctx, &film.Film{
		ID:   999,
		Name: "Ghost",
		Mpa:  &film.Mpa{ID: 1},
	})
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))

	after, err := fx.films.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFilmGetPopular_OrderAndTies(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	a := fx.addFilm(t, "A")
	b := fx.addFilm(t, "B")
	c := fx.addFilm(t, "C")
	u1 := fx.addUser(t, "u1")
	u2 := fx.addUser(t, "u2")
	u3 := fx.addUser(t, "u3")

	// b: 3 likes, a: 1 like, c: 1 like. The a/c tie resolves to the
	// lower film id.
	require.NoError(t, fx.likes.AddLike(ctx, b.ID, u1.ID))
	require.NoError(t, fx.likes.AddLike(ctx, b.ID, u2.ID))
	require.NoError(t, fx.likes.AddLike(ctx, b.ID, u3.ID))
	require.NoError(t, fx.likes.AddLike(ctx, a.ID, u1.ID))
	require.NoError(t, fx.likes.AddLike(ctx, c.ID, u2.ID))

	popular, err := fx.films.GetPopular(ctx, 10)
	require.NoError(t, err)
	require.Len(t, popular, 3)
	assert.Equal(t, b.ID, popular[0].ID)
	assert.Equal(t, a.ID, popular[1].ID)
	assert.Equal(t, c.ID, popular[2].ID)
}

func TestFilmGetPopular_IncludesZeroLikeFilms(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	a := fx.addFilm(t, "A")
	b := fx.addFilm(t, "B")
	u := fx.addUser(t, "neo")

	require.NoError(t, fx.likes.AddLike(ctx, b.ID, u.ID))

	popular, err := fx.films.GetPopular(ctx, 10)
	require.NoError(t, err)
	require.Len(t, popular, 2, "films without likes still rank")
	assert.Equal(t, b.ID, popular[0].ID)
	assert.Equal(t, a.ID, popular[1].ID)
}

func TestFilmGetPopular_TruncatesToCount(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.addFilm(t, "A")
	fx.addFilm(t, "B")
	fx.addFilm(t, "C")

	popular, err := fx.films.GetPopular(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, popular, 2)

	// Non-positive count falls back to the default limit.
	popular, err = fx.films.GetPopular(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, popular, 3)
}

func TestFilmDelete_CascadesLikesAndGenres(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	f := fx.addFilm(t, "Heat")
	f.Genres = []film.Genre{{ID: 2}}
	_, err := fx.films.Update(ctx, f)
	require.NoError(t, err)

	u := fx.addUser(t, "neo")
	require.NoError(t, fx.likes.AddLike(ctx, f.ID, u.ID))

	require.NoError(t, fx.films.Delete(ctx, f.ID))

	_, err = fx.films.GetByID(ctx, f.ID)
	assert.True(t, shared.IsNotFound(err))

	count, err := fx.likeStore.CountByFilm(ctx, f.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// The deleted film no longer appears in the ranking.
	popular, err := fx.films.GetPopular(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, popular)
}

func TestReferenceService(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	genres, err := fx.references.Genres(ctx)
	require.NoError(t, err)
	assert.Len(t, genres, 6)

	g, err := fx.references.GenreByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Cartoon", g.Name)

	_, err = fx.references.GenreByID(ctx, 99)
	assert.True(t, shared.IsNotFound(err))

	ratings, err := fx.references.MpaRatings(ctx)
	require.NoError(t, err)
	assert.Len(t, ratings, 5)

	m, err := fx.references.MpaByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "NC-17", m.Name)

	_, err = fx.references.MpaByID(ctx, 99)
	assert.True(t, shared.IsNotFound(err))
}
