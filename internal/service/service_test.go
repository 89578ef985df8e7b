package service

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/filmorate/filmorate/internal/domain/film"
	"github.com/filmorate/filmorate/internal/domain/user"
	"github.com/filmorate/filmorate/internal/infrastructure/persistence/memory"
	"github.com/filmorate/filmorate/pkg/logger"
)

// fixture wires every service over fresh in-memory stores.
type fixture struct {
	films       *FilmService
	users       *UserService
	friendships *FriendshipService
	likes       *LikeService
	references  *ReferenceService

	filmStore *memory.FilmStore
	userStore *memory.UserStore
	likeStore *memory.LikeStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logger.New(logger.Options{Output: io.Discard})

	filmStore := memory.NewFilmStore()
	userStore := memory.NewUserStore()
	genreStore := memory.NewGenreStore(memory.DefaultGenres())
	mpaStore := memory.NewMpaStore(memory.DefaultMpaRatings())
	likeStore := memory.NewLikeStore()
	friendshipStore := memory.NewFriendshipStore()

	validation := NewValidationService(userStore, filmStore, genreStore, mpaStore, log)
	films := NewFilmService(filmStore, genreStore, likeStore, nil, validation, log)
	users := NewUserService(userStore, friendshipStore, likeStore, nil, validation, log)
	friendships := NewFriendshipService(friendshipStore, userStore, validation, log)
	likes := NewLikeService(likeStore, films, nil, validation, log)
	references := NewReferenceService(genreStore, mpaStore, log)

	return &fixture{
		films:       films,
		users:       users,
		friendships: friendships,
		likes:       likes,
		references:  references,
		filmStore:   filmStore,
		userStore:   userStore,
		likeStore:   likeStore,
	}
}

func (fx *fixture) addFilm(t *testing.T, name string) *film.Film {
	t.Helper()

	release := time.Date(2000, time.June, 1, 0, 0, 0, 0, time.UTC)
	duration := 120
	created, err := fx.films.Add(context.Background(), &film.Film{
		Name:        name,
		Description: "test film",
		ReleaseDate: &release,
		Duration:    &duration,
		Mpa:         &film.Mpa{ID: 1},
	})
	require.NoError(t, err)
	return created
}

func (fx *fixture) addUser(t *testing.T, login string) *user.User {
	t.Helper()

	created, err := fx.users.Add(context.Background(), &user.User{
		Email: fmt.Sprintf("%s@example.com", login),
		Login: login,
	})
	require.NoError(t, err)
	return created
}
