// Package service contains the application services of Filmorate: entity
// validation, film and user CRUD orchestration, and maintenance of the
// like and friendship relations. Services are stateless aside from their
// injected repositories; every repository call is a single logical unit
// of work.
package service

import (
	"context"
	"time"

	"github.com/filmorate/filmorate/internal/domain/film"
	"github.com/filmorate/filmorate/internal/domain/shared"
	"github.com/filmorate/filmorate/internal/domain/user"
	"github.com/filmorate/filmorate/pkg/logger"
)

// ValidationService holds the field-level rules for User and Film and the
// existence preconditions services apply before any mutation that
// references a foreign id.
type ValidationService struct {
	users  user.Repository
	films  film.Repository
	genres film.GenreRepository
	mpa    film.MpaRepository
	log    *logger.Logger

	// now is replaceable in tests for the birthday rule.
	now func() time.Time
}

// NewValidationService creates a new ValidationService.
func NewValidationService(
	users user.Repository,
	films film.Repository,
	genres film.GenreRepository,
	mpa film.MpaRepository,
	log *logger.Logger,
) *ValidationService {
	return &ValidationService{
		users:  users,
		films:  films,
		genres: genres,
		mpa:    mpa,
		log:    log,
		now:    time.Now,
	}
}

// ValidateUser checks the user's field rules and defaults a blank display
// name to the login. The name default mutates the passed entity so the
// effect is visible to the caller before persistence. A zero id is not an
// error here: id assignment belongs to the repository, not to validation.
func (s *ValidationService) ValidateUser(u *user.User) error {
	if u.ID == 0 {
		s.log.Debug("validating user without id", logger.Login(u.Login))
	}
	if err := u.Validate(s.now()); err != nil {
		return err
	}
	u.DefaultName()
	return nil
}

// ValidateFilm checks the film's field rules.
func (s *ValidationService) ValidateFilm(f *film.Film) error {
	return f.Validate()
}

// EnsureUserExists fails with a not-found error when the user id is absent.
func (s *ValidationService) EnsureUserExists(ctx context.Context, id user.UserID) error {
	ok, err := s.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NotFoundf("user", "EnsureExists", "user with id %d not found", id)
	}
	return nil
}

// EnsureFilmExists fails with a not-found error when the film id is absent.
func (s *ValidationService) EnsureFilmExists(ctx context.Context, id film.FilmID) error {
	ok, err := s.films.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NotFoundf("film", "EnsureExists", "film with id %d not found", id)
	}
	return nil
}

// EnsureGenreExists fails with a not-found error when the genre id is absent.
func (s *ValidationService) EnsureGenreExists(ctx context.Context, id film.GenreID) error {
	ok, err := s.genres.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NotFoundf("genre", "EnsureExists", "genre with id %d not found", id)
	}
	return nil
}

// EnsureMpaExists fails with a not-found error when the MPA id is absent.
func (s *ValidationService) EnsureMpaExists(ctx context.Context, id film.MpaID) error {
	ok, err := s.mpa.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NotFoundf("mpa", "EnsureExists", "MPA rating with id %d not found", id)
	}
	return nil
}
