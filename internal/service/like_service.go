package service

import (
	"context"

	"github.com/filmorate/filmorate/internal/domain/film"
	"github.com/filmorate/filmorate/internal/domain/user"
	"github.com/filmorate/filmorate/pkg/logger"
)

// LikeService maintains the film-user like relation that feeds the
// popularity ranking.
//
// Policy: removing a like that was never set fails with a not-found
// error - the caller is expected to know the prior state. Adding an
// already-present like is an idempotent no-op.
type LikeService struct {
	likes      film.LikeRepository
	films      *FilmService
	cache      film.PopularityCache // optional, nil disables caching
	validation *ValidationService
	log        *logger.Logger
}

// NewLikeService creates a new LikeService. The cache may be nil.
func NewLikeService(
	likes film.LikeRepository,
	films *FilmService,
	cache film.PopularityCache,
	validation *ValidationService,
	log *logger.Logger,
) *LikeService {
	return &LikeService{
		likes:      likes,
		films:      films,
		cache:      cache,
		validation: validation,
		log:        log,
	}
}

// AddLike records that the user liked the film. Re-adding an existing
// like changes nothing: there is at most one like row per pair.
func (s *LikeService) AddLike(ctx context.Context, filmID film.FilmID, userID user.UserID) error {
	if err := s.ensurePair(ctx, filmID, userID); err != nil {
		return err
	}

	present, err := s.likes.Exists(ctx, filmID, userID)
	if err != nil {
		return err
	}
	if present {
		return nil
	}
	if err := s.likes.Add(ctx, filmID, userID); err != nil {
		return err
	}

	// Cache drift under concurrent adds is healed by the cache TTL.
	if s.cache != nil {
		if err := s.cache.IncrementLike(ctx, filmID); err != nil {
			s.log.Warn("popularity cache increment failed", logger.FilmID(filmID.Int()), logger.Err(err))
		}
	}
	s.log.Info("like added", logger.FilmID(filmID.Int()), logger.UserID(userID.Int()))
	return nil
}

// RemoveLike removes the user's like from the film. Removing an absent
// like fails with shared.ErrLikeNotFound.
func (s *LikeService) RemoveLike(ctx context.Context, filmID film.FilmID, userID user.UserID) error {
	if err := s.ensurePair(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.likes.Remove(ctx, filmID, userID); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.DecrementLike(ctx, filmID); err != nil {
			s.log.Warn("popularity cache decrement failed", logger.FilmID(filmID.Int()), logger.Err(err))
		}
	}
	s.log.Info("like removed", logger.FilmID(filmID.Int()), logger.UserID(userID.Int()))
	return nil
}

// GetPopularFilms delegates to the film popularity ranking: like counts
// descending, ties by ascending film id, truncated to count.
func (s *LikeService) GetPopularFilms(ctx context.Context, count int) ([]*film.Film, error) {
	return s.films.GetPopular(ctx, count)
}

func (s *LikeService) ensurePair(ctx context.Context, filmID film.FilmID, userID user.UserID) error {
	if err := s.validation.EnsureFilmExists(ctx, filmID); err != nil {
		return err
	}
	return s.validation.EnsureUserExists(ctx, userID)
}
