package service

import (
	"context"

	"github.com/filmorate/filmorate/internal/domain/film"
	"github.com/filmorate/filmorate/pkg/logger"
)

// ReferenceService exposes the read-only genre and MPA reference data.
type ReferenceService struct {
	genres film.GenreRepository
	mpa    film.MpaRepository
	log    *logger.Logger
}

// NewReferenceService creates a new ReferenceService.
func NewReferenceService(genres film.GenreRepository, mpa film.MpaRepository, log *logger.Logger) *ReferenceService {
	return &ReferenceService{genres: genres, mpa: mpa, log: log}
}

// Genres returns every genre.
func (s *ReferenceService) Genres(ctx context.Context) ([]film.Genre, error) {
	return s.genres.GetAll(ctx)
}

// GenreByID returns a genre or a not-found error.
func (s *ReferenceService) GenreByID(ctx context.Context, id film.GenreID) (*film.Genre, error) {
	g, err := s.genres.GetByID(ctx, id)
	if err != nil {
		s.log.Debug("genre lookup missed", logger.GenreID(id.Int()))
		return nil, err
	}
	return g, nil
}

// MpaRatings returns every MPA rating.
func (s *ReferenceService) MpaRatings(ctx context.Context) ([]film.Mpa, error) {
	return s.mpa.GetAll(ctx)
}

// MpaByID returns an MPA rating or a not-found error.
func (s *ReferenceService) MpaByID(ctx context.Context, id film.MpaID) (*film.Mpa, error) {
	m, err := s.mpa.GetByID(ctx, id)
	if err != nil {
		s.log.Debug("mpa lookup missed", logger.MpaID(id.Int()))
		return nil, err
	}
	return m, nil
}
