package service

import (
	"context"
	"sort"

	"github.com/filmorate/filmorate/internal/domain/film"
	"github.com/filmorate/filmorate/internal/domain/shared"
	"github.com/filmorate/filmorate/pkg/logger"
)

// DefaultPopularLimit is the number of films returned by the popularity
// ranking when the caller does not supply a count.
const DefaultPopularLimit = 10

// FilmService orchestrates film CRUD, genre-set maintenance and the
// popularity ranking.
type FilmService struct {
	films      film.Repository
	genres     film.GenreRepository
	likes      film.LikeRepository
	cache      film.PopularityCache // optional, nil disables caching
	validation *ValidationService
	log        *logger.Logger
}

// NewFilmService creates a new FilmService. The cache may be nil.
func NewFilmService(
	films film.Repository,
	genres film.GenreRepository,
	likes film.LikeRepository,
	cache film.PopularityCache,
	validation *ValidationService,
	log *logger.Logger,
) *FilmService {
	return &FilmService{
		films:      films,
		genres:     genres,
		likes:      likes,
		cache:      cache,
		validation: validation,
		log:        log,
	}
}

// Add validates and persists a new film together with its genre set.
// The returned film is read back from storage, so the caller sees the
// generated id and the genre set exactly as persisted.
func (s *FilmService) Add(ctx context.Context, f *film.Film) (*film.Film, error) {
	if err := s.validation.ValidateFilm(f); err != nil {
		return nil, err
	}
	if err := s.ensureReferences(ctx, f); err != nil {
		return nil, err
	}

	f.SetGenres(f.Genres)
	if err := s.films.Create(ctx, f); err != nil {
		return nil, err
	}
	if err := s.genres.ReplaceForFilm(ctx, f.ID, f.Genres); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	s.log.Info("film created", logger.FilmID(f.ID.Int()), logger.String("name", f.Name))
	return s.GetByID(ctx, f.ID)
}

// Update fully replaces the scalar fields and the genre set of an
// existing film. The genre rows are overwritten, never merged.
func (s *FilmService) Update(ctx context.Context, f *film.Film) (*film.Film, error) {
	if !f.ID.IsValid() {
		return nil, shared.NotFoundf("film", "Update", "film id is required for update")
	}
	if err := s.validation.EnsureFilmExists(ctx, f.ID); err != nil {
		return nil, err
	}
	if err := s.validation.ValidateFilm(f); err != nil {
		return nil, err
	}
	if err := s.ensureReferences(ctx, f); err != nil {
		return nil, err
	}

	f.SetGenres(f.Genres)
	if err := s.films.Update(ctx, f); err != nil {
		return nil, err
	}
	if err := s.genres.ReplaceForFilm(ctx, f.ID, f.Genres); err != nil {
		return nil, err
	}

	s.log.Info("film updated", logger.FilmID(f.ID.Int()))
	return s.GetByID(ctx, f.ID)
}

// GetByID returns a film with its genre set populated.
func (s *FilmService) GetByID(ctx context.Context, id film.FilmID) (*film.Film, error) {
	f, err := s.films.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	genres, err := s.genres.FindByFilm(ctx, id)
	if err != nil {
		return nil, err
	}
	f.Genres = genres
	return f, nil
}

// GetAll returns every film, each with its genre set populated by one
// batched relationship lookup.
func (s *FilmService) GetAll(ctx context.Context) ([]*film.Film, error) {
	films, err := s.films.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachGenres(ctx, films)
}

// GetPopular returns films ordered by descending like count, truncated to
// count. Ties are broken by ascending film id, so the order is stable
// across repeated calls. A non-positive count falls back to
// DefaultPopularLimit.
func (s *FilmService) GetPopular(ctx context.Context, count int) ([]*film.Film, error) {
	if count <= 0 {
		count = DefaultPopularLimit
	}

	if s.cache != nil {
		if ids, err := s.cache.Top(ctx, count); err == nil {
			return s.filmsByIDs(ctx, ids)
		}
	}

	films, err := s.films.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.likes.Counts(ctx)
	if err != nil {
		return nil, err
	}

	ranking := make(map[film.FilmID]int, len(films))
	for _, f := range films {
		ranking[f.ID] = counts[f.ID]
	}

	sort.Slice(films, func(i, j int) bool {
		ci, cj := ranking[films[i].ID], ranking[films[j].ID]
		if ci != cj {
			return ci > cj
		}
		return films[i].ID < films[j].ID
	})
	if len(films) > count {
		films = films[:count]
	}

	if s.cache != nil {
		if err := s.cache.Rebuild(ctx, ranking); err != nil {
			s.log.Warn("popularity cache rebuild failed", logger.Err(err))
		}
	}
	s.log.Debug("popularity ranking computed from storage", logger.Count(len(films)))
	return s.attachGenres(ctx, films)
}

// Delete removes a film together with its genre and like rows, so no
// orphan relationship rows survive the operation.
func (s *FilmService) Delete(ctx context.Context, id film.FilmID) error {
	if err := s.validation.EnsureFilmExists(ctx, id); err != nil {
		return err
	}
	if err := s.likes.RemoveByFilm(ctx, id); err != nil {
		return err
	}
	if err := s.genres.ReplaceForFilm(ctx, id, nil); err != nil {
		return err
	}
	if err := s.films.Delete(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Remove(ctx, id); err != nil {
			s.log.Warn("popularity cache remove failed", logger.FilmID(id.Int()), logger.Err(err))
		}
	}
	s.log.Info("film deleted", logger.FilmID(id.Int()))
	return nil
}

// ensureReferences checks that the MPA rating and every genre the film
// references actually exist, preventing orphan relationship rows.
func (s *FilmService) ensureReferences(ctx context.Context, f *film.Film) error {
	if err := s.validation.EnsureMpaExists(ctx, f.Mpa.ID); err != nil {
		return err
	}
	for _, g := range f.Genres {
		if err := s.validation.EnsureGenreExists(ctx, g.ID); err != nil {
			return err
		}
	}
	return nil
}

// attachGenres populates genre sets for a batch of films.
func (s *FilmService) attachGenres(ctx context.Context, films []*film.Film) ([]*film.Film, error) {
	if len(films) == 0 {
		return films, nil
	}
	ids := make([]film.FilmID, len(films))
	for i, f := range films {
		ids[i] = f.ID
	}
	byFilm, err := s.genres.FindByFilms(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, f := range films {
		if genres, ok := byFilm[f.ID]; ok {
			f.Genres = genres
		} else {
			f.Genres = []film.Genre{}
		}
	}
	return films, nil
}

// filmsByIDs loads films in the given order, with genres attached.
func (s *FilmService) filmsByIDs(ctx context.Context, ids []film.FilmID) ([]*film.Film, error) {
	films := make([]*film.Film, 0, len(ids))
	for _, id := range ids {
		f, err := s.GetByID(ctx, id)
		if err != nil {
			if shared.IsNotFound(err) {
				// Cache can lag behind a delete; skip the stale entry.
				continue
			}
			return nil, err
		}
		films = append(films, f)
	}
	return films, nil
}

func (s *FilmService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("popularity cache invalidation failed", logger.Err(err))
	}
}
