// Package film contains the film catalog domain model: the Film aggregate,
// its reference data (Genre, MPA rating) and the like relationship.
// This is core business logic - no external dependencies here.
package film

import (
	"strings"
	"time"

	"github.com/filmorate/filmorate/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// FilmID represents a unique film identifier assigned by storage on creation.
type FilmID int

// IsValid checks that the FilmID is positive.
func (id FilmID) IsValid() bool {
	return id > 0
}

// Int returns the underlying int value.
func (id FilmID) Int() int {
	return int(id)
}

// GenreID represents a unique genre identifier.
type GenreID int

// IsValid checks that the GenreID is positive.
func (id GenreID) IsValid() bool {
	return id > 0
}

// Int returns the underlying int value.
func (id GenreID) Int() int {
	return int(id)
}

// MpaID represents a unique MPA rating identifier.
type MpaID int

// IsValid checks that the MpaID is positive.
func (id MpaID) IsValid() bool {
	return id > 0
}

// Int returns the underlying int value.
func (id MpaID) Int() int {
	return int(id)
}

// ══════════════════════════════════════════════════════════════════════════════
// VALIDATION RULES
// ══════════════════════════════════════════════════════════════════════════════

// MaxDescriptionLen is the maximum allowed length of a film description.
const MaxDescriptionLen = 200

// EarliestReleaseDate is the date of the first public film screening.
// No film can be released before it.
var EarliestReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// ══════════════════════════════════════════════════════════════════════════════
// REFERENCE DATA
// ══════════════════════════════════════════════════════════════════════════════

// Genre is a reference tag attachable to a film, many-to-many.
// Read-only from the service layer's perspective.
type Genre struct {
	ID   GenreID `json:"id"`
	Name string  `json:"name"`
}

// Mpa is a film classification reference value (age-rating category).
// Read-only from the service layer's perspective.
type Mpa struct {
	ID          MpaID  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: FILM
// ══════════════════════════════════════════════════════════════════════════════

// Film represents a catalog entry. A Film returned by a repository is a
// detached snapshot: mutating it does not affect storage until it is
// explicitly persisted again.
type Film struct {
	// ID is assigned by storage on creation and immutable thereafter.
	ID FilmID `json:"id"`

	// Name is required and must be non-blank.
	Name string `json:"name"`

	// Description is optional, at most MaxDescriptionLen characters.
	Description string `json:"description,omitempty"`

	// ReleaseDate is optional; when present it must not precede
	// EarliestReleaseDate.
	ReleaseDate *time.Time `json:"releaseDate,omitempty"`

	// Duration is the running time in minutes. Optional; when present it
	// must be positive.
	Duration *int `json:"duration,omitempty"`

	// Mpa is the required MPA rating reference.
	Mpa *Mpa `json:"mpa"`

	// Genres is the unordered, duplicate-free genre set of the film.
	Genres []Genre `json:"genres"`
}

// Validate checks the field-level rules of the film.
func (f *Film) Validate() error {
	const op = "Validate"

	if strings.TrimSpace(f.Name) == "" {
		return shared.Validationf("film", op, "film name must not be blank")
	}
	if len([]rune(f.Description)) > MaxDescriptionLen {
		return shared.Validationf("film", op, "film description must be at most %d characters", MaxDescriptionLen)
	}
	if f.ReleaseDate != nil && f.ReleaseDate.Before(EarliestReleaseDate) {
		return shared.Validationf("film", op, "release date must not be earlier than %s",
			EarliestReleaseDate.Format("2006-01-02"))
	}
	if f.Duration != nil && *f.Duration <= 0 {
		return shared.Validationf("film", op, "film duration must be positive")
	}
	if f.Mpa == nil {
		return shared.Validationf("film", op, "MPA rating is required")
	}
	return nil
}

// SetGenres replaces the genre set, dropping duplicate ids while keeping
// the first occurrence order.
func (f *Film) SetGenres(genres []Genre) {
	f.Genres = DedupGenres(genres)
}

// HasGenre reports whether the film carries the given genre.
func (f *Film) HasGenre(id GenreID) bool {
	for _, g := range f.Genres {
		if g.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the film. Repositories return clones so that
// callers never share mutable state with storage.
func (f *Film) Clone() *Film {
	c := *f
	if f.ReleaseDate != nil {
		d := *f.ReleaseDate
		c.ReleaseDate = &d
	}
	if f.Duration != nil {
		d := *f.Duration
		c.Duration = &d
	}
	if f.Mpa != nil {
		m := *f.Mpa
		c.Mpa = &m
	}
	if f.Genres != nil {
		c.Genres = make([]Genre, len(f.Genres))
		copy(c.Genres, f.Genres)
	}
	return &c
}

// DedupGenres removes duplicate genre ids, keeping first occurrence order.
func DedupGenres(genres []Genre) []Genre {
	if genres == nil {
		return nil
	}
	seen := make(map[GenreID]struct{}, len(genres))
	out := make([]Genre, 0, len(genres))
	for _, g := range genres {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		out = append(out, g)
	}
	return out
}
