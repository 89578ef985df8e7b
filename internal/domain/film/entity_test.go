package film

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmorate/filmorate/internal/domain/shared"
)

func validFilm() *Film {
	release := time.Date(1999, time.March, 31, 0, 0, 0, 0, time.UTC)
	duration := 136
	return &Film{
		Name:        "The Matrix",
		Description: "A hacker discovers reality is a simulation.",
		ReleaseDate: &release,
		Duration:    &duration,
		Mpa:         &Mpa{ID: 4, Name: "R"},
	}
}

func TestFilmValidate_OK(t *testing.T) {
	assert.NoError(t, validFilm().Validate())
}

func TestFilmValidate_BlankName(t *testing.T) {
	f := validFilm()
	f.Name = "   "

	err := f.Validate()
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestFilmValidate_DescriptionBoundary(t *testing.T) {
	f := validFilm()

	runes := make([]rune, MaxDescriptionLen)
	for i := range runes {
		runes[i] = 'x'
	}
	f.Description = string(runes)
	assert.NoError(t, f.Validate(), "exactly %d characters is allowed", MaxDescriptionLen)

	f.Description += "x"
	err := f.Validate()
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestFilmValidate_ReleaseDateBoundary(t *testing.T) {
	f := validFilm()

	atBoundary := time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)
	f.ReleaseDate = &atBoundary
	assert.NoError(t, f.Validate(), "the first screening date itself is allowed")

	dayBefore := atBoundary.AddDate(0, 0, -1)
	f.ReleaseDate = &dayBefore
	err := f.Validate()
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestFilmValidate_ReleaseDateOptional(t *testing.T) {
	f := validFilm()
	f.ReleaseDate = nil
	assert.NoError(t, f.Validate())
}

func TestFilmValidate_Duration(t *testing.T) {
	f := validFilm()

	one := 1
	f.Duration = &one
	assert.NoError(t, f.Validate())

	zero := 0
	f.Duration = &zero
	assert.True(t, shared.IsValidation(f.Validate()), "zero duration is rejected")

	negative := -10
	f.Duration = &negative
	assert.True(t, shared.IsValidation(f.Validate()))

	f.Duration = nil
	assert.NoError(t, f.Validate(), "absent duration is allowed")
}

func TestFilmValidate_MpaRequired(t *testing.T) {
	f := validFilm()
	f.Mpa = nil

	err := f.Validate()
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestFilmSetGenres_Dedup(t *testing.T) {
	f := validFilm()
	f.SetGenres([]Genre{
		{ID: 2, Name: "Drama"},
		{ID: 6, Name: "Action"},
		{ID: 2, Name: "Drama"},
		{ID: 6, Name: "Action"},
	})

	require.Len(t, f.Genres, 2)
	assert.Equal(t, GenreID(2), f.Genres[0].ID)
	assert.Equal(t, GenreID(6), f.Genres[1].ID)
	assert.True(t, f.HasGenre(2))
	assert.False(t, f.HasGenre(3))
}

func TestFilmClone_Independence(t *testing.T) {
	f := validFilm()
	f.ID = 7
	f.SetGenres([]Genre{{ID: 1, Name: "Comedy"}})

	c := f.Clone()
	c.Name = "changed"
	*c.Duration = 1
	c.Genres[0].Name = "changed"
	c.Mpa.Name = "changed"

	assert.Equal(t, "The Matrix", f.Name)
	assert.Equal(t, 136, *f.Duration)
	assert.Equal(t, "Comedy", f.Genres[0].Name)
	assert.Equal(t, "R", f.Mpa.Name)
}
