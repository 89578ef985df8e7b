package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/filmorate/filmorate/internal/domain/film"
	"github.com/filmorate/filmorate/internal/domain/shared"
	"github.com/filmorate/filmorate/internal/domain/user"
	"github.com/filmorate/filmorate/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// WIRE TYPES
// Dates cross the wire as "2006-01-02"; absent fields stay null.
// ══════════════════════════════════════════════════════════════════════════════

// Date marshals as a bare calendar date.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// MarshalJSON formats the date as "2006-01-02".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON parses "2006-01-02"; null leaves the date zero.
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" || raw == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	d.Time = t
	return nil
}

type genrePayload struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

type mpaPayload struct {
	ID          int    `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type filmPayload struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ReleaseDate *Date          `json:"releaseDate"`
	Duration    *int           `json:"duration"`
	Mpa         *mpaPayload    `json:"mpa"`
	Genres      []genrePayload `json:"genres"`
}

type userPayload struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday *Date  `json:"birthday"`
}

func (p *filmPayload) toDomain() *film.Film {
	f := &film.Film{
		ID:          film.FilmID(p.ID),
		Name:        p.Name,
		Description: p.Description,
	}
	if p.ReleaseDate != nil {
		t := p.ReleaseDate.Time
		f.ReleaseDate = &t
	}
	if p.Duration != nil {
		d := *p.Duration
		f.Duration = &d
	}
	if p.Mpa != nil {
		f.Mpa = &film.Mpa{ID: film.MpaID(p.Mpa.ID)}
	}
	for _, g := range p.Genres {
		f.Genres = append(f.Genres, film.Genre{ID: film.GenreID(g.ID)})
	}
	return f
}

func filmToPayload(f *film.Film) filmPayload {
	p := filmPayload{
		ID:          f.ID.Int(),
		Name:        f.Name,
		Description: f.Description,
		Duration:    f.Duration,
		Genres:      make([]genrePayload, 0, len(f.Genres)),
	}
	if f.ReleaseDate != nil {
		p.ReleaseDate = &Date{Time: *f.ReleaseDate}
	}
	if f.Mpa != nil {
		p.Mpa = &mpaPayload{
			ID:          f.Mpa.ID.Int(),
			Name:        f.Mpa.Name,
			Description: f.Mpa.Description,
		}
	}
	for _, g := range f.Genres {
		p.Genres = append(p.Genres, genrePayload{ID: g.ID.Int(), Name: g.Name})
	}
	return p
}

func filmsToPayload(films []*film.Film) []filmPayload {
	out := make([]filmPayload, 0, len(films))
	for _, f := range films {
		out = append(out, filmToPayload(f))
	}
	return out
}

func (p *userPayload) toDomain() *user.User {
	u := &user.User{
		ID:    user.UserID(p.ID),
		Email: p.Email,
		Login: p.Login,
		Name:  p.Name,
	}
	if p.Birthday != nil {
		t := p.Birthday.Time
		u.Birthday = &t
	}
	return u
}

func userToPayload(u *user.User) userPayload {
	p := userPayload{
		ID:    u.ID.Int(),
		Email: u.Email,
		Login: u.Login,
		Name:  u.Name,
	}
	if u.Birthday != nil {
		p.Birthday = &Date{Time: *u.Birthday}
	}
	return p
}

func usersToPayload(users []*user.User) []userPayload {
	out := make([]userPayload, 0, len(users))
	for _, u := range users {
		out = append(out, userToPayload(u))
	}
	return out
}

// ══════════════════════════════════════════════════════════════════════════════
// ERROR MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// writeServiceError maps domain error kinds to HTTP status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case shared.IsValidation(err):
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	case shared.IsNotFound(err):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case shared.IsAlreadyExists(err):
		writeJSONError(w, http.StatusConflict, "already_exists", err.Error())
	default:
		s.logger.Error("request failed",
			logger.Err(err),
			logger.String("path", r.URL.Path),
		)
		writeJSONError(w, http.StatusInternalServerError, "internal_server_error", "An unexpected error occurred")
	}
}

func decodeBody(r *http.Request, dest interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("malformed request body: %w", err)
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}

	if s.deps.Storage != nil {
		if err := s.deps.Storage.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["storage"] = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		status["storage"] = "ok"
	}

	writeJSON(w, http.StatusOK, status)
}

// ══════════════════════════════════════════════════════════════════════════════
// FILM HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleCreateFilm(w http.ResponseWriter, r *http.Request) {
	var payload filmPayload
	if err := decodeBody(r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed_body", err.Error())
		return
	}

	created, err := s.deps.Films.Add(r.Context(), payload.toDomain())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, filmToPayload(created))
}

func (s *Server) handleUpdateFilm(w http.ResponseWriter, r *http.Request) {
	var payload filmPayload
	if err := decodeBody(r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed_body", err.Error())
		return
	}

	updated, err := s.deps.Films.Update(r.Context(), payload.toDomain())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, filmToPayload(updated))
}

func (s *Server) handleGetFilms(w http.ResponseWriter, r *http.Request) {
	films, err := s.deps.Films.GetAll(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, filmsToPayload(films))
}

func (s *Server) handleGetFilm(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}

	f, err := s.deps.Films.GetByID(r.Context(), film.FilmID(id))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, filmToPayload(f))
}

func (s *Server) handleDeleteFilm(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}

	if err := s.deps.Films.Delete(r.Context(), film.FilmID(id)); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleGetPopularFilms(w http.ResponseWriter, r *http.Request) {
	count := getQueryParamInt(r, "count", 0)

	films, err := s.deps.Likes.GetPopularFilms(r.Context(), count)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, filmsToPayload(films))
}

// ══════════════════════════════════════════════════════════════════════════════
// LIKE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleAddLike(w http.ResponseWriter, r *http.Request) {
	filmID, err := pathInt(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}
	userID, err := pathInt(r, "userId")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}

	if err := s.deps.Likes.AddLike(r.Context(), film.FilmID(filmID), user.UserID(userID)); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleRemoveLike(w http.ResponseWriter, r *http.Request) {
	filmID, err := pathInt(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}
	userID, err := pathInt(r, "userId")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}

	if err := s.deps.Likes.RemoveLike(r.Context(), film.FilmID(filmID), user.UserID(userID)); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, nil)
}

// ══════════════════════════════════════════════════════════════════════════════
// USER HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var payload userPayload
	if err := decodeBody(r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed_body", err.Error())
		return
	}

	created, err := s.deps.Users.Add(r.Context(), payload.toDomain())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, userToPayload(created))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var payload userPayload
	if err := decodeBody(r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed_body", err.Error())
		return
	}

	updated, err := s.deps.Users.Update(r.Context(), payload.toDomain())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userToPayload(updated))
}

func (s *Server) handleGetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.deps.Users.GetAll(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, usersToPayload(users))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}

	u, err := s.deps.Users.GetByID(r.Context(), user.UserID(id))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userToPayload(u))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}

	if err := s.deps.Users.Delete(r.Context(), user.UserID(id)); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// ══════════════════════════════════════════════════════════════════════════════
// FRIENDSHIP HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleAddFriend(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}
	friendID, err := pathInt(r, "friendId")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}

	if err := s.deps.Friendships.AddFriend(r.Context(), user.UserID(id), user.UserID(friendID)); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleRemoveFriend(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}
	friendID, err := pathInt(r, "friendId")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}

	if err := s.deps.Friendships.RemoveFriend(r.Context(), user.UserID(id), user.UserID(friendID)); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleGetFriends(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}

	friends, err := s.deps.Friendships.GetFriends(r.Context(), user.UserID(id))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, usersToPayload(friends))
}

func (s *Server) handleGetCommonFriends(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}
	otherID, err := pathInt(r, "otherId")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}

	common, err := s.deps.Friendships.GetCommonFriends(r.Context(), user.UserID(id), user.UserID(otherID))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, usersToPayload(common))
}

// ══════════════════════════════════════════════════════════════════════════════
// REFERENCE DATA HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleGetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.deps.References.Genres(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	out := make([]genrePayload, 0, len(genres))
	for _, g := range genres {
		out = append(out, genrePayload{ID: g.ID.Int(), Name: g.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetGenre(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}

	g, err := s.deps.References.GenreByID(r.Context(), film.GenreID(id))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, genrePayload{ID: g.ID.Int(), Name: g.Name})
}

func (s *Server) handleGetMpaRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := s.deps.References.MpaRatings(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	out := make([]mpaPayload, 0, len(ratings))
	for _, m := range ratings {
		out = append(out, mpaPayload{ID: m.ID.Int(), Name: m.Name, Description: m.Description})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetMpa(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}

	m, err := s.deps.References.MpaByID(r.Context(), film.MpaID(id))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mpaPayload{ID: m.ID.Int(), Name: m.Name, Description: m.Description})
}
