package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmorate/filmorate/internal/infrastructure/persistence/memory"
	"github.com/filmorate/filmorate/internal/service"
	"github.com/filmorate/filmorate/pkg/logger"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	log := logger.New(logger.Options{Output: io.Discard})

	filmStore := memory.NewFilmStore()
	userStore := memory.NewUserStore()
	genreStore := memory.NewGenreStore(memory.DefaultGenres())
	mpaStore := memory.NewMpaStore(memory.DefaultMpaRatings())
	likeStore := memory.NewLikeStore()
	friendshipStore := memory.NewFriendshipStore()

	validation := service.NewValidationService(userStore, filmStore, genreStore, mpaStore, log)
	films := service.NewFilmService(filmStore, genreStore, likeStore, nil, validation, log)
	users := service.NewUserService(userStore, friendshipStore, likeStore, nil, validation, log)
	friendships := service.NewFriendshipService(friendshipStore, userStore, validation, log)
	likes := service.NewLikeService(likeStore, films, nil, validation, log)
	references := service.NewReferenceService(genreStore, mpaStore, log)

	return NewServer(DefaultConfig(), Dependencies{
		Films:       films,
		Users:       users,
		Friendships: friendships,
		Likes:       likes,
		References:  references,
		Logger:      log,
	})
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func createFilm(t *testing.T, srv *Server, name string) filmPayload {
	t.Helper()

	rec := doJSON(t, srv, http.MethodPost, "/films", map[string]interface{}{
		"name":        name,
		"description": "test",
		"releaseDate": "2000-06-01",
		"duration":    120,
		"mpa":         map[string]int{"id": 1},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created filmPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created
}

func createUser(t *testing.T, srv *Server, login string) userPayload {
	t.Helper()

	rec := doJSON(t, srv, http.MethodPost, "/users", map[string]interface{}{
		"email": login + "@example.com",
		"login": login,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created userPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created
}

func TestCreateFilm_RoundTrip(t *testing.T) {
	srv := newTestServer(t)

	created := createFilm(t, srv, "The Matrix")
	assert.NotZero(t, created.ID)
	require.NotNil(t, created.Mpa)
	assert.Equal(t, "G", created.Mpa.Name)
	require.NotNil(t, created.ReleaseDate)
	assert.Equal(t, "2000-06-01", created.ReleaseDate.Format(dateLayout))

	rec := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/films/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateFilm_ValidationMapsTo400(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/films", map[string]interface{}{
		"name":        "Too Early",
		"releaseDate": "1895-12-27",
		"mpa":         map[string]int{"id": 1},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetFilm_UnknownMapsTo404(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/films/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetFilm_BadPathMapsTo400(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/films/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPopularFilms_Endpoint(t *testing.T) {
	srv := newTestServer(t)

	a := createFilm(t, srv, "A")
	b := createFilm(t, srv, "B")
	u := createUser(t, srv, "neo")

	rec := doJSON(t, srv, http.MethodPut, fmt.Sprintf("/films/%d/like/%d", b.ID, u.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/films/popular?count=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var popular []filmPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &popular))
	require.Len(t, popular, 2)
	assert.Equal(t, b.ID, popular[0].ID)
	assert.Equal(t, a.ID, popular[1].ID)
}

func TestRemoveLike_AbsentMapsTo404(t *testing.T) {
	srv := newTestServer(t)

	f := createFilm(t, srv, "A")
	u := createUser(t, srv, "neo")

	rec := doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/films/%d/like/%d", f.ID, u.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFriendsFlow(t *testing.T) {
	srv := newTestServer(t)

	u1 := createUser(t, srv, "neo")
	u2 := createUser(t, srv, "trinity")
	u3 := createUser(t, srv, "morpheus")

	rec := doJSON(t, srv, http.MethodPut, fmt.Sprintf("/users/%d/friends/%d", u1.ID, u3.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, srv, http.MethodPut, fmt.Sprintf("/users/%d/friends/%d", u2.ID, u3.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/users/%d/friends/common/%d", u1.ID, u2.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var common []userPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &common))
	require.Len(t, common, 1)
	assert.Equal(t, u3.ID, common[0].ID)
}

func TestAddFriend_SelfMapsTo400(t *testing.T) {
	srv := newTestServer(t)

	u := createUser(t, srv, "neo")

	rec := doJSON(t, srv, http.MethodPut, fmt.Sprintf("/users/%d/friends/%d", u.ID, u.ID), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpsertUser_ConflictMapsTo404(t *testing.T) {
	srv := newTestServer(t)

	u := createUser(t, srv, "neo")

	rec := doJSON(t, srv, http.MethodPost, "/users", map[string]interface{}{
		"id":    u.ID + 100,
		"email": "other@example.com",
		"login": "neo",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReferenceEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/genres", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var genres []genrePayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &genres))
	assert.Len(t, genres, 6)

	rec = doJSON(t, srv, http.MethodGet, "/mpa/5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var m mpaPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, "NC-17", m.Name)

	rec = doJSON(t, srv, http.MethodGet, "/mpa/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
