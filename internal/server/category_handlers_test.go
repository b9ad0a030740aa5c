package server

import (
	"net/http"
	"testing"

	"agora/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestTagsOverHTTP(t *testing.T) {
	s, app, db := newTestServer(t)
	user := createUser(t, db, "student", models.RoleUser)

	t.Run("unauthenticated create rejected", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/tags", "", map[string]string{"name": "dp"})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("create", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/tags", bearerToken(t, s, user),
			map[string]string{"name": "Dynamic Programming"})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "dynamic-programming", body["slug"])
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/tags", bearerToken(t, s, user),
			map[string]string{"name": "dynamic programming"})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/tags", bearerToken(t, s, user),
			map[string]string{"name": "!!!"})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("search", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/tags?search=dynamic", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Len(t, body["tags"].([]any), 1)

		resp = doRequest(t, app, http.MethodGet, "/api/tags?search=nomatch", "", nil)
		body = decodeBody(t, resp)
		assert.Empty(t, body["tags"])
	})
}

func TestCategoriesOverHTTP(t *testing.T) {
	s, app, db := newTestServer(t)
	admin := createUser(t, db, "root", models.RoleAdmin)

	resp := doRequest(t, app, http.MethodPost, "/api/categories", bearerToken(t, s, admin),
		map[string]string{"name": "Signal Processing", "color": "#ff6b35"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	assert.Equal(t, "signal-processing", created["slug"])

	t.Run("listed publicly", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/categories", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Len(t, body["categories"].([]any), 1)
	})

	t.Run("fetch by slug", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/categories/signal-processing", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Signal Processing", body["name"])
	})

	t.Run("unknown slug", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/categories/nope", "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetUsersAdminOnly(t *testing.T) {
	s, app, db := newTestServer(t)
	user := createUser(t, db, "student", models.RoleUser)
	admin := createUser(t, db, "root", models.RoleAdmin)

	t.Run("regular user rejected", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/users", bearerToken(t, s, user), nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin sees everyone", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/users", bearerToken(t, s, admin), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Len(t, body["users"].([]any), 2)
	})
}
