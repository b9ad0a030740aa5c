package server

import (
	"fmt"
	"net/http"
	"testing"

	"agora/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostLifecycleOverHTTP(t *testing.T) {
	s, app, db := newTestServer(t)
	author := createUser(t, db, "author", models.RoleUser)
	other := createUser(t, db, "other", models.RoleUser)

	var postID float64

	t.Run("create", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/posts", bearerToken(t, s, author), map[string]any{
			"title":   "How does the TCP handshake work?",
			"content": "Trying to understand **SYN** and ACK ordering.",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "How does the TCP handshake work?", body["title"])
		assert.Contains(t, body["content_html"], "<strong>SYN</strong>")
		postID = body["id"].(float64)
	})

	t.Run("get", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%.0f", postID), "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, postID, body["id"])
	})

	t.Run("list", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/posts", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		posts := body["posts"].([]any)
		assert.Len(t, posts, 1)
	})

	t.Run("update by non-owner rejected", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/posts/%.0f", postID),
			bearerToken(t, s, other), map[string]any{"title": "hijacked"})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("update by owner", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/posts/%.0f", postID),
			bearerToken(t, s, author), map[string]any{"title": "TCP three-way handshake"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "TCP three-way handshake", body["title"])
	})

	t.Run("delete by non-owner rejected", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%.0f", postID),
			bearerToken(t, s, other), nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("delete by owner then gone", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%.0f", postID),
			bearerToken(t, s, author), nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%.0f", postID), "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCreatePost_Validation(t *testing.T) {
	s, app, db := newTestServer(t)
	author := createUser(t, db, "author", models.RoleUser)

	t.Run("missing title", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/posts", bearerToken(t, s, author), map[string]any{
			"content": "body only",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown category", func(t *testing.T) {
		categoryID := uint(999)
		resp := doRequest(t, app, http.MethodPost, "/api/posts", bearerToken(t, s, author), map[string]any{
			"title":       "A valid title",
			"content":     "A valid body",
			"category_id": categoryID,
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/posts", "", map[string]any{
			"title":   "A valid title",
			"content": "A valid body",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestSearchPosts(t *testing.T) {
	s, app, db := newTestServer(t)
	author := createUser(t, db, "author", models.RoleUser)

	resp := doRequest(t, app, http.MethodPost, "/api/posts", bearerToken(t, s, author), map[string]any{
		"title":   "Fourier transform intuition",
		"content": "Why does the kernel rotate?",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	t.Run("missing query", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/posts/search", "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("matches title", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/posts/search?q=fourier", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Len(t, body["posts"].([]any), 1)
	})

	t.Run("no match", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/posts/search?q=laplace", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Empty(t, body["posts"])
	})
}

func TestCommentsOverHTTP(t *testing.T) {
	s, app, db := newTestServer(t)
	author := createUser(t, db, "author", models.RoleUser)
	answerer := createUser(t, db, "answerer", models.RoleUser)

	resp := doRequest(t, app, http.MethodPost, "/api/posts", bearerToken(t, s, author), map[string]any{
		"title":   "Master theorem case 2",
		"content": "When does the log factor appear?",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	post := decodeBody(t, resp)
	postPath := fmt.Sprintf("/api/posts/%.0f", post["id"].(float64))

	resp = doRequest(t, app, http.MethodPost, postPath+"/comments", bearerToken(t, s, answerer), map[string]any{
		"content": "It appears when f(n) matches n^log_b(a) exactly.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	comment := decodeBody(t, resp)
	commentID := comment["id"].(float64)

	t.Run("listed on the post", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, postPath+"/comments", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Len(t, body["comments"].([]any), 1)
	})

	t.Run("accept by post author", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/comments/%.0f/accept", commentID),
			bearerToken(t, s, author), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, true, body["isAccepted"])

		updated := reloadServerUser(t, db, answerer.ID)
		assert.Equal(t, 15, updated.Reputation)
	})

	t.Run("accept by someone else rejected", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/comments/%.0f/accept", commentID),
			bearerToken(t, s, answerer), nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("banned author cannot change acceptance", func(t *testing.T) {
		require.NoError(t, db.Model(author).UpdateColumn("is_banned", true).Error)
		defer func() {
			require.NoError(t, db.Model(author).UpdateColumn("is_banned", false).Error)
		}()

		resp := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/comments/%.0f/accept", commentID),
			bearerToken(t, s, author), nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Your account is banned", body["error"])

		resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/comments/%.0f/accept", commentID),
			bearerToken(t, s, author), nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		var fresh models.Comment
		require.NoError(t, db.First(&fresh, uint(commentID)).Error)
		assert.True(t, fresh.IsAccepted)
	})
}

func TestVotesOverHTTP(t *testing.T) {
	s, app, db := newTestServer(t)
	author := createUser(t, db, "author", models.RoleUser)
	voter := createUser(t, db, "voter", models.RoleUser)

	resp := doRequest(t, app, http.MethodPost, "/api/posts", bearerToken(t, s, author), map[string]any{
		"title":   "Karnaugh map grouping",
		"content": "Can groups wrap around the edges?",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	post := decodeBody(t, resp)
	postID := post["id"].(float64)

	t.Run("upvote", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/votes", bearerToken(t, s, voter), map[string]any{
			"target_type": "post",
			"target_id":   postID,
			"value":       1,
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(1), body["voteCount"])
		assert.Equal(t, float64(1), body["userVote"])

		assert.Equal(t, 5, reloadServerUser(t, db, author.ID).Reputation)
	})

	t.Run("self vote rejected", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/votes", bearerToken(t, s, author), map[string]any{
			"target_type": "post",
			"target_id":   postID,
			"value":       1,
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("missing target_id", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/votes", bearerToken(t, s, voter), map[string]any{
			"target_type": "post",
			"value":       1,
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("read back own vote", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet,
			fmt.Sprintf("/api/votes?target_type=post&target_id=%.0f", postID),
			bearerToken(t, s, voter), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(1), body["userVote"])
	})
}

func TestRemovedPostHiddenOverHTTP(t *testing.T) {
	s, app, db := newTestServer(t)
	author := createUser(t, db, "author", models.RoleUser)
	moderator := createUser(t, db, "maria_mod", models.RoleModerator)

	resp := doRequest(t, app, http.MethodPost, "/api/posts", bearerToken(t, s, author), map[string]any{
		"title":   "Off-topic rant",
		"content": "This will be removed.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	post := decodeBody(t, resp)
	postPath := fmt.Sprintf("/api/posts/%.0f", post["id"].(float64))

	resp = doRequest(t, app, http.MethodPost, "/api/moderation", bearerToken(t, s, moderator), map[string]any{
		"action":      "REMOVE",
		"target_type": "POST",
		"target_id":   post["id"],
		"reason":      "off topic",
	})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("hidden from anonymous readers", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, postPath, "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("hidden from the author", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, postPath, bearerToken(t, s, author), nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = doRequest(t, app, http.MethodGet, postPath+"/comments", bearerToken(t, s, author), nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("visible to moderators", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, postPath, bearerToken(t, s, moderator), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, true, body["is_removed"])
	})
}

func reloadServerUser(t *testing.T, db *gorm.DB, id uint) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return &user
}
