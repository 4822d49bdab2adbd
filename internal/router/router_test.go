package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"Share_Space/internal/bootstrap"
	"Share_Space/internal/config"
	"Share_Space/internal/repository/slot"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Store: config.StoreConfig{Driver: "memory"},
		Jobs: config.JobsConfig{
			BanSweep:       "@every 1h",
			OutboxInterval: "1s",
		},
	}
	app, err := bootstrap.New(context.Background(), cfg, slot.NewMemoryStore(), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return InitRouter(app)
}

func call(t *testing.T, r http.Handler, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

type account struct {
	uid, token string
}

func register(t *testing.T, r http.Handler, name, email string) account {
	t.Helper()
	code, body := call(t, r, http.MethodPost, "/api/user/register", "", gin.H{
		"name": name, "email": email, "password": "pw-" + name,
	})
	require.Equal(t, http.StatusOK, code, body)
	user := body["user"].(map[string]any)
	tokens := body["tokens"].(map[string]any)
	return account{uid: user["uid"].(string), token: tokens["access_token"].(string)}
}

func listIDs(body map[string]any) []string {
	var ids []string
	list, _ := body["list"].([]any)
	for _, it := range list {
		ids = append(ids, it.(map[string]any)["id"].(string))
	}
	return ids
}

func TestReviewFlowOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	alice := register(t, r, "Alice", "a@x")
	bob := register(t, r, "Bob", "b@x")

	code, body := call(t, r, http.MethodPost, "/api/post/create", bob.token, gin.H{
		"category": "life", "title": "Hello", "content": "from bob",
	})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, true, body["pending"])
	postID := body["item"].(map[string]any)["id"].(string)

	_, body = call(t, r, http.MethodGet, "/api/post/timeline", "", nil)
	assert.NotContains(t, listIDs(body), postID)

	code, _ = call(t, r, http.MethodGet, "/api/post/"+postID, "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = call(t, r, http.MethodPost, "/api/admin/post/"+postID+"/approve", bob.token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, body = call(t, r, http.MethodGet, "/api/admin/pending", alice.token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["total"])

	code, body = call(t, r, http.MethodPost, "/api/admin/post/"+postID+"/approve", alice.token, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, true, body["changed"])

	_, body = call(t, r, http.MethodGet, "/api/post/timeline?section=life&q=bob", "", nil)
	assert.Equal(t, []string{postID}, listIDs(body))

	code, body = call(t, r, http.MethodGet, "/api/space/"+bob.uid, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["posts"], 1)

	code, _ = call(t, r, http.MethodGet, "/api/post/timeline?section=sports", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestBanEndsSessionOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	alice := register(t, r, "Alice", "a@x")
	bob := register(t, r, "Bob", "b@x")

	code, _ := call(t, r, http.MethodGet, "/api/auth/me", bob.token, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = call(t, r, http.MethodPost, "/api/admin/users/"+bob.uid+"/ban", alice.token, gin.H{"days": 7})
	require.Equal(t, http.StatusOK, code)

	code, _ = call(t, r, http.MethodGet, "/api/auth/me", bob.token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := call(t, r, http.MethodPost, "/api/user/login", "", gin.H{"email": "b@x", "password": "pw-Bob"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.NotEmpty(t, body["bannedUntil"])

	code, _ = call(t, r, http.MethodPost, "/api/admin/users/"+bob.uid+"/ban", alice.token, gin.H{"days": 0})
	require.Equal(t, http.StatusOK, code)
	code, _ = call(t, r, http.MethodPost, "/api/user/login", "", gin.H{"email": "b@x", "password": "pw-Bob"})
	assert.Equal(t, http.StatusOK, code)
}

func TestAuthErrorsOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	alice := register(t, r, "Alice", "a@x")

	code, _ := call(t, r, http.MethodPost, "/api/post/create", "", gin.H{"category": "life", "title": "t", "content": "c"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = call(t, r, http.MethodPost, "/api/user/register", "", gin.H{"name": "Dup", "email": "a@x", "password": "pw"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = call(t, r, http.MethodPost, "/api/user/login", "", gin.H{"email": "a@x", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = call(t, r, http.MethodPut, "/api/auth/theme", alice.token, gin.H{"theme": "sepia"})
	assert.Equal(t, http.StatusBadRequest, code)
	code, body := call(t, r, http.MethodPut, "/api/auth/theme", alice.token, gin.H{"theme": "dark"})
	require.Equal(t, http.StatusOK, code)
	_, body = call(t, r, http.MethodGet, "/api/auth/theme", alice.token, nil)
	assert.Equal(t, "dark", body["theme"])

	code, _ = call(t, r, http.MethodPost, "/api/auth/logout", alice.token, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = call(t, r, http.MethodGet, "/api/auth/me", alice.token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestSeedContentIsPublic(t *testing.T) {
	r := newTestRouter(t)

	_, body := call(t, r, http.MethodGet, "/api/post/timeline", "", nil)
	assert.Equal(t, []string{"1", "2"}, listIDs(body))
	_, body = call(t, r, http.MethodGet, "/api/media/list", "", nil)
	assert.Equal(t, []string{"m1", "m2"}, listIDs(body))
	_, body = call(t, r, http.MethodGet, "/api/gallery/list", "", nil)
	assert.Len(t, body["list"], 3)
	_, body = call(t, r, http.MethodGet, "/api/guestbook/list", "", nil)
	assert.Empty(t, body["list"])
}
