package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	iauth "github.com/titoscorner/backend/internal/auth"
	"github.com/titoscorner/backend/internal/cache"
	"github.com/titoscorner/backend/internal/database/testutil"
	"github.com/titoscorner/backend/internal/models"
)

func newTestRouter(t *testing.T) (*gin.Engine, *iauth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t)
	jwtSvc, err := iauth.NewJWTService(iauth.JWTConfig{
		Secret:         "router-test-secret",
		Issuer:         "titoscorner",
		AccessTokenTTL: time.Hour,
	})
	require.NoError(t, err)

	router, err := NewRouter(db, cache.NewManager(nil), jwtSvc, RouterConfig{})
	require.NoError(t, err)

	return router, jwtSvc
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
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
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterLoginAndAdminGating(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.MustOpenTestDB(t)
	jwtSvc, err := iauth.NewJWTService(iauth.JWTConfig{Secret: "secret", AccessTokenTTL: time.Hour})
	require.NoError(t, err)
	router, err := NewRouter(db, cache.NewManager(nil), jwtSvc, RouterConfig{})
	require.NoError(t, err)

	// Register a customer account.
	w := doJSON(t, router, http.MethodPost, "/api/users/register", "", gin.H{
		"fullname": "Tito Okafor",
		"email":    "tito@example.com",
		"password": "pw12345678",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotContains(t, w.Body.String(), "pw12345678")
	require.NotContains(t, w.Body.String(), "password")

	// Weak payload is rejected up front.
	w = doJSON(t, router, http.MethodPost, "/api/users/register", "", gin.H{
		"fullname": "Tito",
		"email":    "not-an-email",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Login.
	w = doJSON(t, router, http.MethodPost, "/api/users/login", "", gin.H{
		"email":    "tito@example.com",
		"password": "pw12345678",
	})
	require.Equal(t, http.StatusOK, w.Code)
	payload := decodeBody(t, w)
	data := payload["data"].(map[string]any)
	memberToken := data["token"].(string)
	require.NotEmpty(t, memberToken)

	// Wrong password.
	w = doJSON(t, router, http.MethodPost, "/api/users/login", "", gin.H{
		"email":    "tito@example.com",
		"password": "wrong-pass",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Mutations are admin-gated.
	blogBody := gin.H{"headline": "h", "description": "d", "author": "a"}
	w = doJSON(t, router, http.MethodPost, "/api/blogs/post", "", blogBody)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(t, router, http.MethodPost, "/api/blogs/post", memberToken, blogBody)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Promote the account and log in again for an admin token.
	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", "tito@example.com").
		Update("is_admin", true).Error)

	w = doJSON(t, router, http.MethodPost, "/api/users/login", "", gin.H{
		"email":    "tito@example.com",
		"password": "pw12345678",
	})
	require.Equal(t, http.StatusOK, w.Code)
	adminToken := decodeBody(t, w)["data"].(map[string]any)["token"].(string)

	w = doJSON(t, router, http.MethodPost, "/api/blogs/post", adminToken, blogBody)
	require.Equal(t, http.StatusCreated, w.Code)

	// Admin-only user listing.
	w = doJSON(t, router, http.MethodGet, "/api/users", memberToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, router, http.MethodGet, "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestBlogLifecycleOverHTTP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.MustOpenTestDB(t)
	jwtSvc, err := iauth.NewJWTService(iauth.JWTConfig{Secret: "secret", AccessTokenTTL: time.Hour})
	require.NoError(t, err)
	router, err := NewRouter(db, cache.NewManager(nil), jwtSvc, RouterConfig{})
	require.NoError(t, err)

	adminToken, err := jwtSvc.GenerateAccessToken(iauth.AccessTokenInput{UserID: "admin-1", IsAdmin: true})
	require.NoError(t, err)

	for i := 0; i < 12; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/blogs/post", adminToken, gin.H{
			"headline":    fmt.Sprintf("post %d", i),
			"description": "body",
			"author":      "Tito",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// Paginated listing is public.
	w := doJSON(t, router, http.MethodGet, "/api/blogs?page=1&limit=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	payload := decodeBody(t, w)
	blogs := payload["data"].(map[string]any)["blogs"].([]any)
	require.Len(t, blogs, 10)
	pagination := payload["pagination"].(map[string]any)
	require.Equal(t, float64(12), pagination["total_items"])
	require.Equal(t, float64(2), pagination["total_pages"])

	w = doJSON(t, router, http.MethodGet, "/api/blogs?page=2&limit=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	blogs = decodeBody(t, w)["data"].(map[string]any)["blogs"].([]any)
	require.Len(t, blogs, 2)

	id := blogs[0].(map[string]any)["id"].(string)

	// Find, update, repeated delete.
	w = doJSON(t, router, http.MethodGet, "/api/blogs/find/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/blogs/update/"+id, adminToken, gin.H{"headline": "renamed"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "renamed")

	w = doJSON(t, router, http.MethodDelete, "/api/blogs/delete/"+id, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodDelete, "/api/blogs/delete/"+id, adminToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/blogs/find/"+id, "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartRequiresAuthentication(t *testing.T) {
	router, jwtSvc := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/cart", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := jwtSvc.GenerateAccessToken(iauth.AccessTokenInput{UserID: "member-1"})
	require.NoError(t, err)

	w = doJSON(t, router, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Any authenticated user may add items; no admin claim needed.
	w = doJSON(t, router, http.MethodPost, "/api/cart/post", token, gin.H{
		"cover": "https://img.example/cover.jpg",
		"title": "Egusi Nights",
		"price": "12.50",
	})
	require.Equal(t, http.StatusCreated, w.Code)
}
