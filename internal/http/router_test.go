package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/kabarin/kabar/internal/auth"
	"github.com/kabarin/kabar/internal/config"
	"github.com/kabarin/kabar/internal/database"
	"github.com/kabarin/kabar/internal/entities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	db     *database.Database
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.New(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	authCfg := config.Auth{
		JWTSecret:     "test-secret",
		TokenTTL:      7 * 24 * time.Hour,
		BcryptCost:    4, // low cost for faster tests
		SecureCookies: false,
	}

	router := NewRouter(RouterConfig{
		Database:    db,
		AuthService: auth.NewService(db.DB, authCfg),
		TokenCodec:  auth.NewTokenCodec(authCfg.JWTSecret, authCfg.TokenTTL),
		AuthConfig:  authCfg,
		CORSOrigin:  "http://localhost:3000",
		Version:     "test",
	})

	return &testEnv{router: router, db: db}
}

// doJSON performs a request with an optional JSON body and session cookie.
func (e *testEnv) doJSON(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// register creates an account through the API and returns the session cookie.
func (e *testEnv) register(t *testing.T, name, email, password string) *http.Cookie {
	t.Helper()

	rr := e.doJSON(t, http.MethodPost, "/api/auth/register", gin.H{
		"name": name, "email": email, "password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, rr.Code, "register failed: %s", rr.Body.String())

	cookie := sessionCookie(rr)
	require.NotNil(t, cookie, "register did not set the session cookie")
	return cookie
}

// registerAdmin registers a user and promotes it to administrator directly in
// the store.
func (e *testEnv) registerAdmin(t *testing.T, email string) *http.Cookie {
	t.Helper()

	cookie := e.register(t, "Admin", email, "secret1")
	err := e.db.DB.Model(&entities.User{}).
		Where("email = ?", email).
		Update("role", entities.UserRoleAdmin).Error
	require.NoError(t, err)
	return cookie
}

// seedArticle creates an article through the admin API and returns its slug.
func (e *testEnv) seedArticle(t *testing.T, adminCookie *http.Cookie, title string) string {
	t.Helper()

	rr := e.doJSON(t, http.MethodPost, "/api/articles", gin.H{
		"title":         title,
		"summary":       "summary",
		"content":       "<p>body</p>",
		"category_slug": "politik",
	}, adminCookie)
	require.Equal(t, http.StatusCreated, rr.Code, "seed article failed: %s", rr.Body.String())

	var body struct {
		Data entities.Article `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Data.Slug
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), "invalid JSON: %s", rr.Body.String())
	return body
}
