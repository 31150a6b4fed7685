package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabarin/kabar/internal/entities"
)

func TestCommentsCreate(t *testing.T) {
	env := setupRouter(t)
	admin := env.registerAdmin(t, "admin@example.com")
	slug := env.seedArticle(t, admin, "Commented Article")
	cookie := env.register(t, "Alice", "alice@example.com", "secret1")

	rr := env.doJSON(t, http.MethodPost, "/api/articles/"+slug+"/comments", gin.H{
		"body": "great read",
	}, cookie)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var body struct {
		Data entities.Comment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "great read", body.Data.Body)
	require.NotNil(t, body.Data.Author)
	assert.Equal(t, "Alice", body.Data.Author.Name)
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestCommentsCreateRequiresAuth(t *testing.T) {
	env := setupRouter(t)
	admin := env.registerAdmin(t, "admin@example.com")
	slug := env.seedArticle(t, admin, "Commented Article")

	rr := env.doJSON(t, http.MethodPost, "/api/articles/"+slug+"/comments", gin.H{
		"body": "anonymous",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCommentsCreateValidation(t *testing.T) {
	env := setupRouter(t)
	admin := env.registerAdmin(t, "admin@example.com")
	slug := env.seedArticle(t, admin, "Commented Article")
	cookie := env.register(t, "Alice", "alice@example.com", "secret1")

	empty := env.doJSON(t, http.MethodPost, "/api/articles/"+slug+"/comments", gin.H{"body": ""}, cookie)
	assert.Equal(t, http.StatusBadRequest, empty.Code)
	assert.Contains(t, empty.Body.String(), "comment body is required")

	missingArticle := env.doJSON(t, http.MethodPost, "/api/articles/no-such/comments", gin.H{"body": "x"}, cookie)
	assert.Equal(t, http.StatusNotFound, missingArticle.Code)
}

func TestCommentsListByArticle(t *testing.T) {
	env := setupRouter(t)
	admin := env.registerAdmin(t, "admin@example.com")
	slug := env.seedArticle(t, admin, "Commented Article")
	cookie := env.register(t, "Alice", "alice@example.com", "secret1")

	for _, text := range []string{"first", "second"} {
		rr := env.doJSON(t, http.MethodPost, "/api/articles/"+slug+"/comments", gin.H{"body": text}, cookie)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := env.doJSON(t, http.MethodGet, "/api/articles/"+slug+"/comments", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data []entities.Comment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	// Oldest first.
	assert.Equal(t, "first", body.Data[0].Body)
	assert.Equal(t, "second", body.Data[1].Body)
	require.NotNil(t, body.Data[0].Author)
	assert.Equal(t, "Alice", body.Data[0].Author.Name)
}

func TestCommentsDeleteOwnership(t *testing.T) {
	env := setupRouter(t)
	admin := env.registerAdmin(t, "admin@example.com")
	slug := env.seedArticle(t, admin, "Commented Article")

	author := env.register(t, "Author", "author@example.com", "secret1")
	other := env.register(t, "Other", "other@example.com", "secret1")

	created := env.doJSON(t, http.MethodPost, "/api/articles/"+slug+"/comments", gin.H{"body": "mine"}, author)
	require.Equal(t, http.StatusCreated, created.Code)

	var body struct {
		Data entities.Comment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &body))
	path := fmt.Sprintf("/api/comments/%d", body.Data.ID)

	asOther := env.doJSON(t, http.MethodDelete, path, nil, other)
	assert.Equal(t, http.StatusForbidden, asOther.Code)
	assert.Contains(t, asOther.Body.String(), "you can only delete your own comments")

	asAuthor := env.doJSON(t, http.MethodDelete, path, nil, author)
	assert.Equal(t, http.StatusOK, asAuthor.Code)

	again := env.doJSON(t, http.MethodDelete, path, nil, author)
	assert.Equal(t, http.StatusNotFound, again.Code)
}

func TestCommentsDeleteAsAdmin(t *testing.T) {
	env := setupRouter(t)
	admin := env.registerAdmin(t, "admin@example.com")
	slug := env.seedArticle(t, admin, "Commented Article")
	author := env.register(t, "Author", "author@example.com", "secret1")

	created := env.doJSON(t, http.MethodPost, "/api/articles/"+slug+"/comments", gin.H{"body": "spam"}, author)
	require.Equal(t, http.StatusCreated, created.Code)

	var body struct {
		Data entities.Comment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &body))

	rr := env.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/comments/%d", body.Data.ID), nil, admin)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCommentsDeleteInvalidID(t *testing.T) {
	env := setupRouter(t)
	cookie := env.register(t, "Alice", "alice@example.com", "secret1")

	rr := env.doJSON(t, http.MethodDelete, "/api/comments/not-a-number", nil, cookie)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
