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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/openshelf/catalog/internal/database"
	"github.com/openshelf/catalog/internal/database/authors"
	"github.com/openshelf/catalog/internal/entities"
)

func setupAuthorsTestDB(t *testing.T) (*database.Database, *authors.Repository, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_authors_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.New(sqlite.Open(dbPath))
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, authors.NewRepository(db.DB), cleanup
}

func newAuthorsRouter(repo *authors.Repository) *gin.Engine {
	controller := NewAuthorsController(repo)
	router := gin.New()
	router.GET("/authors", controller.GetAllAuthors)
	router.GET("/authors/:id", controller.GetAuthor)
	router.POST("/authors", controller.CreateAuthor)
	router.PUT("/authors/:id", controller.UpdateAuthor)
	router.DELETE("/authors/:id", controller.DeleteAuthor)
	return router
}

func TestAuthorsController_GetAllAuthors(t *testing.T) {
	t.Run("returns empty array when no authors exist", func(t *testing.T) {
		_, repo, cleanup := setupAuthorsTestDB(t)
		defer cleanup()
		router := newAuthorsRouter(repo)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/authors", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	})

	t.Run("returns existing authors", func(t *testing.T) {
		_, repo, cleanup := setupAuthorsTestDB(t)
		defer cleanup()
		require.NoError(t, repo.CreateAuthor(&entities.Author{Name: "First"}))
		require.NoError(t, repo.CreateAuthor(&entities.Author{Name: "Second"}))
		router := newAuthorsRouter(repo)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/authors", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Len(t, got, 2)
	})
}

func TestAuthorsController_GetAuthor(t *testing.T) {
	t.Run("returns the author by id", func(t *testing.T) {
		_, repo, cleanup := setupAuthorsTestDB(t)
		defer cleanup()
		author := &entities.Author{Name: "Octavia Butler"}
		require.NoError(t, repo.CreateAuthor(author))
		router := newAuthorsRouter(repo)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/authors/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, float64(author.ID), got["id"])
		assert.Equal(t, "Octavia Butler", got["name"])
	})

	t.Run("returns 404 for missing id", func(t *testing.T) {
		_, repo, cleanup := setupAuthorsTestDB(t)
		defer cleanup()
		router := newAuthorsRouter(repo)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/authors/42", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error": "author not found"}`, w.Body.String())
	})
}

func TestAuthorsController_CreateAuthor(t *testing.T) {
	_, repo, cleanup := setupAuthorsTestDB(t)
	defer cleanup()
	router := newAuthorsRouter(repo)

	body := bytes.NewBufferString(`{"name": "N. K. Jemisin"}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/authors", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "N. K. Jemisin", got["name"])
	assert.Greater(t, got["id"], float64(0))
}

func TestAuthorsController_UpdateAuthor(t *testing.T) {
	t.Run("overwrites only the supplied field", func(t *testing.T) {
		_, repo, cleanup := setupAuthorsTestDB(t)
		defer cleanup()
		author := &entities.Author{Name: "Old"}
		require.NoError(t, repo.CreateAuthor(author))
		router := newAuthorsRouter(repo)

		body := bytes.NewBufferString(`{"name": "New"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/authors/1", body)
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		found, err := repo.GetAuthorByID(author.ID)
		require.NoError(t, err)
		assert.Equal(t, "New", found.Name)
		assert.Equal(t, author.ID, found.ID)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		_, repo, cleanup := setupAuthorsTestDB(t)
		defer cleanup()
		require.NoError(t, repo.CreateAuthor(&entities.Author{Name: "Kept"}))
		router := newAuthorsRouter(repo)

		body := bytes.NewBufferString(`{"nickname": "nope"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/authors/1", body)
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error": "unknown field: nickname"}`, w.Body.String())

		found, err := repo.GetAuthorByID(1)
		require.NoError(t, err)
		assert.Equal(t, "Kept", found.Name)
	})

	t.Run("returns 404 for missing id", func(t *testing.T) {
		_, repo, cleanup := setupAuthorsTestDB(t)
		defer cleanup()
		router := newAuthorsRouter(repo)

		body := bytes.NewBufferString(`{"name": "Ghost"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/authors/7", body)
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAuthorsController_DeleteAuthor(t *testing.T) {
	t.Run("deletes and subsequent get returns 404", func(t *testing.T) {
		_, repo, cleanup := setupAuthorsTestDB(t)
		defer cleanup()
		require.NoError(t, repo.CreateAuthor(&entities.Author{Name: "Doomed"}))
		router := newAuthorsRouter(repo)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/authors/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())

		w = httptest.NewRecorder()
		req, _ = http.NewRequest("GET", "/authors/1", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 404 for missing id", func(t *testing.T) {
		_, repo, cleanup := setupAuthorsTestDB(t)
		defer cleanup()
		router := newAuthorsRouter(repo)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/authors/9", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 409 when the author still owns books", func(t *testing.T) {
		db, repo, cleanup := setupAuthorsTestDB(t)
		defer cleanup()
		author := &entities.Author{Name: "Busy"}
		require.NoError(t, repo.CreateAuthor(author))
		book := entities.Book{Title: "In Print", AuthorID: author.ID, PublishedAt: time.Now()}
		require.NoError(t, db.DB.Create(&book).Error)
		router := newAuthorsRouter(repo)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/authors/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"error": "author is referenced by existing books"}`, w.Body.String())
	})
}
