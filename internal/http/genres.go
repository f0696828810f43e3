package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/openshelf/catalog/internal/database/genres"
	"github.com/openshelf/catalog/internal/entities"
)

// GenreStore defines database operations for genre management.
type GenreStore interface {
	CreateGenre(genre *entities.Genre) error
	GetGenreByID(id uint) (*entities.Genre, error)
	GetAllGenres() ([]entities.Genre, error)
	SaveGenre(genre *entities.Genre) error
	DeleteGenre(id uint) error
}

type GenresController struct {
	store GenreStore
}

func NewGenresController(store GenreStore) *GenresController {
	return &GenresController{store: store}
}

// GetAllGenres returns all genres
// GET /genres
func (gc *GenresController) GetAllGenres(c *gin.Context) {
	all, err := gc.store.GetAllGenres()
	if err != nil {
		respondInternalError(c, err, "get all genres")
		return
	}
	c.JSON(http.StatusOK, serializeGenres(all))
}

// GetGenre returns a single genre by ID
// GET /genres/:id
func (gc *GenresController) GetGenre(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	genre, err := gc.store.GetGenreByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "genre")
			return
		}
		respondInternalError(c, err, "get genre")
		return
	}
	c.JSON(http.StatusOK, serializeGenre(*genre))
}

// CreateGenre creates a new genre from the request body
// POST /genres
func (gc *GenresController) CreateGenre(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid JSON body")
		return
	}

	genre := &entities.Genre{Name: req.Name}
	if err := gc.store.CreateGenre(genre); err != nil {
		respondInternalError(c, err, "create genre")
		return
	}
	respondCreated(c, serializeGenre(*genre))
}

// UpdateGenre overwrites the supplied fields on an existing genre
// PUT /genres/:id
func (gc *GenresController) UpdateGenre(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	genre, err := gc.store.GetGenreByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "genre")
			return
		}
		respondInternalError(c, err, "get genre")
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondBadRequest(c, "invalid JSON body")
		return
	}
	if err := applyGenreFields(genre, fields); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := gc.store.SaveGenre(genre); err != nil {
		respondInternalError(c, err, "update genre")
		return
	}
	c.JSON(http.StatusOK, serializeGenre(*genre))
}

// DeleteGenre removes a genre
// DELETE /genres/:id
func (gc *GenresController) DeleteGenre(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := gc.store.GetGenreByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "genre")
			return
		}
		respondInternalError(c, err, "get genre")
		return
	}

	if err := gc.store.DeleteGenre(id); err != nil {
		if errors.Is(err, genres.ErrReferenced) {
			respondConflict(c, err.Error())
			return
		}
		respondInternalError(c, err, "delete genre")
		return
	}
	c.Status(http.StatusNoContent)
}

func applyGenreFields(genre *entities.Genre, fields map[string]any) error {
	for key, value := range fields {
		switch key {
		case "name":
			name, ok := value.(string)
			if !ok {
				return fmt.Errorf("field name must be a string")
			}
			genre.Name = name
		default:
			return fmt.Errorf("unknown field: %s", key)
		}
	}
	return nil
}
