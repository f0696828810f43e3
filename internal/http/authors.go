package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/openshelf/catalog/internal/database/authors"
	"github.com/openshelf/catalog/internal/entities"
)

// AuthorStore defines database operations for author management.
type AuthorStore interface {
	CreateAuthor(author *entities.Author) error
	GetAuthorByID(id uint) (*entities.Author, error)
	GetAllAuthors() ([]entities.Author, error)
	SaveAuthor(author *entities.Author) error
	DeleteAuthor(id uint) error
}

type AuthorsController struct {
	store AuthorStore
}

func NewAuthorsController(store AuthorStore) *AuthorsController {
	return &AuthorsController{store: store}
}

// GetAllAuthors returns all authors
// GET /authors
func (ac *AuthorsController) GetAllAuthors(c *gin.Context) {
	all, err := ac.store.GetAllAuthors()
	if err != nil {
		respondInternalError(c, err, "get all authors")
		return
	}
	c.JSON(http.StatusOK, serializeAuthors(all))
}

// GetAuthor returns a single author by ID
// GET /authors/:id
func (ac *AuthorsController) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.GetAuthorByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "author")
			return
		}
		respondInternalError(c, err, "get author")
		return
	}
	c.JSON(http.StatusOK, serializeAuthor(*author))
}

// CreateAuthor creates a new author from the request body
// POST /authors
func (ac *AuthorsController) CreateAuthor(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid JSON body")
		return
	}

	author := &entities.Author{Name: req.Name}
	if err := ac.store.CreateAuthor(author); err != nil {
		respondInternalError(c, err, "create author")
		return
	}
	respondCreated(c, serializeAuthor(*author))
}

// UpdateAuthor overwrites the supplied fields on an existing author
// PUT /authors/:id
func (ac *AuthorsController) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.GetAuthorByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "author")
			return
		}
		respondInternalError(c, err, "get author")
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondBadRequest(c, "invalid JSON body")
		return
	}
	if err := applyAuthorFields(author, fields); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := ac.store.SaveAuthor(author); err != nil {
		respondInternalError(c, err, "update author")
		return
	}
	c.JSON(http.StatusOK, serializeAuthor(*author))
}

// DeleteAuthor removes an author
// DELETE /authors/:id
func (ac *AuthorsController) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := ac.store.GetAuthorByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "author")
			return
		}
		respondInternalError(c, err, "get author")
		return
	}

	if err := ac.store.DeleteAuthor(id); err != nil {
		if errors.Is(err, authors.ErrReferenced) {
			respondConflict(c, err.Error())
			return
		}
		respondInternalError(c, err, "delete author")
		return
	}
	c.Status(http.StatusNoContent)
}

// applyAuthorFields overwrites recognized attributes from an update payload.
// Unknown keys and mistyped values are rejected.
func applyAuthorFields(author *entities.Author, fields map[string]any) error {
	for key, value := range fields {
		switch key {
		case "name":
			name, ok := value.(string)
			if !ok {
				return fmt.Errorf("field name must be a string")
			}
			author.Name = name
		default:
			return fmt.Errorf("unknown field: %s", key)
		}
	}
	return nil
}
