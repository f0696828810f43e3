package http

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/openshelf/catalog/internal/entities"
)

// BookStore defines database operations for book management.
type BookStore interface {
	GetBookByID(id uint) (*entities.Book, error)
	GetAllBooks() ([]entities.Book, error)
	CreateBook(title, authorName, genreName string, publishedAt time.Time) (*entities.Book, error)
	SaveBook(book *entities.Book) error
	DeleteBook(id uint) error
}

// AuthorFinder resolves author references on book updates.
type AuthorFinder interface {
	GetAuthorByID(id uint) (*entities.Author, error)
}

type BooksController struct {
	store   BookStore
	authors AuthorFinder
}

func NewBooksController(store BookStore, authors AuthorFinder) *BooksController {
	return &BooksController{store: store, authors: authors}
}

// GetAllBooks returns all books with their authors and genres
// GET /books
func (bc *BooksController) GetAllBooks(c *gin.Context) {
	all, err := bc.store.GetAllBooks()
	if err != nil {
		respondInternalError(c, err, "get all books")
		return
	}
	c.JSON(http.StatusOK, serializeBooks(all))
}

// GetBook returns a single book by ID
// GET /books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, serializeBook(*book))
}

// CreateBook creates a book from a title plus author and genre names.
// Either name resolves to an existing row or creates one inside the same
// transaction as the book itself.
// POST /books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Author      string `json:"author"`
		Genre       string `json:"genre"`
		PublishedAt string `json:"published_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid JSON body")
		return
	}

	if req.Author == "" {
		respondBadRequest(c, "Author name is required")
		return
	}
	if req.Genre == "" {
		respondBadRequest(c, "Genre name is required")
		return
	}

	var publishedAt time.Time
	if req.PublishedAt != "" {
		parsed, err := time.Parse(entities.TimestampLayout, req.PublishedAt)
		if err != nil {
			respondBadRequest(c, "published_at must use format "+entities.TimestampLayout)
			return
		}
		publishedAt = parsed
	}

	book, err := bc.store.CreateBook(req.Title, req.Author, req.Genre, publishedAt)
	if err != nil {
		respondInternalError(c, err, "create book")
		return
	}
	respondCreated(c, serializeBook(*book))
}

// UpdateBook overwrites the supplied fields on an existing book
// PUT /books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondBadRequest(c, "invalid JSON body")
		return
	}
	if err := bc.applyBookFields(book, fields); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := bc.store.SaveBook(book); err != nil {
		respondInternalError(c, err, "update book")
		return
	}

	// Reload so a changed author_id is reflected in the embedded author.
	updated, err := bc.store.GetBookByID(id)
	if err != nil {
		respondInternalError(c, err, "reload book")
		return
	}
	c.JSON(http.StatusOK, serializeBook(*updated))
}

// DeleteBook removes a book and its genre associations
// DELETE /books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := bc.store.GetBookByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	if err := bc.store.DeleteBook(id); err != nil {
		respondInternalError(c, err, "delete book")
		return
	}
	c.Status(http.StatusNoContent)
}

// applyBookFields overwrites recognized attributes from an update payload.
// Unknown keys, mistyped values and dangling author references are rejected.
func (bc *BooksController) applyBookFields(book *entities.Book, fields map[string]any) error {
	for key, value := range fields {
		switch key {
		case "title":
			title, ok := value.(string)
			if !ok {
				return fmt.Errorf("field title must be a string")
			}
			book.Title = title
		case "author_id":
			n, ok := value.(float64)
			if !ok || n != math.Trunc(n) || n < 1 {
				return fmt.Errorf("field author_id must be a positive integer")
			}
			authorID := uint(n)
			if _, err := bc.authors.GetAuthorByID(authorID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("author %d does not exist", authorID)
				}
				return err
			}
			book.AuthorID = authorID
		case "published_at":
			raw, ok := value.(string)
			if !ok {
				return fmt.Errorf("field published_at must be a string")
			}
			parsed, err := time.Parse(entities.TimestampLayout, raw)
			if err != nil {
				return fmt.Errorf("published_at must use format %s", entities.TimestampLayout)
			}
			book.PublishedAt = parsed
		default:
			return fmt.Errorf("unknown field: %s", key)
		}
	}
	return nil
}
