// Package books provides database operations for book management.
//
// This package implements the BookStore interface defined in internal/http/books.go.
package books

import (
	"time"

	"gorm.io/gorm"

	"github.com/openshelf/catalog/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetBookByID retrieves a book with its author and genres by primary key.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").Preload("Genres").First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAllBooks retrieves every book with its author and genres.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").Preload("Genres").Find(&books).Error
	return books, err
}

// CreateBook inserts a book linked to the named author and genre, creating
// either when no row with that name exists yet. The lookups run as
// conditional inserts against the unique name indexes, and everything
// (author, genre, book, association) commits as one transaction.
func (r *Repository) CreateBook(title, authorName, genreName string, publishedAt time.Time) (*entities.Book, error) {
	if publishedAt.IsZero() {
		publishedAt = time.Now().UTC().Truncate(time.Second)
	}

	var book entities.Book
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var author entities.Author
		if err := tx.Where(entities.Author{Name: authorName}).FirstOrCreate(&author).Error; err != nil {
			return err
		}

		var genre entities.Genre
		if err := tx.Where(entities.Genre{Name: genreName}).FirstOrCreate(&genre).Error; err != nil {
			return err
		}

		book = entities.Book{
			Title:       title,
			AuthorID:    author.ID,
			PublishedAt: publishedAt,
			Author:      author,
			Genres:      []entities.Genre{genre},
		}
		return tx.Omit("Author").Create(&book).Error
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// SaveBook persists field changes on an existing book.
func (r *Repository) SaveBook(book *entities.Book) error {
	return r.db.Omit("Author", "Genres").Save(book).Error
}

// DeleteBook removes a book together with its genre associations.
func (r *Repository) DeleteBook(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&entities.BookGenre{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Book{}, id).Error
	})
}
