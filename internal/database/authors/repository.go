// Package authors provides database operations for author management.
//
// This package implements the AuthorStore interface defined in internal/http/authors.go.
package authors

import (
	"errors"

	"gorm.io/gorm"

	"github.com/openshelf/catalog/internal/entities"
)

// ErrReferenced is returned when deleting an author that still owns books.
var ErrReferenced = errors.New("author is referenced by existing books")

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateAuthor inserts a new author.
func (r *Repository) CreateAuthor(author *entities.Author) error {
	return r.db.Create(author).Error
}

// GetAuthorByID retrieves an author by primary key.
func (r *Repository) GetAuthorByID(id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// GetAllAuthors retrieves every author.
func (r *Repository) GetAllAuthors() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Find(&authors).Error
	return authors, err
}

// GetAuthorByName retrieves the first author with an exact name match.
func (r *Repository) GetAuthorByName(name string) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.Where("name = ?", name).First(&author).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// SaveAuthor persists field changes on an existing author.
func (r *Repository) SaveAuthor(author *entities.Author) error {
	return r.db.Save(author).Error
}

// DeleteAuthor removes an author. Deletion is restricted: an author that
// still owns books cannot be removed and ErrReferenced is returned.
func (r *Repository) DeleteAuthor(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.Book{}).Where("author_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrReferenced
		}
		return tx.Delete(&entities.Author{}, id).Error
	})
}
