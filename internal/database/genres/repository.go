// Package genres provides database operations for genre management.
//
// This package implements the GenreStore interface defined in internal/http/genres.go.
package genres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/openshelf/catalog/internal/entities"
)

// ErrReferenced is returned when deleting a genre that is still attached to books.
var ErrReferenced = errors.New("genre is referenced by existing books")

// Repository handles all genre database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new genres repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateGenre inserts a new genre.
func (r *Repository) CreateGenre(genre *entities.Genre) error {
	return r.db.Create(genre).Error
}

// GetGenreByID retrieves a genre by primary key.
func (r *Repository) GetGenreByID(id uint) (*entities.Genre, error) {
	var genre entities.Genre
	if err := r.db.First(&genre, id).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

// GetAllGenres retrieves every genre.
func (r *Repository) GetAllGenres() ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.Find(&genres).Error
	return genres, err
}

// GetGenreByName retrieves the first genre with an exact name match.
func (r *Repository) GetGenreByName(name string) (*entities.Genre, error) {
	var genre entities.Genre
	if err := r.db.Where("name = ?", name).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

// SaveGenre persists field changes on an existing genre.
func (r *Repository) SaveGenre(genre *entities.Genre) error {
	return r.db.Save(genre).Error
}

// DeleteGenre removes a genre. Deletion is restricted: a genre that is
// still attached to books cannot be removed and ErrReferenced is returned.
func (r *Repository) DeleteGenre(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.BookGenre{}).Where("genre_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrReferenced
		}
		return tx.Delete(&entities.Genre{}, id).Error
	})
}
