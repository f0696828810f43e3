package entities

import (
	"time"
)

// TimestampLayout is the wire format for book publication timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

type Author struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Books []Book `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
}

type Genre struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Books []Book `gorm:"many2many:book_genres;" json:"-"`
}

type Book struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:512;not null" json:"title"`
	AuthorID    uint      `gorm:"index;not null" json:"author_id"`
	PublishedAt time.Time `gorm:"not null" json:"published_at"`

	Author Author  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Genres []Genre `gorm:"many2many:book_genres;" json:"genres,omitempty"`
}

// BookGenre is the explicit join model for the book<->genre association.
// It carries its own surrogate key and is registered with SetupJoinTable.
type BookGenre struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	BookID  uint `gorm:"index;not null" json:"book_id"`
	GenreID uint `gorm:"index;not null" json:"genre_id"`
}

func (Author) TableName() string {
	return "authors"
}

func (Genre) TableName() string {
	return "genres"
}

func (Book) TableName() string {
	return "books"
}

func (BookGenre) TableName() string {
	return "book_genres"
}
