package http

import (
	"time"

	"github.com/samber/lo"

	"github.com/openshelf/catalog/internal/entities"
)

// Wire representations. Books embed their author and genres; the publication
// timestamp is rendered as "YYYY-MM-DD HH:MM:SS" and null when unset.

type authorJSON struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type genreJSON struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type bookJSON struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	Author      authorJSON  `json:"author"`
	Genres      []genreJSON `json:"genres"`
	PublishedAt *string     `json:"published_at"`
}

func serializeAuthor(author entities.Author) authorJSON {
	return authorJSON{ID: author.ID, Name: author.Name}
}

func serializeGenre(genre entities.Genre) genreJSON {
	return genreJSON{ID: genre.ID, Name: genre.Name}
}

func serializeBook(book entities.Book) bookJSON {
	return bookJSON{
		ID:          book.ID,
		Title:       book.Title,
		Author:      serializeAuthor(book.Author),
		Genres:      lo.Map(book.Genres, func(g entities.Genre, _ int) genreJSON { return serializeGenre(g) }),
		PublishedAt: formatTimestamp(book.PublishedAt),
	}
}

func serializeAuthors(authors []entities.Author) []authorJSON {
	return lo.Map(authors, func(a entities.Author, _ int) authorJSON { return serializeAuthor(a) })
}

func serializeGenres(genres []entities.Genre) []genreJSON {
	return lo.Map(genres, func(g entities.Genre, _ int) genreJSON { return serializeGenre(g) })
}

func serializeBooks(books []entities.Book) []bookJSON {
	return lo.Map(books, func(b entities.Book, _ int) bookJSON { return serializeBook(b) })
}

func formatTimestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(entities.TimestampLayout)
	return &s
}
