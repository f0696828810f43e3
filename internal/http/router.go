package http

import (
	"github.com/gin-gonic/gin"

	"github.com/openshelf/catalog/internal/database"
)

// RouterConfig carries the dependencies for route registration.
type RouterConfig struct {
	Database    *database.Database
	AuthorStore AuthorStore
	GenreStore  GenreStore
	BookStore   BookStore
	Version     string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	health := NewHealthController(cfg.Database, cfg.Version)
	authorsController := NewAuthorsController(cfg.AuthorStore)
	genresController := NewGenresController(cfg.GenreStore)
	booksController := NewBooksController(cfg.BookStore, cfg.AuthorStore)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Books endpoints
	router.GET("/books", booksController.GetAllBooks)
	router.GET("/books/:id", booksController.GetBook)
	router.POST("/books", booksController.CreateBook)
	router.PUT("/books/:id", booksController.UpdateBook)
	router.DELETE("/books/:id", booksController.DeleteBook)

	// Authors endpoints
	router.GET("/authors", authorsController.GetAllAuthors)
	router.GET("/authors/:id", authorsController.GetAuthor)
	router.POST("/authors", authorsController.CreateAuthor)
	router.PUT("/authors/:id", authorsController.UpdateAuthor)
	router.DELETE("/authors/:id", authorsController.DeleteAuthor)

	// Genres endpoints
	router.GET("/genres", genresController.GetAllGenres)
	router.GET("/genres/:id", genresController.GetGenre)
	router.POST("/genres", genresController.CreateGenre)
	router.PUT("/genres/:id", genresController.UpdateGenre)
	router.DELETE("/genres/:id", genresController.DeleteGenre)

	return router
}
