package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openshelf/catalog/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase connects to PostgreSQL and materializes the catalog schema.
func NewDatabase(dsn string) (*Database, error) {
	return New(postgres.Open(dsn))
}

// New opens the database over the given dialector. Tests use this with an
// sqlite dialector; production goes through NewDatabase.
func New(dialector gorm.Dialector) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// The join table carries its own surrogate key, so it must be
	// registered before migration.
	if err := db.SetupJoinTable(&entities.Book{}, "Genres", &entities.BookGenre{}); err != nil {
		return nil, fmt.Errorf("failed to set up book_genres join table: %w", err)
	}
	if err := db.SetupJoinTable(&entities.Genre{}, "Books", &entities.BookGenre{}); err != nil {
		return nil, fmt.Errorf("failed to set up book_genres join table: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Genre{},
		&entities.Book{},
		&entities.BookGenre{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database schema is up to date")

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
