package repository

import (
	"strings"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Repository groups the PostgreSQL-backed repositories sharing one pool.
type Repository struct {
	Users      *UserRepo
	Posts      *PostRepo
	Collection *CollectionRepo
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Users:      NewUserRepository(db),
		Posts:      NewPostRepository(db),
		Collection: NewCollectionRepository(db),
	}
}

func columnList(cols []string) string {
	return strings.Join(cols, ", ")
}
