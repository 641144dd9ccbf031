package store

import (
	"errors"

	"curiozando/pkg/domain"
)

// ErrNotFound is returned by UpdatePost and DeletePost for unknown IDs.
var ErrNotFound = errors.New("not found")

// Store defines persistence operations for blog posts.
type Store interface {
	// CreatePost persists a new post, assigning its ID and CreatedAt.
	CreatePost(p domain.Post) (domain.Post, error)
	// ListPosts returns all posts, newest first.
	ListPosts() ([]domain.Post, error)
	// ListPostsByCategory filters posts by exact category, newest first.
	ListPostsByCategory(category string) ([]domain.Post, error)
	// ListCategories returns the distinct categories in use.
	ListCategories() ([]string, error)
	GetPost(id string) (domain.Post, bool, error)
	// UpdatePost applies the editable subset (title/deck/content).
	UpdatePost(id string, update domain.PostUpdate) error
	DeletePost(id string) error
}

// SessionStore persists admin session tokens.
type SessionStore interface {
	NewSession(userID string) (string, error)
	GetUserIDByToken(token string) (string, bool, error)
	DeleteSession(token string) error
}
