package app

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"curiozando/pkg/auth"
	"curiozando/pkg/domain"
	"curiozando/pkg/store"
)

// ArticleGenerator produces a complete article draft from a theme.
type ArticleGenerator interface {
	Generate(ctx context.Context, theme string) (domain.Draft, error)
}

// Config holds runtime configuration for the core application.
type Config struct {
	Store             store.Store
	Sessions          store.SessionStore
	Generator         ArticleGenerator
	AdminEmail        string
	AdminPasswordHash string
	DefaultCategory   string
}

// App is the core application service wiring together generation,
// persistence and admin sessions.
type App struct {
	store             store.Store
	sessions          store.SessionStore
	generator         ArticleGenerator
	adminEmail        string
	adminPasswordHash string
	defaultCategory   string
}

// New constructs the application.
func New(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, errors.New("store required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session store required")
	}
	if cfg.Generator == nil {
		return nil, errors.New("generator required")
	}
	if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
		return nil, errors.New("admin credentials required")
	}
	defaultCategory := cfg.DefaultCategory
	if defaultCategory == "" {
		defaultCategory = "Geral"
	}
	return &App{
		store:             cfg.Store,
		sessions:          cfg.Sessions,
		generator:         cfg.Generator,
		adminEmail:        cfg.AdminEmail,
		adminPasswordHash: cfg.AdminPasswordHash,
		defaultCategory:   defaultCategory,
	}, nil
}

// Login validates admin credentials and returns a session token.
func (a *App) Login(email, password string) (string, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(strings.TrimSpace(email))), []byte(strings.ToLower(a.adminEmail))) == 1
	passwordOK := auth.CheckPassword(password, a.adminPasswordHash)
	if !emailOK || !passwordOK {
		return "", ErrInvalidCredentials
	}
	token, err := a.sessions.NewSession(a.adminEmail)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

// Logout invalidates a session token.
func (a *App) Logout(token string) error {
	return a.sessions.DeleteSession(token)
}

// Authenticate resolves a session token to the admin identity.
func (a *App) Authenticate(token string) (string, bool) {
	uid, ok, err := a.sessions.GetUserIDByToken(token)
	if err != nil || !ok {
		return "", false
	}
	return uid, true
}

// GenerateArticle runs the full generation pipeline for a theme. The returned
// draft is not persisted; publishing is a separate explicit step.
func (a *App) GenerateArticle(ctx context.Context, theme string) (domain.Draft, error) {
	return a.generator.Generate(ctx, theme)
}

// PublishPost persists a draft as a new post and returns it together with the
// refreshed post list.
func (a *App) PublishPost(draft domain.Draft, category string) (domain.Post, []domain.Post, error) {
	if strings.TrimSpace(draft.Title) == "" || strings.TrimSpace(draft.Content) == "" {
		return domain.Post{}, nil, ErrEmptyDraft
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = a.defaultCategory
	}
	post, err := a.store.CreatePost(domain.Post{
		Title:    draft.Title,
		Deck:     draft.Deck,
		Content:  draft.Content,
		ImageURL: draft.ImageURL,
		Category: category,
		Sources:  draft.Sources,
	})
	if err != nil {
		return domain.Post{}, nil, fmt.Errorf("publish post: %w", err)
	}
	posts, err := a.store.ListPosts()
	if err != nil {
		return domain.Post{}, nil, fmt.Errorf("list posts: %w", err)
	}
	return post, posts, nil
}

// ListPosts returns all posts, newest first.
func (a *App) ListPosts() ([]domain.Post, error) {
	return a.store.ListPosts()
}

// ListPostsByCategory returns posts in a category, newest first.
func (a *App) ListPostsByCategory(category string) ([]domain.Post, error) {
	return a.store.ListPostsByCategory(category)
}

// ListCategories returns the distinct categories in use.
func (a *App) ListCategories() ([]string, error) {
	return a.store.ListCategories()
}

// GetPost retrieves a single post.
func (a *App) GetPost(id string) (domain.Post, error) {
	post, ok, err := a.store.GetPost(id)
	if err != nil {
		return domain.Post{}, err
	}
	if !ok {
		return domain.Post{}, ErrPostNotFound
	}
	return post, nil
}

// UpdatePost applies the editable fields and returns the updated post.
func (a *App) UpdatePost(id string, update domain.PostUpdate) (domain.Post, error) {
	if err := a.store.UpdatePost(id, update); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Post{}, ErrPostNotFound
		}
		return domain.Post{}, fmt.Errorf("update post: %w", err)
	}
	return a.GetPost(id)
}

// DeletePost removes a post.
func (a *App) DeletePost(id string) error {
	if err := a.store.DeletePost(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}
