package app

import (
	"context"
	"errors"
	"testing"

	"curiozando/pkg/auth"
	"curiozando/pkg/domain"
	"curiozando/pkg/store"
)

type fakeGenerator struct {
	draft domain.Draft
	err   error
	theme string
}

func (f *fakeGenerator) Generate(_ context.Context, theme string) (domain.Draft, error) {
	f.theme = theme
	return f.draft, f.err
}

func newTestApp(t *testing.T, gen ArticleGenerator) *App {
	t.Helper()
	hash, err := auth.HashPassword("senha-secreta")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if gen == nil {
		gen = &fakeGenerator{}
	}
	mem := store.NewMemoryStore()
	a, err := New(Config{
		Store:             mem,
		Sessions:          mem,
		Generator:         gen,
		AdminEmail:        "admin@curiozando.com",
		AdminPasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

func TestLoginAndLogout(t *testing.T) {
	a := newTestApp(t, nil)

	token, err := a.Login("admin@curiozando.com", "senha-secreta")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	uid, ok := a.Authenticate(token)
	if !ok || uid != "admin@curiozando.com" {
		t.Fatalf("authenticate: ok=%v uid=%q", ok, uid)
	}

	if err := a.Logout(token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := a.Authenticate(token); ok {
		t.Fatal("expected token to be invalid after logout")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := newTestApp(t, nil)

	if _, err := a.Login("admin@curiozando.com", "senha-errada"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := a.Login("intruso@curiozando.com", "senha-secreta"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginEmailCaseInsensitive(t *testing.T) {
	a := newTestApp(t, nil)
	if _, err := a.Login("  Admin@Curiozando.COM ", "senha-secreta"); err != nil {
		t.Fatalf("expected case-insensitive email match, got %v", err)
	}
}

func TestGenerateArticleDelegates(t *testing.T) {
	gen := &fakeGenerator{draft: domain.Draft{Title: "Título", Content: "Corpo"}}
	a := newTestApp(t, gen)

	draft, err := a.GenerateArticle(context.Background(), "buracos negros")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if gen.theme != "buracos negros" {
		t.Fatalf("theme not forwarded: %q", gen.theme)
	}
	if draft.Title != "Título" {
		t.Fatalf("unexpected draft %+v", draft)
	}
}

func TestPublishPostReturnsRefreshedList(t *testing.T) {
	a := newTestApp(t, nil)

	older, _, err := a.PublishPost(domain.Draft{Title: "Antigo", Content: "Corpo"}, "Ciência")
	if err != nil {
		t.Fatalf("publish older: %v", err)
	}
	post, posts, err := a.PublishPost(domain.Draft{Title: "Novo", Content: "Corpo"}, "")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if post.ID == "" || post.CreatedAt.IsZero() {
		t.Fatalf("expected assigned identity, got %+v", post)
	}
	if post.Category != "Geral" {
		t.Fatalf("expected default category, got %q", post.Category)
	}
	if len(posts) != 2 || posts[0].ID != post.ID || posts[1].ID != older.ID {
		t.Fatalf("expected refreshed newest-first list, got %+v", posts)
	}
}

func TestPublishPostRejectsEmptyDraft(t *testing.T) {
	a := newTestApp(t, nil)

	if _, _, err := a.PublishPost(domain.Draft{Title: " ", Content: "Corpo"}, ""); !errors.Is(err, ErrEmptyDraft) {
		t.Fatalf("expected ErrEmptyDraft for blank title, got %v", err)
	}
	if _, _, err := a.PublishPost(domain.Draft{Title: "Título", Content: ""}, ""); !errors.Is(err, ErrEmptyDraft) {
		t.Fatalf("expected ErrEmptyDraft for empty content, got %v", err)
	}
}

func TestUpdateAndDeleteUnknownPost(t *testing.T) {
	a := newTestApp(t, nil)

	title := "Novo título"
	if _, err := a.UpdatePost("missing", domain.PostUpdate{Title: &title}); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if err := a.DeletePost("missing"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestUpdatePostReturnsUpdated(t *testing.T) {
	a := newTestApp(t, nil)
	post, _, err := a.PublishPost(domain.Draft{Title: "Original", Content: "Corpo"}, "")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	title := "Editado"
	updated, err := a.UpdatePost(post.ID, domain.PostUpdate{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Editado" || updated.ID != post.ID {
		t.Fatalf("unexpected updated post %+v", updated)
	}
}
