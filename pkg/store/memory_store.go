package store

import (
	"sort"
	"sync"
	"time"

	"curiozando/pkg/domain"
	"github.com/google/uuid"
)

// MemoryStore keeps posts in-process. It backs tests and local development
// without a database.
type MemoryStore struct {
	mu    sync.RWMutex
	posts map[string]domain.Post
	order []string // insertion order, oldest first
	sess  map[string]string
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		posts: make(map[string]domain.Post),
		sess:  make(map[string]string),
	}
}

// CreatePost stores a new post, assigning ID and timestamps.
func (m *MemoryStore) CreatePost(p domain.Post) (domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.posts[p.ID] = p
	m.order = append(m.order, p.ID)
	return p, nil
}

// ListPosts returns all posts, newest first.
func (m *MemoryStore) ListPosts() ([]domain.Post, error) {
	return m.list(""), nil
}

// ListPostsByCategory filters posts by category, newest first.
func (m *MemoryStore) ListPostsByCategory(category string) ([]domain.Post, error) {
	return m.list(category), nil
}

func (m *MemoryStore) list(category string) []domain.Post {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Post, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		p, ok := m.posts[m.order[i]]
		if !ok {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		res = append(res, p)
	}
	return res
}

// ListCategories returns the distinct non-empty categories, sorted.
func (m *MemoryStore) ListCategories() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	var res []string
	for _, p := range m.posts {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		res = append(res, p.Category)
	}
	sort.Strings(res)
	return res, nil
}

// GetPost retrieves a post by ID.
func (m *MemoryStore) GetPost(id string) (domain.Post, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.posts[id]
	return p, ok, nil
}

// UpdatePost applies the editable fields to an existing post.
func (m *MemoryStore) UpdatePost(id string, update domain.PostUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return ErrNotFound
	}
	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.Deck != nil {
		p.Deck = *update.Deck
	}
	if update.Content != nil {
		p.Content = *update.Content
	}
	p.UpdatedAt = time.Now().UTC()
	m.posts[id] = p
	return nil
}

// DeletePost removes a post.
func (m *MemoryStore) DeletePost(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return ErrNotFound
	}
	delete(m.posts, id)
	filtered := m.order[:0]
	for _, item := range m.order {
		if item != id {
			filtered = append(filtered, item)
		}
	}
	m.order = filtered
	return nil
}

// NewSession creates a session token for a user.
func (m *MemoryStore) NewSession(userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token := uuid.NewString()
	m.sess[token] = userID
	return token, nil
}

// GetUserIDByToken resolves a session token.
func (m *MemoryStore) GetUserIDByToken(token string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	uid, ok := m.sess[token]
	return uid, ok, nil
}

// DeleteSession removes a session token.
func (m *MemoryStore) DeleteSession(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sess, token)
	return nil
}
