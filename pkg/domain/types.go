package domain

import "time"

// Post is a published blog article.
// ID and CreatedAt are assigned by the store and never change afterwards;
// only Title, Deck, and Content are editable once published.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Deck      string    `json:"deck"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl"`
	Category  string    `json:"category"`
	Sources   []Source  `json:"sources,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Draft is a fully generated article awaiting admin approval.
// It lives only in memory: a new generation, a successful publish, or
// abandoning the admin session discards it.
type Draft struct {
	Title    string   `json:"title"`
	Deck     string   `json:"deck"`
	Content  string   `json:"content"`
	ImageURL string   `json:"imageUrl"`
	Sources  []Source `json:"sources,omitempty"`
}

// Source is a research citation recovered from search grounding metadata.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// PostUpdate carries the editable subset of a post. Nil fields are left
// untouched.
type PostUpdate struct {
	Title   *string `json:"title,omitempty"`
	Deck    *string `json:"deck,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Empty reports whether the draft carries no generated content at all.
func (d Draft) Empty() bool {
	return d.Title == "" && d.Deck == "" && d.Content == ""
}
