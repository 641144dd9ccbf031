package app

import "errors"

var (
	// ErrInvalidCredentials indicates a failed admin login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPostNotFound indicates the post does not exist.
	ErrPostNotFound = errors.New("post not found")
	// ErrEmptyDraft indicates a publish request without title or content.
	ErrEmptyDraft = errors.New("draft requires title and content")
)
