package generate

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel delimiters the model is instructed to wrap each field in.
const (
	TitleStart   = "<--TITLE_START-->"
	TitleEnd     = "<--TITLE_END-->"
	DeckStart    = "<--DECK_START-->"
	DeckEnd      = "<--DECK_END-->"
	ContentStart = "<--CONTENT_START-->"
	ContentEnd   = "<--CONTENT_END-->"
)

// ErrDelimiterNotFound indicates a sentinel delimiter is missing or
// misordered in the model response.
var ErrDelimiterNotFound = errors.New("delimiter not found")

// ExtractBetween returns the text strictly between the first occurrence of
// startTag and the first occurrence of endTag after it, with surrounding
// whitespace trimmed. Pure function; no side effects.
func ExtractBetween(text, startTag, endTag string) (string, error) {
	start := strings.Index(text, startTag)
	if start < 0 {
		return "", fmt.Errorf("%w: %s", ErrDelimiterNotFound, startTag)
	}
	rest := text[start+len(startTag):]
	end := strings.Index(rest, endTag)
	if end < 0 {
		return "", fmt.Errorf("%w: %s after %s", ErrDelimiterNotFound, endTag, startTag)
	}
	return strings.TrimSpace(rest[:end]), nil
}

// Article holds the three structured fields recovered from a model response.
type Article struct {
	Title   string
	Deck    string
	Content string
}

// ParseArticle extracts title, deck, and content from a delimited model
// response. Any missing delimiter pair fails the whole parse; no partial
// article is returned.
func ParseArticle(text string) (Article, error) {
	title, err := ExtractBetween(text, TitleStart, TitleEnd)
	if err != nil {
		return Article{}, err
	}
	deck, err := ExtractBetween(text, DeckStart, DeckEnd)
	if err != nil {
		return Article{}, err
	}
	content, err := ExtractBetween(text, ContentStart, ContentEnd)
	if err != nil {
		return Article{}, err
	}
	return Article{Title: title, Deck: deck, Content: content}, nil
}
