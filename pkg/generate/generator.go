package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"curiozando/pkg/ai"
	"curiozando/pkg/domain"
	"golang.org/x/sync/errgroup"
)

const untitledSource = "Untitled"

var (
	// ErrEmptyTheme rejects generation requests without a theme.
	ErrEmptyTheme = errors.New("theme required")
	// ErrUnexpectedFormat marks a model response that could not be parsed
	// into title/deck/content.
	ErrUnexpectedFormat = errors.New("ai response was not in the expected format")
)

// Generator orchestrates the full article pipeline: grounded text
// generation, field extraction, in-body image resolution, and the cover
// image.
type Generator struct {
	text   ai.GroundedTextGenerator
	images *ImageResolver
}

// NewGenerator wires a text generator and an image resolver.
func NewGenerator(text ai.GroundedTextGenerator, images *ImageResolver) (*Generator, error) {
	if text == nil {
		return nil, errors.New("text generator required")
	}
	if images == nil {
		return nil, errors.New("image resolver required")
	}
	return &Generator{text: text, images: images}, nil
}

// Generate produces a complete draft for a theme. Text-side failures abort
// the whole generation; image failures degrade to placeholders and never do.
func (g *Generator) Generate(ctx context.Context, theme string) (domain.Draft, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return domain.Draft{}, ErrEmptyTheme
	}

	res, err := g.text.GenerateGroundedText(ctx, ArticlePrompt(theme))
	if err != nil {
		return domain.Draft{}, fmt.Errorf("generate article: %w", err)
	}
	sources := sourcesFromChunks(res.Chunks)

	article, err := ParseArticle(res.Text)
	if err != nil {
		return domain.Draft{}, fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
	}

	content := g.resolveBodyImages(ctx, article.Content)
	cover := g.images.Resolve(ctx, CoverPrompt(article.Title), article.Title)

	return domain.Draft{
		Title:    article.Title,
		Deck:     article.Deck,
		Content:  content,
		ImageURL: cover.URL,
		Sources:  sources,
	}, nil
}

// resolveBodyImages fans out one image request per marker occurrence, all
// issued before any is awaited, then splices results back in the original
// left-to-right order.
func (g *Generator) resolveBodyImages(ctx context.Context, content string) string {
	placeholders := FindPlaceholders(content)
	if len(placeholders) == 0 {
		return content
	}
	urls := make([]string, len(placeholders))
	grp, gctx := errgroup.WithContext(ctx)
	for i, ph := range placeholders {
		i, ph := i, ph
		grp.Go(func() error {
			urls[i] = g.images.Resolve(gctx, ph.Prompt, ph.Prompt).URL
			return nil
		})
	}
	_ = grp.Wait()
	return ReplacePlaceholders(content, urls)
}

// sourcesFromChunks keeps web references with a URI, in API order, and
// backfills missing titles.
func sourcesFromChunks(chunks []ai.GroundingChunk) []domain.Source {
	sources := make([]domain.Source, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = untitledSource
		}
		sources = append(sources, domain.Source{Title: title, URI: chunk.Web.URI})
	}
	return sources
}
