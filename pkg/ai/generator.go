package ai

import "context"

// GroundedTextGenerator produces search-grounded text for a prompt.
type GroundedTextGenerator interface {
	GenerateGroundedText(ctx context.Context, prompt string) (GroundedResult, error)
}

// ImageGenerator produces raw image bytes for a descriptive prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// GeminiGenerator wraps GeminiClient with fixed text and image models.
type GeminiGenerator struct {
	client     *GeminiClient
	textModel  string
	imageModel string
}

// NewGeminiGenerator builds Gemini-backed text and image generators.
func NewGeminiGenerator(client *GeminiClient, textModel, imageModel string) *GeminiGenerator {
	return &GeminiGenerator{client: client, textModel: textModel, imageModel: imageModel}
}

// GenerateGroundedText implements GroundedTextGenerator using Gemini.
func (g *GeminiGenerator) GenerateGroundedText(ctx context.Context, prompt string) (GroundedResult, error) {
	return g.client.GenerateGroundedText(ctx, g.textModel, prompt)
}

// GenerateImage implements ImageGenerator using Gemini.
func (g *GeminiGenerator) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	return g.client.GenerateImage(ctx, g.imageModel, prompt)
}
