package generate

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/url"

	"curiozando/pkg/ai"
	"github.com/google/uuid"
)

// ImageArchive persists generated image bytes and returns a serving URL.
type ImageArchive interface {
	StoreImage(ctx context.Context, key string, data []byte) (string, error)
}

// Resolution is the outcome of resolving one image prompt. Fallback marks a
// deterministic placeholder URL; callers only ever consume URL, so a
// fallback is never an error to them.
type Resolution struct {
	URL      string
	Fallback bool
}

// ImageResolver turns prompts into image URLs. Generation failures of any
// kind degrade to a stable placeholder so a single bad image never blocks
// the publishing pipeline.
type ImageResolver struct {
	images  ai.ImageGenerator
	archive ImageArchive
}

// NewImageResolver builds a resolver. The archive is optional; without one,
// generated images are returned inline as data URIs.
func NewImageResolver(images ai.ImageGenerator, archive ImageArchive) (*ImageResolver, error) {
	if images == nil {
		return nil, fmt.Errorf("image generator required")
	}
	return &ImageResolver{images: images, archive: archive}, nil
}

// Resolve requests an image for prompt. The seed names the placeholder when
// generation fails; an empty seed defaults to the prompt, so an unchanged
// prompt always maps to the same placeholder URL.
func (r *ImageResolver) Resolve(ctx context.Context, prompt, seed string) Resolution {
	if seed == "" {
		seed = prompt
	}
	data, err := r.images.GenerateImage(ctx, prompt)
	if err != nil {
		slog.Warn("image generation failed, using placeholder", "err", err)
		return Resolution{URL: PlaceholderImageURL(seed), Fallback: true}
	}
	if r.archive != nil {
		key := fmt.Sprintf("images/%s.png", uuid.NewString())
		if stored, err := r.archive.StoreImage(ctx, key, data); err == nil {
			return Resolution{URL: stored}
		} else {
			slog.Warn("image archive failed, serving inline", "err", err)
		}
	}
	return Resolution{URL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)}
}

// PlaceholderImageURL maps a seed to a stable, reproducible stock image.
func PlaceholderImageURL(seed string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/1200/800", url.PathEscape(seed))
}
