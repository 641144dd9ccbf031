package generate

import (
	"regexp"
	"strings"
)

// placeholderPattern matches in-body image markers of the exact form
// [!--GENERATE_IMAGE(prompt text)--!]. The prompt is everything up to the
// first closing sequence.
var placeholderPattern = regexp.MustCompile(`(?s)\[!--GENERATE_IMAGE\((.*?)\)--!\]`)

const altTextMaxLen = 150

// Placeholder is one image marker found in generated markdown.
type Placeholder struct {
	Raw    string
	Prompt string
}

// FindPlaceholders returns all non-overlapping image markers in content,
// left to right. Duplicate prompts are kept with their multiplicity.
func FindPlaceholders(content string) []Placeholder {
	matches := placeholderPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]Placeholder, 0, len(matches))
	for _, m := range matches {
		out = append(out, Placeholder{Raw: m[0], Prompt: m[1]})
	}
	return out
}

// ReplacePlaceholders substitutes the i-th marker occurrence with a markdown
// image reference pointing at urls[i], preserving all surrounding text and
// ordering. An empty URL removes the marker instead of inserting a broken
// reference. Extra URLs are ignored; missing ones remove their markers.
func ReplacePlaceholders(content string, urls []string) string {
	i := 0
	return placeholderPattern.ReplaceAllStringFunc(content, func(raw string) string {
		url := ""
		if i < len(urls) {
			url = urls[i]
		}
		i++
		if url == "" {
			return ""
		}
		prompt := placeholderPattern.FindStringSubmatch(raw)[1]
		return "\n![" + altText(prompt) + "](" + url + ")\n"
	})
}

// altText renders a prompt safe for a markdown image alt: truncated and with
// double quotes flattened to single quotes.
func altText(prompt string) string {
	runes := []rune(prompt)
	if len(runes) > altTextMaxLen {
		prompt = string(runes[:altTextMaxLen])
	}
	return strings.ReplaceAll(prompt, `"`, "'")
}
