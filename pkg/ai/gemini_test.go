package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateGroundedTextParsesChunks(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{
			"candidates": [{
				"content": {"parts": [{"text": "hello "}, {"text": "world"}]},
				"groundingMetadata": {"groundingChunks": [
					{"web": {"uri": "https://a.example", "title": "A"}},
					{},
					{"web": {"uri": "https://b.example"}}
				]}
			}]
		}`))
	}))
	defer srv.Close()

	client, err := NewGeminiClient("test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.WithBaseURL(srv.URL)

	res, err := client.GenerateGroundedText(context.Background(), "gemini-2.5-flash", "tell me things")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Text != "hello world" {
		t.Fatalf("unexpected text: %q", res.Text)
	}
	if len(res.Chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(res.Chunks))
	}
	if res.Chunks[0].Web == nil || res.Chunks[0].Web.URI != "https://a.example" {
		t.Fatalf("unexpected first chunk: %+v", res.Chunks[0])
	}
	if res.Chunks[1].Web != nil {
		t.Fatalf("expected nil web ref on second chunk")
	}
	if _, ok := gotBody["tools"]; !ok {
		t.Fatal("expected search tool in request body")
	}
}

func TestGenerateImageDecodesInlineData(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{"parts": []map[string]any{
					{"text": "here is your image"},
					{"inlineData": map[string]string{
						"mimeType": "image/png",
						"data":     base64.StdEncoding.EncodeToString(png),
					}},
				}},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client, _ := NewGeminiClient("test-key")
	client.WithBaseURL(srv.URL)

	data, err := client.GenerateImage(context.Background(), "gemini-2.5-flash-image", "a cup of coffee")
	if err != nil {
		t.Fatalf("generate image: %v", err)
	}
	if string(data) != string(png) {
		t.Fatalf("unexpected image bytes: %v", data)
	}
}

func TestGenerateImageErrorsWithoutImagePart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "sorry"}]}}]}`))
	}))
	defer srv.Close()

	client, _ := NewGeminiClient("test-key")
	client.WithBaseURL(srv.URL)

	if _, err := client.GenerateImage(context.Background(), "gemini-2.5-flash-image", "x"); err == nil {
		t.Fatal("expected error when response has no image part")
	}
}

func TestDoJSONSurfacesAPIErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	}))
	defer srv.Close()

	client, _ := NewGeminiClient("test-key")
	client.WithBaseURL(srv.URL)

	_, err := client.GenerateGroundedText(context.Background(), "gemini-2.5-flash", "x")
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected API error message, got: %v", err)
	}
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	if _, err := NewGeminiClient("  "); err == nil {
		t.Fatal("expected error for empty api key")
	}
}
