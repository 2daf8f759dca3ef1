package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseCaption_FallbackChain(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"title present", `{"title":"Lezione 4","confidence":0.95}`, "Lezione 4"},
		{"extracted_text fallback", `{"extracted_text":"Corso Base"}`, "Corso Base"},
		{"suggestion fallback", `{"suggestion":"Tutorial"}`, "Tutorial"},
		{"nothing usable", `{}`, "Titolo non disponibile"},
		{"garbage content", `not json at all`, "Titolo non disponibile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCaption(tt.content)
			if got.Title != tt.want {
				t.Errorf("title = %q, want %q", got.Title, tt.want)
			}
		})
	}
}

func TestParseCaption_DefaultConfidence(t *testing.T) {
	c := parseCaption(`{"title":"x"}`)
	if c.Confidence != 0.8 {
		t.Errorf("confidence = %v, want default 0.8", c.Confidence)
	}

	c = parseCaption(`{"title":"x","confidence":0.55}`)
	if c.Confidence != 0.55 {
		t.Errorf("confidence = %v, want 0.55", c.Confidence)
	}
}

func TestAnalyze_UserKeyOverride(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"choices":[{"message":{"content":"{\"title\":\"Dal modello\",\"confidence\":0.9}"}}]}`)
	}))
	defer srv.Close()

	svc := NewCaptionService("server-key")
	svc.endpoint = srv.URL

	caption, err := svc.Analyze(context.Background(), "https://thumb/1.jpg", "video1.mp4", "sk-user-key")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if gotAuth != "Bearer sk-user-key" {
		t.Errorf("Authorization = %q, want the user key override", gotAuth)
	}
	if caption.Title != "Dal modello" || caption.Confidence != 0.9 {
		t.Errorf("caption = %+v", caption)
	}
}

func TestAnalyze_NoKeyConfigured(t *testing.T) {
	svc := NewCaptionService("")
	if _, err := svc.Analyze(context.Background(), "https://thumb/1.jpg", "t", ""); err == nil {
		t.Fatal("expected error when no key is available")
	}
}
