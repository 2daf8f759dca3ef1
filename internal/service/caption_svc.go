package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
)

const (
	openAIEndpoint = "https://api.openai.com/v1/chat/completions"
	captionModel   = "gpt-4o"

	// captionFallback is shown when the model returns none of the
	// expected fields. The UI audience is Italian.
	captionFallback = "Titolo non disponibile"

	defaultConfidence = 0.8
)

const captionSystemPrompt = "You are an expert at reading text in video thumbnails. " +
	"Extract any visible text or titles from the image and suggest a descriptive title. " +
	"Focus on any overlaid text, titles, or captions. If there's no readable text, describe " +
	"the main subject matter instead. Keep the response concise and in Italian if the original " +
	"content appears to be in Italian. Always respond with JSON in this format: " +
	`{"title": "extracted or suggested title", "confidence": 0.9}`

// Caption is the outcome of one thumbnail analysis.
type Caption struct {
	Title      string
	Confidence float64
}

// CaptionService calls the OpenAI vision API to derive a title from a
// video thumbnail.
type CaptionService struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewCaptionService(apiKey string) *CaptionService {
	return &CaptionService{
		apiKey:   apiKey,
		endpoint: openAIEndpoint,
		client:   &http.Client{Timeout: 45 * time.Second},
	}
}

// Analyze sends the thumbnail and original title to the model and returns
// the suggested title. userKey, when non-empty, overrides the configured
// API key for this one call. Missing or unstructured model output falls
// back through title, extracted_text and suggestion before landing on the
// literal placeholder.
func (s *CaptionService) Analyze(ctx context.Context, thumbnailURL, originalTitle, userKey string) (*Caption, error) {
	key := s.apiKey
	if userKey != "" {
		key = userKey
	}
	if key == "" {
		return nil, model.ValidationErr("no AI API key configured")
	}

	userText := fmt.Sprintf("Analyze this video thumbnail and extract or suggest a meaningful title. "+
		"The original filename is: %q. Look for any text, titles, or captions in the image. "+
		"Respond with JSON containing the title.", originalTitle)

	payload := map[string]any{
		"model": captionModel,
		"messages": []any{
			map[string]any{"role": "system", "content": captionSystemPrompt},
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]any{"type": "text", "text": userText},
					map[string]any{"type": "image_url", "image_url": map[string]any{"url": thumbnailURL}},
				},
			},
		},
		"max_tokens":      100,
		"response_format": map[string]any{"type": "json_object"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, model.UpstreamErr("openai", err.Error(), 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, model.AuthErr("openai", "AI API key was rejected")
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, model.RateLimitedErr("openai", "AI rate limit exceeded")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, model.UpstreamErr("openai", fmt.Sprintf("captioning failed with status %d", resp.StatusCode), resp.StatusCode)
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, model.UpstreamErr("openai", "captioning returned no choices", 0)
	}

	return parseCaption(completion.Choices[0].Message.Content), nil
}

// parseCaption extracts the title from the model's JSON content,
// surfacing the first present alternative.
func parseCaption(content string) *Caption {
	var fields struct {
		Title         string  `json:"title"`
		ExtractedText string  `json:"extracted_text"`
		Suggestion    string  `json:"suggestion"`
		Confidence    float64 `json:"confidence"`
	}
	// Unstructured output degrades to the fallback title.
	_ = json.Unmarshal([]byte(content), &fields)

	title := fields.Title
	if title == "" {
		title = fields.ExtractedText
	}
	if title == "" {
		title = fields.Suggestion
	}
	if title == "" {
		title = captionFallback
	}

	confidence := fields.Confidence
	if confidence == 0 {
		confidence = defaultConfidence
	}
	return &Caption{Title: title, Confidence: confidence}
}
