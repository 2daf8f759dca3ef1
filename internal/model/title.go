package model

import "time"

// TitleEntry is one row of the ai_titles table: the authoritative,
// cross-session record of an AI-generated title for a video.
// OriginalTitle and ThumbnailURL are kept from the first successful write
// for auditability; AiTitle, Confidence and UpdatedAt refresh on every
// subsequent captioning of the same video.
type TitleEntry struct {
	VideoID       string    `json:"videoId"`
	OriginalTitle string    `json:"originalTitle"`
	AiTitle       string    `json:"aiTitle"`
	ThumbnailURL  string    `json:"thumbnailUrl"`
	Confidence    float64   `json:"confidence"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CaptionRequest is one candidate for AI title generation.
type CaptionRequest struct {
	VideoID       string `json:"videoId"`
	ThumbnailURL  string `json:"thumbnailUrl"`
	OriginalTitle string `json:"originalTitle"`
}

// BulkItem is one successful result of a bulk enrichment run.
type BulkItem struct {
	VideoID string `json:"videoId"`
	AiTitle string `json:"aiTitle"`
	Cached  bool   `json:"cached"`
}

// BulkError is one per-record failure of a bulk enrichment run.
type BulkError struct {
	VideoID string `json:"videoId"`
	Message string `json:"error"`
}

// BulkResult reports a bulk enrichment run, including partial success.
type BulkResult struct {
	Results    []BulkItem  `json:"results"`
	Errors     []BulkError `json:"errors"`
	Total      int         `json:"total"`
	Successful int         `json:"successful"`
	Failed     int         `json:"failed"`
}
