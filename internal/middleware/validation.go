package middleware

import (
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching the ai_titles schema constraints.
const (
	MaxVideoIDLen  = 128 // ai_titles.video_id VARCHAR(128)
	MaxTitleLen    = 512 // ai_titles.original_title VARCHAR(512)
	MaxSearchLen   = 256
	MaxBulkRecords = 100 // one bulk run caps at 100 candidates
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateVideoID checks that a video ID is well-formed and within DB
// limits. IDs are provider-native (Vimeo numeric, Bunny GUIDs, Wistia
// hashed IDs, synthesized "zone:file" forms), so only shape is checked.
func ValidateVideoID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "videoId is required"
	}
	if len(id) > MaxVideoIDLen {
		return "", "videoId is too long"
	}
	if strings.ContainsAny(id, " \t\n") {
		return "", "videoId contains whitespace"
	}
	return id, ""
}

// ValidateThumbnailURL checks that a thumbnail target is an absolute
// http(s) URL before it is handed to the captioning model.
func ValidateThumbnailURL(url string) (string, string) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", "thumbnailUrl is required"
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", "thumbnailUrl must be an absolute http(s) URL"
	}
	return url, ""
}

// ValidateSearchQuery trims and truncates a text filter to sane limits.
func ValidateSearchQuery(q string) string {
	return truncateOnRune(strings.TrimSpace(q), MaxSearchLen)
}

// TruncateTitle trims a provider title to DB limits.
func TruncateTitle(title string) string {
	return truncateOnRune(strings.TrimSpace(title), MaxTitleLen)
}

// truncateOnRune caps s at limit bytes without splitting a multi-byte
// rune, so truncated input stays valid UTF-8.
func truncateOnRune(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
