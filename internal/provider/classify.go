package provider

import (
	"fmt"
	"net/http"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
)

// classifyStatus maps a provider HTTP status into the uniform error
// taxonomy. Every adapter funnels its non-2xx responses through here so
// users see the same four failure classes regardless of provider.
func classifyStatus(p Provider, status int, detail string) error {
	if detail == "" {
		detail = fmt.Sprintf("request failed with status %d", status)
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return model.AuthErr(string(p), "Invalid API credentials. Please check your token and scopes.")
	case http.StatusNotFound:
		return model.NotFoundErr(string(p), detail)
	case http.StatusTooManyRequests:
		return model.RateLimitedErr(string(p), "API rate limit exceeded. Please try again later.")
	}

	// VdoCipher signals throttling with 503, Zoom occasionally with 429
	// inside a 400 envelope; both collapse to the rate-limited class.
	if status == http.StatusServiceUnavailable && (p == VdoCipher || p == Zoom) {
		return model.RateLimitedErr(string(p), "Provider is throttling requests. Please try again later.")
	}

	return model.UpstreamErr(string(p), detail, status)
}
