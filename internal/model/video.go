package model

// DownloadUnavailable is the explicit sentinel used when a provider does not
// expose a download URL. It is exported verbatim into spreadsheet cells so
// "no download" is never confused with "not yet computed".
const DownloadUnavailable = "Not available"

// Video is the provider-independent representation of one video's
// exportable metadata. Every provider adapter normalizes into this shape.
type Video struct {
	Title           string   `json:"title"`
	PlaybackLink    string   `json:"link"`
	DownloadLink    string   `json:"downloadLink"`
	VideoID         string   `json:"videoId,omitempty"`
	ThumbnailURL    string   `json:"thumbnailUrl,omitempty"`
	DurationSeconds *float64 `json:"durationSeconds,omitempty"`
	AiTitle         string   `json:"aiTitle,omitempty"`
}

// Container is a provider's optional grouping construct: a Vimeo folder,
// Bunny Stream collection, Wistia project or Bunny Storage directory.
type Container struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Duration returns a pointer to d, for building Video literals.
func Duration(d float64) *float64 {
	return &d
}
