package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
)

const bunnyStreamBase = "https://video.bunnycdn.com"

// BunnyStreamAdapter lists videos in a Bunny.net Stream library.
// Collections are exposed as containers.
type BunnyStreamAdapter struct {
	accessKey    string
	libraryID    string
	collectionID string
	cdnHost      string // vz-xxxx.b-cdn.net, used to derive thumbnails and MP4 fallbacks
	baseURL      string
}

func NewBunnyStream(creds Credentials, containerURI string) (*BunnyStreamAdapter, error) {
	if strings.TrimSpace(creds.Key) == "" {
		return nil, model.ValidationErr("Bunny Stream API key is required")
	}
	if strings.TrimSpace(creds.LibraryID) == "" {
		return nil, model.ValidationErr("Bunny Stream library ID is required")
	}

	return &BunnyStreamAdapter{
		accessKey:    creds.Key,
		libraryID:    creds.LibraryID,
		collectionID: strings.TrimSpace(containerURI),
		cdnHost:      strings.TrimSuffix(creds.Host, "/"),
		baseURL:      bunnyStreamBase,
	}, nil
}

func (a *BunnyStreamAdapter) Provider() Provider       { return BunnyStream }
func (a *BunnyStreamAdapter) Termination() Termination { return TerminateShortPage }
func (a *BunnyStreamAdapter) PageSize() int            { return 100 }

type bunnyStreamVideo struct {
	Guid              string  `json:"guid"`
	Title             string  `json:"title"`
	Length            float64 `json:"length"`
	ThumbnailFileName string  `json:"thumbnailFileName"`
}

func (a *BunnyStreamAdapter) FetchPage(ctx context.Context, cursor Cursor) (*Page, error) {
	url := fmt.Sprintf("%s/library/%s/videos?page=%d&itemsPerPage=%d&orderBy=date",
		a.baseURL, a.libraryID, cursor.Page, a.PageSize())
	if a.collectionID != "" {
		url += "&collection=" + a.collectionID
	}

	var body struct {
		Items []bunnyStreamVideo `json:"items"`
	}
	if err := a.get(ctx, url, &body); err != nil {
		return nil, err
	}

	page := &Page{Videos: make([]model.Video, 0, len(body.Items))}
	for _, raw := range body.Items {
		page.Videos = append(page.Videos, a.mapVideo(raw))
	}
	return page, nil
}

// mapVideo normalizes one Stream item. The listing carries no direct
// thumbnail or file URLs; both are deterministic CDN paths derived from
// the video GUID and the library's CDN hostname.
func (a *BunnyStreamAdapter) mapVideo(raw bunnyStreamVideo) model.Video {
	v := model.Video{
		Title:        raw.Title,
		PlaybackLink: fmt.Sprintf("https://iframe.mediadelivery.net/play/%s/%s", a.libraryID, raw.Guid),
		DownloadLink: model.DownloadUnavailable,
		VideoID:      raw.Guid,
	}
	if raw.Length > 0 {
		v.DurationSeconds = model.Duration(raw.Length)
	}
	if a.cdnHost != "" {
		if raw.ThumbnailFileName != "" {
			v.ThumbnailURL = fmt.Sprintf("https://%s/%s/%s", a.cdnHost, raw.Guid, raw.ThumbnailFileName)
		}
		v.DownloadLink = fmt.Sprintf("https://%s/%s/play_720p.mp4", a.cdnHost, raw.Guid)
	}
	return v
}

// ListContainers fetches the library's collections.
func (a *BunnyStreamAdapter) ListContainers(ctx context.Context) ([]model.Container, error) {
	url := fmt.Sprintf("%s/library/%s/collections?page=1&itemsPerPage=100", a.baseURL, a.libraryID)

	var body struct {
		Items []struct {
			Guid       string `json:"guid"`
			Name       string `json:"name"`
			VideoCount int    `json:"videoCount"`
		} `json:"items"`
	}
	if err := a.get(ctx, url, &body); err != nil {
		return nil, err
	}

	containers := make([]model.Container, 0, len(body.Items))
	for _, c := range body.Items {
		containers = append(containers, model.Container{
			URI:         c.Guid,
			Name:        c.Name,
			Description: fmt.Sprintf("%d videos", c.VideoCount),
		})
	}
	return containers, nil
}

func (a *BunnyStreamAdapter) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("AccessKey", a.accessKey)
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return model.UpstreamErr(string(BunnyStream), err.Error(), 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(BunnyStream, resp.StatusCode, "Bunny Stream request failed")
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
