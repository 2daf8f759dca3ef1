package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
)

const vimeoAPIBase = "https://api.vimeo.com"

// VimeoAdapter lists a user's videos, optionally scoped to one folder.
// Folders are exposed as containers.
type VimeoAdapter struct {
	token    string
	folderID string // empty means "all videos"
	baseURL  string
}

// NewVimeo builds a Vimeo adapter. containerURI is an opaque folder URI
// of the form "/folders/12345678", or empty for the whole account.
func NewVimeo(creds Credentials, containerURI string) (*VimeoAdapter, error) {
	if strings.TrimSpace(creds.Token) == "" {
		return nil, model.ValidationErr("Vimeo API token is required")
	}

	folderID := ""
	if containerURI != "" {
		folderID = lastSegment(containerURI)
		if folderID == "" {
			return nil, model.ValidationErr("invalid Vimeo folder URI")
		}
	}

	return &VimeoAdapter{token: creds.Token, folderID: folderID, baseURL: vimeoAPIBase}, nil
}

func (a *VimeoAdapter) Provider() Provider       { return Vimeo }
func (a *VimeoAdapter) Termination() Termination { return TerminateShortPage }
func (a *VimeoAdapter) PageSize() int            { return 100 }

type vimeoVideo struct {
	Name     string  `json:"name"`
	Link     string  `json:"link"`
	URI      string  `json:"uri"`
	Duration float64 `json:"duration"`
	Pictures *struct {
		Sizes []struct {
			Width  int    `json:"width"`
			Height int    `json:"height"`
			Link   string `json:"link"`
		} `json:"sizes"`
	} `json:"pictures"`
	Download []struct {
		Link string `json:"link"`
	} `json:"download"`
}

type vimeoListResponse struct {
	Data []vimeoVideo `json:"data"`
}

func (a *VimeoAdapter) FetchPage(ctx context.Context, cursor Cursor) (*Page, error) {
	path := "/me/videos"
	if a.folderID != "" {
		path = "/me/folders/" + a.folderID + "/videos"
	}
	url := fmt.Sprintf("%s%s?per_page=%d&page=%d", a.baseURL, path, a.PageSize(), cursor.Page)

	var body vimeoListResponse
	if err := a.get(ctx, url, &body); err != nil {
		return nil, err
	}

	page := &Page{Videos: make([]model.Video, 0, len(body.Data))}
	for _, raw := range body.Data {
		page.Videos = append(page.Videos, mapVimeoVideo(raw))
	}
	return page, nil
}

// mapVimeoVideo normalizes one raw Vimeo item. The video ID is the tail
// of the URI ("/videos/123456789"); the thumbnail is the largest size
// Vimeo reports.
func mapVimeoVideo(raw vimeoVideo) model.Video {
	v := model.Video{
		Title:        raw.Name,
		PlaybackLink: raw.Link,
		DownloadLink: model.DownloadUnavailable,
		VideoID:      lastSegment(raw.URI),
	}
	if len(raw.Download) > 0 && raw.Download[0].Link != "" {
		v.DownloadLink = raw.Download[0].Link
	}
	if raw.Pictures != nil && len(raw.Pictures.Sizes) > 0 {
		v.ThumbnailURL = raw.Pictures.Sizes[len(raw.Pictures.Sizes)-1].Link
	}
	if raw.Duration > 0 {
		v.DurationSeconds = model.Duration(raw.Duration)
	}
	return v
}

// ListContainers fetches the account's folders.
func (a *VimeoAdapter) ListContainers(ctx context.Context) ([]model.Container, error) {
	var body struct {
		Data []struct {
			URI         string `json:"uri"`
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"data"`
	}
	if err := a.get(ctx, a.baseURL+"/me/folders?per_page=100", &body); err != nil {
		return nil, err
	}

	containers := make([]model.Container, 0, len(body.Data))
	for _, f := range body.Data {
		containers = append(containers, model.Container{URI: f.URI, Name: f.Name, Description: f.Description})
	}
	return containers, nil
}

func (a *VimeoAdapter) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Accept", "application/vnd.vimeo.*+json;version=3.4")

	resp, err := httpClient.Do(req)
	if err != nil {
		return model.UpstreamErr(string(Vimeo), err.Error(), 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(Vimeo, resp.StatusCode, "Vimeo API request failed")
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// lastSegment returns the final path segment of a URI, or "".
func lastSegment(uri string) string {
	uri = strings.TrimRight(uri, "/")
	if i := strings.LastIndexByte(uri, '/'); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
