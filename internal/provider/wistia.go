package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
)

const wistiaAPIBase = "https://api.wistia.com/v1"

// WistiaAdapter lists a Wistia account's medias, optionally scoped to one
// project. Projects are exposed as containers.
type WistiaAdapter struct {
	token     string
	projectID string
	baseURL   string
}

func NewWistia(creds Credentials, containerURI string) (*WistiaAdapter, error) {
	if strings.TrimSpace(creds.Token) == "" {
		return nil, model.ValidationErr("Wistia API token is required")
	}
	return &WistiaAdapter{
		token:     creds.Token,
		projectID: strings.TrimSpace(containerURI),
		baseURL:   wistiaAPIBase,
	}, nil
}

func (a *WistiaAdapter) Provider() Provider       { return Wistia }
func (a *WistiaAdapter) Termination() Termination { return TerminateShortPage }
func (a *WistiaAdapter) PageSize() int            { return 100 }

type wistiaMedia struct {
	HashedID  string  `json:"hashed_id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Duration  float64 `json:"duration"`
	Thumbnail *struct {
		URL string `json:"url"`
	} `json:"thumbnail"`
	Assets []struct {
		URL  string `json:"url"`
		Type string `json:"type"`
	} `json:"assets"`
}

func (a *WistiaAdapter) FetchPage(ctx context.Context, cursor Cursor) (*Page, error) {
	url := fmt.Sprintf("%s/medias.json?per_page=%d&page=%d&type=Video", a.baseURL, a.PageSize(), cursor.Page)
	if a.projectID != "" {
		url += "&project_id=" + a.projectID
	}

	var medias []wistiaMedia
	if err := a.get(ctx, url, &medias); err != nil {
		return nil, err
	}

	page := &Page{Videos: make([]model.Video, 0, len(medias))}
	for _, raw := range medias {
		page.Videos = append(page.Videos, mapWistiaMedia(raw))
	}
	return page, nil
}

// mapWistiaMedia normalizes one media. The download is the original
// asset when Wistia exposes one.
func mapWistiaMedia(raw wistiaMedia) model.Video {
	v := model.Video{
		Title:        raw.Name,
		PlaybackLink: "https://home.wistia.com/medias/" + raw.HashedID,
		DownloadLink: model.DownloadUnavailable,
		VideoID:      raw.HashedID,
	}
	if raw.Duration > 0 {
		v.DurationSeconds = model.Duration(raw.Duration)
	}
	if raw.Thumbnail != nil {
		v.ThumbnailURL = raw.Thumbnail.URL
	}
	for _, asset := range raw.Assets {
		if asset.Type == "OriginalFile" && asset.URL != "" {
			v.DownloadLink = asset.URL
			break
		}
	}
	return v
}

// ListContainers fetches the account's projects.
func (a *WistiaAdapter) ListContainers(ctx context.Context) ([]model.Container, error) {
	var projects []struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		MediaCount  int    `json:"mediaCount"`
	}
	if err := a.get(ctx, a.baseURL+"/projects.json?per_page=100", &projects); err != nil {
		return nil, err
	}

	containers := make([]model.Container, 0, len(projects))
	for _, p := range projects {
		containers = append(containers, model.Container{
			URI:         fmt.Sprintf("%d", p.ID),
			Name:        p.Name,
			Description: p.Description,
		})
	}
	return containers, nil
}

func (a *WistiaAdapter) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return model.UpstreamErr(string(Wistia), err.Error(), 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(Wistia, resp.StatusCode, "Wistia API request failed")
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
