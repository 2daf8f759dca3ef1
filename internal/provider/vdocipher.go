package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
)

const vdoCipherAPIBase = "https://dev.vdocipher.com/api"

// VdoCipherAdapter lists an account's videos. VdoCipher serves DRM
// content, so downloads are always the unavailable sentinel and the
// playback link points at the dashboard (a signed OTP player URL would
// require a side-effecting request per video).
type VdoCipherAdapter struct {
	secret  string
	baseURL string
}

func NewVdoCipher(creds Credentials) (*VdoCipherAdapter, error) {
	if strings.TrimSpace(creds.Secret) == "" {
		return nil, model.ValidationErr("VdoCipher API secret is required")
	}
	return &VdoCipherAdapter{secret: creds.Secret, baseURL: vdoCipherAPIBase}, nil
}

func (a *VdoCipherAdapter) Provider() Provider       { return VdoCipher }
func (a *VdoCipherAdapter) Termination() Termination { return TerminateShortPage }
func (a *VdoCipherAdapter) PageSize() int            { return 40 }

type vdoCipherVideo struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Length float64 `json:"length"`
	Poster string  `json:"poster"`
}

func (a *VdoCipherAdapter) FetchPage(ctx context.Context, cursor Cursor) (*Page, error) {
	url := fmt.Sprintf("%s/videos?page=%d&limit=%d", a.baseURL, cursor.Page, a.PageSize())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Apisecret "+a.secret)
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, model.UpstreamErr(string(VdoCipher), err.Error(), 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyStatus(VdoCipher, resp.StatusCode, "VdoCipher API request failed")
	}

	var body struct {
		Rows []vdoCipherVideo `json:"rows"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	page := &Page{Videos: make([]model.Video, 0, len(body.Rows))}
	for _, raw := range body.Rows {
		v := model.Video{
			Title:        raw.Title,
			PlaybackLink: "https://www.vdocipher.com/dashboard/videos/" + raw.ID,
			DownloadLink: model.DownloadUnavailable,
			VideoID:      raw.ID,
			ThumbnailURL: raw.Poster,
		}
		if raw.Length > 0 {
			v.DurationSeconds = model.Duration(raw.Length)
		}
		page.Videos = append(page.Videos, v)
	}
	return page, nil
}
