package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
)

const (
	zoomAPIBase  = "https://api.zoom.us/v2"
	zoomAuthBase = "https://zoom.us"

	// zoomMaxUsers bounds the per-user fallback strategy. A Server-to-Server
	// app without account-level recording scopes still usually grants
	// user-level ones; scanning the first few active users covers the
	// typical single-owner account.
	zoomMaxUsers = 5
)

type zoomStrategy int

const (
	zoomStrategyUnknown zoomStrategy = iota
	zoomStrategyAccount
	zoomStrategyUsers
)

// ZoomAdapter lists cloud recordings. Authentication is a two-step
// resolution: exchange the client key/secret (plus optional account ID)
// for a bearer token via the account_credentials grant, then list
// recordings account-wide, falling back to per-user listings when the
// granted scopes do not cover the account endpoint.
type ZoomAdapter struct {
	clientID     string
	clientSecret string
	accountID    string
	from, to     time.Time
	strategy     zoomStrategy
	token        string
	apiBase      string
	authBase     string
}

func NewZoom(creds Credentials) (*ZoomAdapter, error) {
	if strings.TrimSpace(creds.Key) == "" || strings.TrimSpace(creds.Secret) == "" {
		return nil, model.ValidationErr("Zoom client ID and client secret are required")
	}

	accountID := strings.TrimSpace(creds.AccountID)
	if accountID == "" {
		accountID = "me"
	}

	return &ZoomAdapter{
		clientID:     creds.Key,
		clientSecret: creds.Secret,
		accountID:    accountID,
		apiBase:      zoomAPIBase,
		authBase:     zoomAuthBase,
	}, nil
}

func (a *ZoomAdapter) Provider() Provider       { return Zoom }
func (a *ZoomAdapter) Termination() Termination { return TerminateCursor }
func (a *ZoomAdapter) PageSize() int            { return 100 }

// SetDateWindow bounds the recordings listing. Zoom is the one provider
// here whose API accepts a creation-time constraint directly.
func (a *ZoomAdapter) SetDateWindow(from, to time.Time) {
	a.from, a.to = from, to
}

type zoomRecordingFile struct {
	ID             string `json:"id"`
	FileType       string `json:"file_type"`
	PlayURL        string `json:"play_url"`
	DownloadURL    string `json:"download_url"`
	RecordingStart string `json:"recording_start"`
	RecordingEnd   string `json:"recording_end"`
}

type zoomMeeting struct {
	Topic          string              `json:"topic"`
	Duration       float64             `json:"duration"` // minutes
	RecordingFiles []zoomRecordingFile `json:"recording_files"`
}

type zoomRecordingsResponse struct {
	Meetings      []zoomMeeting `json:"meetings"`
	NextPageToken string        `json:"next_page_token"`
}

func (a *ZoomAdapter) FetchPage(ctx context.Context, cursor Cursor) (*Page, error) {
	if a.token == "" {
		if err := a.exchangeToken(ctx); err != nil {
			return nil, err
		}
	}

	switch a.strategy {
	case zoomStrategyAccount:
		return a.fetchAccountPage(ctx, cursor.Token)
	case zoomStrategyUsers:
		// The user fallback exhausts everything in its first call.
		return &Page{}, nil
	}

	// Strategy undecided: try the account endpoint first, then the
	// per-user fallback. Both failing surfaces the last error so the user
	// can fix the app's scope configuration.
	page, accountErr := a.fetchAccountPage(ctx, cursor.Token)
	if accountErr == nil {
		a.strategy = zoomStrategyAccount
		return page, nil
	}
	if model.KindOf(accountErr) == model.KindRateLimited {
		return nil, accountErr
	}

	page, userErr := a.fetchAllUserRecordings(ctx)
	if userErr != nil {
		return nil, model.AuthErr(string(Zoom), fmt.Sprintf(
			"Both Zoom listing strategies failed. Account-level: %v. User-level: %v. "+
				"Check that your Server-to-Server OAuth app has cloud_recording:read:list_account_recordings:admin "+
				"or cloud_recording:read:list_user_recordings:admin scope.", accountErr, userErr))
	}
	a.strategy = zoomStrategyUsers
	return page, nil
}

// fetchAccountPage lists one page of account-wide recordings.
func (a *ZoomAdapter) fetchAccountPage(ctx context.Context, nextToken string) (*Page, error) {
	q := url.Values{}
	q.Set("page_size", fmt.Sprintf("%d", a.PageSize()))
	if nextToken != "" {
		q.Set("next_page_token", nextToken)
	}
	a.applyDateWindow(q)

	endpoint := fmt.Sprintf("%s/accounts/%s/recordings?%s", a.apiBase, url.PathEscape(a.accountID), q.Encode())

	var body zoomRecordingsResponse
	if err := a.get(ctx, endpoint, &body); err != nil {
		return nil, err
	}

	page := &Page{NextToken: body.NextPageToken}
	for _, m := range body.Meetings {
		page.Videos = append(page.Videos, mapZoomMeeting(m)...)
	}
	return page, nil
}

// fetchAllUserRecordings runs the per-user fallback: list active users,
// then drain recordings for up to the first zoomMaxUsers of them. The
// result is returned as one page with no next token.
func (a *ZoomAdapter) fetchAllUserRecordings(ctx context.Context) (*Page, error) {
	var users struct {
		Users []struct {
			ID string `json:"id"`
		} `json:"users"`
	}
	endpoint := fmt.Sprintf("%s/users?status=active&page_size=%d", a.apiBase, zoomMaxUsers)
	if err := a.get(ctx, endpoint, &users); err != nil {
		return nil, err
	}
	if len(users.Users) == 0 {
		return nil, model.UpstreamErr(string(Zoom), "no active users visible to this app", 0)
	}

	page := &Page{}
	for i, u := range users.Users {
		if i >= zoomMaxUsers {
			break
		}
		token := ""
		for {
			q := url.Values{}
			q.Set("page_size", fmt.Sprintf("%d", a.PageSize()))
			if token != "" {
				q.Set("next_page_token", token)
			}
			a.applyDateWindow(q)

			var body zoomRecordingsResponse
			userEndpoint := fmt.Sprintf("%s/users/%s/recordings?%s", a.apiBase, url.PathEscape(u.ID), q.Encode())
			if err := a.get(ctx, userEndpoint, &body); err != nil {
				return nil, err
			}
			for _, m := range body.Meetings {
				page.Videos = append(page.Videos, mapZoomMeeting(m)...)
			}
			if body.NextPageToken == "" {
				break
			}
			token = body.NextPageToken
		}
	}
	return page, nil
}

func (a *ZoomAdapter) applyDateWindow(q url.Values) {
	if !a.from.IsZero() {
		q.Set("from", a.from.Format("2006-01-02"))
	}
	if !a.to.IsZero() {
		q.Set("to", a.to.Format("2006-01-02"))
	}
}

// mapZoomMeeting flattens a meeting's MP4 recording files into canonical
// records. Audio-only and transcript files are skipped.
func mapZoomMeeting(m zoomMeeting) []model.Video {
	var out []model.Video
	for _, f := range m.RecordingFiles {
		if !strings.EqualFold(f.FileType, "MP4") {
			continue
		}
		v := model.Video{
			Title:        m.Topic,
			PlaybackLink: f.PlayURL,
			DownloadLink: model.DownloadUnavailable,
			VideoID:      f.ID,
		}
		if f.DownloadURL != "" {
			v.DownloadLink = f.DownloadURL
		}
		if d := recordingSeconds(f.RecordingStart, f.RecordingEnd); d > 0 {
			v.DurationSeconds = model.Duration(d)
		} else if m.Duration > 0 {
			v.DurationSeconds = model.Duration(m.Duration * 60)
		}
		out = append(out, v)
	}
	return out
}

func recordingSeconds(start, end string) float64 {
	s, err1 := time.Parse(time.RFC3339, start)
	e, err2 := time.Parse(time.RFC3339, end)
	if err1 != nil || err2 != nil || !e.After(s) {
		return 0
	}
	return e.Sub(s).Seconds()
}

// exchangeToken performs the OAuth account_credentials grant.
func (a *ZoomAdapter) exchangeToken(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/oauth/token?grant_type=account_credentials&account_id=%s",
		a.authBase, url.QueryEscape(a.accountID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(a.clientID, a.clientSecret)

	resp, err := httpClient.Do(req)
	if err != nil {
		return model.UpstreamErr(string(Zoom), err.Error(), 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.AuthErr(string(Zoom), "Zoom token exchange failed. Check your client ID, client secret and account ID.")
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	if body.AccessToken == "" {
		return model.AuthErr(string(Zoom), "Zoom token exchange returned an empty token")
	}
	a.token = body.AccessToken
	return nil
}

func (a *ZoomAdapter) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return model.UpstreamErr(string(Zoom), err.Error(), 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(Zoom, resp.StatusCode, "Zoom API request failed")
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
