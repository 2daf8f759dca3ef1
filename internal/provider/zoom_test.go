package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
)

const zoomRecordingsBody = `{
	"meetings": [{
		"topic": "Weekly standup",
		"duration": 30,
		"recording_files": [
			{"id":"rec-1","file_type":"MP4","play_url":"https://zoom.us/play/1","download_url":"https://zoom.us/dl/1",
			 "recording_start":"2025-06-01T10:00:00Z","recording_end":"2025-06-01T10:30:00Z"},
			{"id":"rec-2","file_type":"M4A","play_url":"https://zoom.us/play/2"}
		]
	}],
	"next_page_token": ""
}`

func newZoomForTest(t *testing.T, srv *httptest.Server) *ZoomAdapter {
	t.Helper()
	a, err := NewZoom(Credentials{Key: "id", Secret: "secret", AccountID: "acc"})
	if err != nil {
		t.Fatal(err)
	}
	a.apiBase = srv.URL
	a.authBase = srv.URL
	return a
}

func TestZoom_TokenExchangeAndAccountStrategy(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/oauth/token":
			user, pass, ok := r.BasicAuth()
			sawAuth = ok && user == "id" && pass == "secret"
			if r.URL.Query().Get("grant_type") != "account_credentials" {
				t.Errorf("grant_type = %q", r.URL.Query().Get("grant_type"))
			}
			fmt.Fprint(w, `{"access_token":"zoom-token"}`)
		case strings.HasPrefix(r.URL.Path, "/accounts/"):
			if got := r.Header.Get("Authorization"); got != "Bearer zoom-token" {
				t.Errorf("Authorization = %q", got)
			}
			fmt.Fprint(w, zoomRecordingsBody)
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer srv.Close()

	a := newZoomForTest(t, srv)
	page, err := a.FetchPage(context.Background(), Cursor{Page: 1})
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if !sawAuth {
		t.Error("token exchange did not carry basic auth")
	}

	// Only the MP4 file becomes a record.
	if len(page.Videos) != 1 {
		t.Fatalf("videos = %d, want 1", len(page.Videos))
	}
	v := page.Videos[0]
	if v.VideoID != "rec-1" || v.Title != "Weekly standup" {
		t.Errorf("video = %+v", v)
	}
	if v.DurationSeconds == nil || *v.DurationSeconds != 1800 {
		t.Errorf("duration = %v, want 1800", v.DurationSeconds)
	}
}

func TestZoom_FallbackToUserStrategy(t *testing.T) {
	var accountCalls, userListCalls, userRecCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/oauth/token":
			fmt.Fprint(w, `{"access_token":"zoom-token"}`)
		case strings.HasPrefix(r.URL.Path, "/accounts/"):
			accountCalls++
			w.WriteHeader(http.StatusBadRequest) // missing account-level scope
		case r.URL.Path == "/users":
			userListCalls++
			fmt.Fprint(w, `{"users":[{"id":"u1"},{"id":"u2"}]}`)
		case strings.HasPrefix(r.URL.Path, "/users/"):
			userRecCalls++
			fmt.Fprint(w, zoomRecordingsBody)
		}
	}))
	defer srv.Close()

	a := newZoomForTest(t, srv)
	page, err := a.FetchPage(context.Background(), Cursor{Page: 1})
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if accountCalls != 1 || userListCalls != 1 || userRecCalls != 2 {
		t.Errorf("calls = account:%d users:%d recordings:%d", accountCalls, userListCalls, userRecCalls)
	}
	if len(page.Videos) != 2 {
		t.Errorf("videos = %d, want one MP4 per user", len(page.Videos))
	}
	if page.NextToken != "" {
		t.Errorf("user strategy must exhaust in one page, got token %q", page.NextToken)
	}
}

func TestZoom_BothStrategiesFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/token" {
			fmt.Fprint(w, `{"access_token":"zoom-token"}`)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	a := newZoomForTest(t, srv)
	_, err := a.FetchPage(context.Background(), Cursor{Page: 1})
	if err == nil {
		t.Fatal("expected error when both strategies fail")
	}
	if model.KindOf(err) != model.KindAuth {
		t.Errorf("kind = %v, want auth", model.KindOf(err))
	}
	if !strings.Contains(err.Error(), "scope") {
		t.Errorf("error should point at scope configuration, got %q", err.Error())
	}
}

func TestZoom_TokenExchangeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newZoomForTest(t, srv)
	_, err := a.FetchPage(context.Background(), Cursor{Page: 1})
	if model.KindOf(err) != model.KindAuth {
		t.Errorf("kind = %v, want auth", model.KindOf(err))
	}
}

func TestZoom_DateWindowApplied(t *testing.T) {
	var gotFrom, gotTo string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/oauth/token":
			fmt.Fprint(w, `{"access_token":"zoom-token"}`)
		case strings.HasPrefix(r.URL.Path, "/accounts/"):
			gotFrom = r.URL.Query().Get("from")
			gotTo = r.URL.Query().Get("to")
			fmt.Fprint(w, `{"meetings":[],"next_page_token":""}`)
		}
	}))
	defer srv.Close()

	a := newZoomForTest(t, srv)
	a.SetDateWindow(
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	)

	if _, err := a.FetchPage(context.Background(), Cursor{Page: 1}); err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if gotFrom != "2025-03-01" || gotTo != "2025-06-01" {
		t.Errorf("from/to = %q/%q", gotFrom, gotTo)
	}
}

func TestNewZoom_RequiresKeyAndSecret(t *testing.T) {
	if _, err := NewZoom(Credentials{Key: "only-key"}); model.KindOf(err) != model.KindValidation {
		t.Errorf("err = %v, want validation error", err)
	}
}
