package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
)

func TestBunnyStream_ThumbnailDerivation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("AccessKey"); got != "bk" {
			t.Errorf("AccessKey = %q", got)
		}
		fmt.Fprint(w, `{"items":[
			{"guid":"abc-123","title":"Lezione 1","length":600,"thumbnailFileName":"thumbnail.jpg"}
		]}`)
	}))
	defer srv.Close()

	a, err := NewBunnyStream(Credentials{Key: "bk", LibraryID: "42", Host: "vz-demo.b-cdn.net"}, "")
	if err != nil {
		t.Fatal(err)
	}
	a.baseURL = srv.URL

	page, err := a.FetchPage(context.Background(), Cursor{Page: 1})
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if len(page.Videos) != 1 {
		t.Fatalf("videos = %d, want 1", len(page.Videos))
	}

	v := page.Videos[0]
	if v.ThumbnailURL != "https://vz-demo.b-cdn.net/abc-123/thumbnail.jpg" {
		t.Errorf("thumbnail = %q", v.ThumbnailURL)
	}
	if v.PlaybackLink != "https://iframe.mediadelivery.net/play/42/abc-123" {
		t.Errorf("playback = %q", v.PlaybackLink)
	}
	if v.DownloadLink != "https://vz-demo.b-cdn.net/abc-123/play_720p.mp4" {
		t.Errorf("download = %q", v.DownloadLink)
	}
}

func TestBunnyStream_NoHostNoDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[{"guid":"abc","title":"x","thumbnailFileName":"t.jpg"}]}`)
	}))
	defer srv.Close()

	a, _ := NewBunnyStream(Credentials{Key: "bk", LibraryID: "42"}, "")
	a.baseURL = srv.URL

	page, err := a.FetchPage(context.Background(), Cursor{Page: 1})
	if err != nil {
		t.Fatal(err)
	}
	v := page.Videos[0]
	if v.DownloadLink != model.DownloadUnavailable {
		t.Errorf("without a CDN host the download must be the sentinel, got %q", v.DownloadLink)
	}
	if v.ThumbnailURL != "" {
		t.Errorf("without a CDN host no thumbnail can be derived, got %q", v.ThumbnailURL)
	}
}

func TestBunnyStorage_SingleShotListing(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `[
			{"Guid":"g-1","ObjectName":"intro.mp4","IsDirectory":false},
			{"Guid":"","ObjectName":"raw.mov","IsDirectory":false},
			{"Guid":"g-2","ObjectName":"subdir","IsDirectory":true},
			{"Guid":"g-3","ObjectName":"notes.txt","IsDirectory":false}
		]`)
	}))
	defer srv.Close()

	a, err := NewBunnyStorage(Credentials{Key: "sk", LibraryID: "myzone", Host: "cdn.example.com"}, "")
	if err != nil {
		t.Fatal(err)
	}
	a.baseURL = srv.URL

	videos, err := FetchAll(context.Background(), a, nil)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want a single listing request", calls)
	}
	// Directories and non-video files are skipped.
	if len(videos) != 2 {
		t.Fatalf("videos = %d, want 2", len(videos))
	}

	if videos[0].VideoID != "g-1" {
		t.Errorf("videoId = %q, want the object GUID", videos[0].VideoID)
	}
	// No GUID: the ID is synthesized from zone and file name.
	if videos[1].VideoID != "myzone:raw.mov" {
		t.Errorf("synthesized videoId = %q", videos[1].VideoID)
	}
	if videos[0].DownloadLink != "https://cdn.example.com/intro.mp4" {
		t.Errorf("download = %q", videos[0].DownloadLink)
	}
	if videos[0].ThumbnailURL != "" {
		t.Errorf("storage listings expose no thumbnails, got %q", videos[0].ThumbnailURL)
	}
}

func TestNewBunnyAdapters_Validation(t *testing.T) {
	if _, err := NewBunnyStream(Credentials{Key: "k"}, ""); model.KindOf(err) != model.KindValidation {
		t.Errorf("missing library ID: err = %v", err)
	}
	if _, err := NewBunnyStorage(Credentials{LibraryID: "zone"}, ""); model.KindOf(err) != model.KindValidation {
		t.Errorf("missing access key: err = %v", err)
	}
}
