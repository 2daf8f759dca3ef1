package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
)

const bunnyStorageBase = "https://storage.bunnycdn.com"

// BunnyStorageAdapter lists video files in a Bunny.net storage zone.
// The legacy listing endpoint returns the whole directory in one call,
// so there is no paging. Directories inside the zone act as containers.
type BunnyStorageAdapter struct {
	accessKey string
	zone      string
	path      string // directory inside the zone, "" for the root
	pullHost  string // pull-zone hostname used to build playable URLs
	baseURL   string
}

func NewBunnyStorage(creds Credentials, containerURI string) (*BunnyStorageAdapter, error) {
	if strings.TrimSpace(creds.Key) == "" {
		return nil, model.ValidationErr("Bunny Storage access key is required")
	}
	if strings.TrimSpace(creds.LibraryID) == "" {
		return nil, model.ValidationErr("Bunny Storage zone name is required")
	}

	return &BunnyStorageAdapter{
		accessKey: creds.Key,
		zone:      creds.LibraryID,
		path:      strings.Trim(containerURI, "/"),
		pullHost:  strings.TrimSuffix(creds.Host, "/"),
		baseURL:   bunnyStorageBase,
	}, nil
}

func (a *BunnyStorageAdapter) Provider() Provider       { return BunnyStorage }
func (a *BunnyStorageAdapter) Termination() Termination { return TerminateSingle }
func (a *BunnyStorageAdapter) PageSize() int            { return 0 }

type bunnyStorageObject struct {
	Guid        string `json:"Guid"`
	ObjectName  string `json:"ObjectName"`
	Path        string `json:"Path"`
	IsDirectory bool   `json:"IsDirectory"`
	Length      int64  `json:"Length"`
}

func (a *BunnyStorageAdapter) FetchPage(ctx context.Context, _ Cursor) (*Page, error) {
	url := fmt.Sprintf("%s/%s/", a.baseURL, a.zone)
	if a.path != "" {
		url = fmt.Sprintf("%s/%s/%s/", a.baseURL, a.zone, a.path)
	}

	var objects []bunnyStorageObject
	if err := a.get(ctx, url, &objects); err != nil {
		return nil, err
	}

	page := &Page{}
	for _, obj := range objects {
		if obj.IsDirectory || !isVideoFile(obj.ObjectName) {
			continue
		}
		page.Videos = append(page.Videos, a.mapObject(obj))
	}
	return page, nil
}

// mapObject normalizes one storage object. Storage listings carry no
// stable video ID, so the object GUID is used when present and the file
// name is synthesized into one otherwise. No thumbnail exists without a
// side-effecting request, so none is set.
func (a *BunnyStorageAdapter) mapObject(obj bunnyStorageObject) model.Video {
	link := model.DownloadUnavailable
	if a.pullHost != "" {
		prefix := "https://" + a.pullHost + "/"
		if a.path != "" {
			prefix += a.path + "/"
		}
		link = prefix + obj.ObjectName
	}

	videoID := obj.Guid
	if videoID == "" {
		videoID = a.zone + ":" + obj.ObjectName
	}

	playback := link
	if playback == model.DownloadUnavailable {
		playback = ""
	}

	return model.Video{
		Title:        obj.ObjectName,
		PlaybackLink: playback,
		DownloadLink: link,
		VideoID:      videoID,
	}
}

// ListContainers exposes the zone's top-level directories.
func (a *BunnyStorageAdapter) ListContainers(ctx context.Context) ([]model.Container, error) {
	var objects []bunnyStorageObject
	if err := a.get(ctx, fmt.Sprintf("%s/%s/", a.baseURL, a.zone), &objects); err != nil {
		return nil, err
	}

	var containers []model.Container
	for _, obj := range objects {
		if obj.IsDirectory {
			containers = append(containers, model.Container{URI: obj.ObjectName, Name: obj.ObjectName})
		}
	}
	return containers, nil
}

func (a *BunnyStorageAdapter) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("AccessKey", a.accessKey)
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return model.UpstreamErr(string(BunnyStorage), err.Error(), 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(BunnyStorage, resp.StatusCode, "Bunny Storage request failed")
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".mkv": true, ".avi": true,
	".webm": true, ".m4v": true, ".ts": true,
}

func isVideoFile(name string) bool {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return false
	}
	return videoExtensions[strings.ToLower(name[i:])]
}
