package service

import (
	"sync"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
	"github.com/Amaraciuri/VideoDownloaderPro/internal/provider"
)

// BulkCounters mirrors the in-flight progress of a bulk AI run.
type BulkCounters struct {
	Processed int `json:"processed"`
	Total     int `json:"total"`
	Errors    int `json:"errors"`
}

// Session is the process-scoped aggregation state: the selected provider,
// the full loaded set, the displayed subset and the active filters.
// Nothing here is ever persisted; credentials live only in memory for the
// interactive session's lifetime.
//
// Mutation is restricted to Replace (the aggregator's full swap) and
// ApplyFilter (the displayed-subset recompute). The original ran on one
// event loop; here a mutex serializes fiber's concurrent handlers. A new
// fetch does not cancel an in-flight one: whichever Replace lands last
// wins, an accepted race.
type Session struct {
	mu sync.Mutex

	provider  provider.Provider
	container string
	allLoaded []model.Video
	displayed []model.Video
	search    string
	window    DateWindow
	bulk      BulkCounters
}

func NewSession() *Session {
	return &Session{window: WindowAll}
}

// Replace installs a freshly aggregated result set, clearing any active
// filters. The displayed set starts equal to the loaded set.
func (s *Session) Replace(p provider.Provider, containerURI string, videos []model.Video, window DateWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provider = p
	s.container = containerURI
	s.allLoaded = videos
	s.displayed = videos
	s.search = ""
	s.window = window
}

// ApplyFilter recomputes the displayed subset from the loaded set.
func (s *Session) ApplyFilter(search string) []model.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = search
	s.displayed = Filter(s.allLoaded, search)
	return cloneVideos(s.displayed)
}

// MergeTitles sets aiTitle on loaded records from freshly generated
// results, without touching records that already carry one from a newer
// write. Used after a bulk run so the displayed set reflects it.
func (s *Session) MergeTitles(titles map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.allLoaded {
		if t, ok := titles[s.allLoaded[i].VideoID]; ok && t != "" {
			s.allLoaded[i].AiTitle = t
		}
	}
	s.displayed = Filter(s.allLoaded, s.search)
}

// Displayed returns the current displayed subset. The returned slice is
// a copy: callers may hold it across a concurrent MergeTitles without
// observing (or racing with) the in-place rewrite.
func (s *Session) Displayed() []model.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneVideos(s.displayed)
}

// Loaded returns the full unfiltered set, as a copy.
func (s *Session) Loaded() []model.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneVideos(s.allLoaded)
}

func cloneVideos(videos []model.Video) []model.Video {
	out := make([]model.Video, len(videos))
	copy(out, videos)
	return out
}

// Source identifies what the session currently holds, for export naming.
func (s *Session) Source() (provider.Provider, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider, s.container
}

// SetBulkProgress records in-flight bulk AI counters.
func (s *Session) SetBulkProgress(processed, total, errors int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bulk = BulkCounters{Processed: processed, Total: total, Errors: errors}
}

// BulkProgress returns the latest bulk AI counters.
func (s *Session) BulkProgress() BulkCounters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bulk
}
