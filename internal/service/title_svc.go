package service

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
)

const (
	// bulkBatchSize bounds concurrent captioning calls per batch to
	// respect the upstream rate limit.
	bulkBatchSize = 5
	// bulkBatchDelay separates successive batches. Skipped after the
	// last batch.
	bulkBatchDelay = time.Second
)

// titleStore is the authoritative persistence for AI titles.
type titleStore interface {
	LookupMany(ctx context.Context, videoIDs []string) (map[string]model.TitleEntry, error)
	Upsert(ctx context.Context, e model.TitleEntry) error
}

// captioner produces a title suggestion for one thumbnail.
type captioner interface {
	Analyze(ctx context.Context, thumbnailURL, originalTitle, userKey string) (*Caption, error)
}

// titleCache is the optional read-through cache in front of titleStore.
type titleCache interface {
	GetTitles(ctx context.Context, videoIDs []string) (map[string]model.TitleEntry, error)
	SetTitle(ctx context.Context, e model.TitleEntry) error
	InvalidateTitle(ctx context.Context, videoID string) error
}

// TitleService owns AI title generation and the unlock gate guarding it.
// Title lookup is always allowed; generation requires the gate to be open.
type TitleService struct {
	store     titleStore
	cache     titleCache
	captioner captioner
	secret    string

	mu       sync.Mutex
	unlocked bool
}

func NewTitleService(store titleStore, cache titleCache, cap captioner, unlockSecret string) *TitleService {
	return &TitleService{store: store, cache: cache, captioner: cap, secret: unlockSecret}
}

// Unlock transitions the gate from Locked to Unlocked when either the
// shared secret matches or the caller supplies a plausible personal API
// key. The transition is monotonic: there is no way back to Locked for
// the life of the process.
func (s *TitleService) Unlock(password, userKey string) bool {
	ok := (s.secret != "" && password == s.secret) || isPlausibleAPIKey(userKey)
	if ok {
		s.mu.Lock()
		s.unlocked = true
		s.mu.Unlock()
	}
	return ok
}

// Unlocked reports the gate state.
func (s *TitleService) Unlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unlocked
}

// isPlausibleAPIKey checks the provider-specific shape of a user key
// without calling anyone.
func isPlausibleAPIKey(key string) bool {
	return strings.HasPrefix(key, "sk-") && len(key) > 20
}

// GetTitles returns cached AI titles for the given IDs: Redis first, the
// database for the misses, backfilling Redis on the way out. Allowed in
// any gate state.
func (s *TitleService) GetTitles(ctx context.Context, videoIDs []string) (map[string]string, error) {
	titles := make(map[string]string, len(videoIDs))
	if len(videoIDs) == 0 {
		return titles, nil
	}

	cached, err := s.cache.GetTitles(ctx, videoIDs)
	if err != nil {
		log.Printf("title-cache: read failed, falling through to database: %v", err)
		cached = map[string]model.TitleEntry{}
	}

	var misses []string
	for _, id := range videoIDs {
		if e, ok := cached[id]; ok {
			titles[id] = e.AiTitle
		} else {
			misses = append(misses, id)
		}
	}

	if len(misses) > 0 {
		entries, err := s.store.LookupMany(ctx, misses)
		if err != nil {
			return nil, err
		}
		for id, e := range entries {
			titles[id] = e.AiTitle
			if err := s.cache.SetTitle(ctx, e); err != nil {
				log.Printf("title-cache: backfill failed for %s: %v", id, err)
			}
		}
	}
	return titles, nil
}

// RequestTitle generates one AI title: caption the thumbnail, upsert the
// result, invalidate the cache entry. Rejected while the gate is locked,
// before any network call.
func (s *TitleService) RequestTitle(ctx context.Context, req model.CaptionRequest, userKey string) (*model.TitleEntry, error) {
	if !s.Unlocked() {
		return nil, model.ValidationErr("AI functions are locked. Unlock them first.")
	}
	if req.VideoID == "" || req.ThumbnailURL == "" {
		return nil, model.ValidationErr("videoId and thumbnailUrl are required")
	}

	caption, err := s.captioner.Analyze(ctx, req.ThumbnailURL, req.OriginalTitle, userKey)
	if err != nil {
		return nil, err
	}

	entry := model.TitleEntry{
		VideoID:       req.VideoID,
		OriginalTitle: req.OriginalTitle,
		AiTitle:       caption.Title,
		ThumbnailURL:  req.ThumbnailURL,
		Confidence:    caption.Confidence,
	}
	if err := s.store.Upsert(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.cache.InvalidateTitle(ctx, req.VideoID); err != nil {
		log.Printf("title-cache: invalidate failed for %s: %v", req.VideoID, err)
	}
	return &entry, nil
}

// BulkProgress reports counters after every processed record.
type BulkProgress func(processed, total, errors int)

// RequestBulk enriches every candidate in fixed-size batches. Within a
// batch, cache hits short-circuit and misses caption concurrently;
// per-record failures are collected and never abort the run. The upsert's
// unique video_id constraint is the single point of dedup, so concurrent
// completions for the same ID cannot create duplicate entries.
func (s *TitleService) RequestBulk(ctx context.Context, reqs []model.CaptionRequest, userKey string, progress BulkProgress) (*model.BulkResult, error) {
	if !s.Unlocked() {
		return nil, model.ValidationErr("AI functions are locked. Unlock them first.")
	}

	result := &model.BulkResult{
		Results: []model.BulkItem{},
		Errors:  []model.BulkError{},
		Total:   len(reqs),
	}
	if len(reqs) == 0 {
		return result, nil
	}

	var mu sync.Mutex
	report := func() {
		if progress != nil {
			progress(len(result.Results)+len(result.Errors), result.Total, len(result.Errors))
		}
	}

	for start := 0; start < len(reqs); start += bulkBatchSize {
		end := min(start+bulkBatchSize, len(reqs))
		batch := reqs[start:end]

		// Cache check first: hits never cost a captioning call.
		ids := make([]string, len(batch))
		for i, r := range batch {
			ids[i] = r.VideoID
		}
		known, err := s.store.LookupMany(ctx, ids)
		if err != nil {
			log.Printf("bulk-ai: cache lookup failed, captioning everything: %v", err)
			known = map[string]model.TitleEntry{}
		}

		var wg sync.WaitGroup
		for _, req := range batch {
			if e, ok := known[req.VideoID]; ok {
				mu.Lock()
				result.Results = append(result.Results, model.BulkItem{VideoID: req.VideoID, AiTitle: e.AiTitle, Cached: true})
				report()
				mu.Unlock()
				continue
			}

			wg.Add(1)
			go func(req model.CaptionRequest) {
				defer wg.Done()
				entry, err := s.captionAndStore(ctx, req, userKey)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					result.Errors = append(result.Errors, model.BulkError{VideoID: req.VideoID, Message: err.Error()})
				} else {
					result.Results = append(result.Results, model.BulkItem{VideoID: req.VideoID, AiTitle: entry.AiTitle})
				}
				report()
			}(req)
		}
		wg.Wait()

		if end < len(reqs) {
			select {
			case <-time.After(bulkBatchDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	// Merge deterministically by video ID regardless of completion order.
	sortBulk(result)
	result.Successful = len(result.Results)
	result.Failed = len(result.Errors)
	return result, nil
}

// sortBulk orders results and errors by video ID so concurrent
// completion order never leaks into the response.
func sortBulk(r *model.BulkResult) {
	sort.Slice(r.Results, func(i, j int) bool { return r.Results[i].VideoID < r.Results[j].VideoID })
	sort.Slice(r.Errors, func(i, j int) bool { return r.Errors[i].VideoID < r.Errors[j].VideoID })
}

func (s *TitleService) captionAndStore(ctx context.Context, req model.CaptionRequest, userKey string) (*model.TitleEntry, error) {
	caption, err := s.captioner.Analyze(ctx, req.ThumbnailURL, req.OriginalTitle, userKey)
	if err != nil {
		return nil, err
	}
	entry := model.TitleEntry{
		VideoID:       req.VideoID,
		OriginalTitle: req.OriginalTitle,
		AiTitle:       caption.Title,
		ThumbnailURL:  req.ThumbnailURL,
		Confidence:    caption.Confidence,
	}
	if err := s.store.Upsert(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.cache.InvalidateTitle(ctx, req.VideoID); err != nil {
		log.Printf("title-cache: invalidate failed for %s: %v", req.VideoID, err)
	}
	return &entry, nil
}
