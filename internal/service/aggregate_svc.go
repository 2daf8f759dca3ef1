package service

import (
	"context"
	"log"
	"time"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
	"github.com/Amaraciuri/VideoDownloaderPro/internal/provider"
	"github.com/Amaraciuri/VideoDownloaderPro/pkg/natsort"
)

// titleLookup is the slice of TitleService the aggregator needs.
type titleLookup interface {
	GetTitles(ctx context.Context, videoIDs []string) (map[string]string, error)
}

// AggregateService runs one full fetch: paginate the provider to
// exhaustion, sort naturally by title, merge cached AI titles, and
// install the result as the session's loaded set.
type AggregateService struct {
	titles  titleLookup
	session *Session
}

func NewAggregateService(titles titleLookup, session *Session) *AggregateService {
	return &AggregateService{titles: titles, session: session}
}

// Aggregate fetches everything the adapter can see. window bounds the
// fetch for date-capable adapters and is a no-op for the rest.
func (s *AggregateService) Aggregate(ctx context.Context, a provider.Adapter, containerURI string, window DateWindow, progress provider.Progress) ([]model.Video, error) {
	if db, ok := a.(provider.DateBounded); ok && window != WindowAll {
		now := time.Now()
		db.SetDateWindow(window.Since(now), now)
	}

	videos, err := provider.FetchAll(ctx, a, progress)
	if err != nil {
		return nil, err
	}

	videos = normalize(videos)

	// Batched cache merge: one lookup for every record with an ID.
	ids := make([]string, 0, len(videos))
	for _, v := range videos {
		if v.VideoID != "" {
			ids = append(ids, v.VideoID)
		}
	}
	if len(ids) > 0 {
		titles, err := s.titles.GetTitles(ctx, ids)
		if err != nil {
			// Cached titles are an enrichment; the fetch itself succeeded.
			log.Printf("aggregate: cached title merge failed: %v", err)
		} else {
			for i := range videos {
				if videos[i].AiTitle == "" {
					videos[i].AiTitle = titles[videos[i].VideoID]
				}
			}
		}
	}

	s.session.Replace(a.Provider(), containerURI, videos, window)
	return videos, nil
}

// normalize sorts by title in natural order and collapses duplicate video
// IDs; for duplicates the last record wins, so a fresher aiTitle is never
// shadowed by an earlier copy of the same video.
func normalize(videos []model.Video) []model.Video {
	seen := make(map[string]int, len(videos))
	out := videos[:0]
	for _, v := range videos {
		if v.VideoID == "" {
			out = append(out, v)
			continue
		}
		if i, dup := seen[v.VideoID]; dup {
			out[i] = v
			continue
		}
		seen[v.VideoID] = len(out)
		out = append(out, v)
	}

	natsort.SortBy(out, func(v model.Video) string { return v.Title })
	return out
}
