package provider

import (
	"context"
	"time"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
)

// interPageDelay keeps sequential page fetches under informal provider
// rate limits. It is skipped after the terminating page.
const interPageDelay = 200 * time.Millisecond

// Progress receives (pageIndex, itemsSoFar) after every completed page so
// the caller can render "fetching page N (M videos so far)".
type Progress func(pageIndex, itemsSoFar int)

// FetchAll drives an adapter through successive pages until its
// termination rule fires and returns the concatenated records.
//
// Pages are fetched strictly sequentially: termination depends on the
// result of the page just fetched. A failure mid-run aborts the whole
// operation; partially accumulated records are discarded.
func FetchAll(ctx context.Context, a Adapter, progress Progress) ([]model.Video, error) {
	var all []model.Video
	cursor := Cursor{Page: 1}

	for pageIndex := 1; ; pageIndex++ {
		page, err := a.FetchPage(ctx, cursor)
		if err != nil {
			return nil, err
		}

		all = append(all, page.Videos...)
		if progress != nil {
			progress(pageIndex, len(all))
		}

		done := false
		switch a.Termination() {
		case TerminateSingle:
			done = true
		case TerminateShortPage:
			done = len(page.Videos) < a.PageSize()
		case TerminateCursor:
			done = page.NextToken == ""
		}
		if done {
			return all, nil
		}

		cursor.Page++
		cursor.Token = page.NextToken

		if err := pause(ctx, interPageDelay); err != nil {
			return nil, err
		}
	}
}

// pause sleeps for d or returns early when ctx is cancelled.
func pause(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
