package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
)

// fakeAdapter serves pre-built pages for paginator tests.
type fakeAdapter struct {
	termination Termination
	pageSize    int
	pages       []*Page
	failAt      int // 1-based page index to fail at, 0 for never
	fetches     int
}

func (f *fakeAdapter) Provider() Provider       { return Vimeo }
func (f *fakeAdapter) Termination() Termination { return f.termination }
func (f *fakeAdapter) PageSize() int            { return f.pageSize }

func (f *fakeAdapter) FetchPage(_ context.Context, cursor Cursor) (*Page, error) {
	f.fetches++
	if f.failAt > 0 && f.fetches == f.failAt {
		return nil, errors.New("boom")
	}
	if cursor.Page > len(f.pages) {
		return &Page{}, nil
	}
	return f.pages[cursor.Page-1], nil
}

func makePage(n int, next string) *Page {
	p := &Page{NextToken: next}
	for i := 0; i < n; i++ {
		p.Videos = append(p.Videos, model.Video{Title: fmt.Sprintf("v%d", i)})
	}
	return p
}

func TestFetchAll_ShortPageTermination(t *testing.T) {
	// Pages of 100, 100, 37 with page size 100: exactly 3 fetches, 237 records.
	fake := &fakeAdapter{
		termination: TerminateShortPage,
		pageSize:    100,
		pages:       []*Page{makePage(100, ""), makePage(100, ""), makePage(37, "")},
	}

	videos, err := FetchAll(context.Background(), fake, nil)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if fake.fetches != 3 {
		t.Errorf("fetches = %d, want 3", fake.fetches)
	}
	if len(videos) != 237 {
		t.Errorf("videos = %d, want 237", len(videos))
	}
}

func TestFetchAll_CursorTermination(t *testing.T) {
	fake := &fakeAdapter{
		termination: TerminateCursor,
		pageSize:    100,
		pages:       []*Page{makePage(100, "tok1"), makePage(100, "tok2"), makePage(100, "")},
	}

	videos, err := FetchAll(context.Background(), fake, nil)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	// A full third page still terminates because the token ran out.
	if fake.fetches != 3 {
		t.Errorf("fetches = %d, want 3", fake.fetches)
	}
	if len(videos) != 300 {
		t.Errorf("videos = %d, want 300", len(videos))
	}
}

func TestFetchAll_SingleResponse(t *testing.T) {
	fake := &fakeAdapter{
		termination: TerminateSingle,
		pages:       []*Page{makePage(12, "")},
	}

	videos, err := FetchAll(context.Background(), fake, nil)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if fake.fetches != 1 {
		t.Errorf("fetches = %d, want 1", fake.fetches)
	}
	if len(videos) != 12 {
		t.Errorf("videos = %d, want 12", len(videos))
	}
}

func TestFetchAll_ProgressReported(t *testing.T) {
	fake := &fakeAdapter{
		termination: TerminateShortPage,
		pageSize:    2,
		pages:       []*Page{makePage(2, ""), makePage(1, "")},
	}

	type report struct{ page, items int }
	var reports []report
	_, err := FetchAll(context.Background(), fake, func(pageIndex, itemsSoFar int) {
		reports = append(reports, report{pageIndex, itemsSoFar})
	})
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	want := []report{{1, 2}, {2, 3}}
	if len(reports) != len(want) {
		t.Fatalf("reports = %v, want %v", reports, want)
	}
	for i, r := range reports {
		if r != want[i] {
			t.Errorf("report %d = %+v, want %+v", i, r, want[i])
		}
	}
}

func TestFetchAll_MidRunFailureDiscardsPartial(t *testing.T) {
	fake := &fakeAdapter{
		termination: TerminateShortPage,
		pageSize:    2,
		pages:       []*Page{makePage(2, ""), makePage(2, ""), makePage(1, "")},
		failAt:      2,
	}

	videos, err := FetchAll(context.Background(), fake, nil)
	if err == nil {
		t.Fatal("expected error from failing page")
	}
	if videos != nil {
		t.Errorf("expected no records on failure, got %d", len(videos))
	}
}

func TestFetchAll_ContextCancelledBetweenPages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fake := &fakeAdapter{
		termination: TerminateShortPage,
		pageSize:    1,
		pages:       []*Page{makePage(1, ""), makePage(1, "")},
	}

	// Cancel before the inter-page delay elapses.
	cancel()
	_, err := FetchAll(ctx, fake, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
