package service

import (
	"strings"
	"time"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
)

// DateWindow is a relative creation-time bound on a fetch. Only providers
// whose API accepts a date constraint honor it; for the rest the full
// loaded set passes through unchanged.
type DateWindow string

const (
	WindowAll        DateWindow = "all"
	WindowLastMonth  DateWindow = "1m"
	WindowLast3Month DateWindow = "3m"
	WindowLast6Month DateWindow = "6m"
	WindowLastYear   DateWindow = "1y"
)

// ParseWindow validates a window from user input; empty means all.
func ParseWindow(s string) (DateWindow, error) {
	switch w := DateWindow(strings.TrimSpace(s)); w {
	case "", WindowAll:
		return WindowAll, nil
	case WindowLastMonth, WindowLast3Month, WindowLast6Month, WindowLastYear:
		return w, nil
	default:
		return "", model.ValidationErr("dateWindow must be one of all, 1m, 3m, 6m, 1y")
	}
}

// Since resolves the window's lower bound relative to now. The zero time
// means unbounded.
func (w DateWindow) Since(now time.Time) time.Time {
	switch w {
	case WindowLastMonth:
		return now.AddDate(0, -1, 0)
	case WindowLast3Month:
		return now.AddDate(0, -3, 0)
	case WindowLast6Month:
		return now.AddDate(0, -6, 0)
	case WindowLastYear:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

// Filter derives the displayed subset from the loaded set: a pure,
// case-insensitive substring match against the title. The empty query is
// the identity. Input order is preserved; filtering never re-sorts.
func Filter(videos []model.Video, query string) []model.Video {
	query = strings.TrimSpace(query)
	if query == "" {
		return videos
	}

	needle := strings.ToLower(query)
	out := make([]model.Video, 0, len(videos))
	for _, v := range videos {
		if strings.Contains(strings.ToLower(v.Title), needle) {
			out = append(out, v)
		}
	}
	return out
}
