package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
	"github.com/Amaraciuri/VideoDownloaderPro/internal/provider"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{59, "0:59"},
		{60, "1:00"},
		{754, "12:34"},
		{3600, "1:00:00"},
		{3723, "1:02:03"},
	}
	for _, tt := range tests {
		if got := FormatDuration(model.Duration(tt.seconds)); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
	if got := FormatDuration(nil); got != "" {
		t.Errorf("FormatDuration(nil) = %q, want empty", got)
	}
}

func TestFilename(t *testing.T) {
	svc := NewExportService()
	now := time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC)

	got := svc.Filename(provider.Vimeo, "/folders/987", now)
	if got != "vimeo_videos_container_987_2025-07-01T09-30-00.xlsx" {
		t.Errorf("filename = %q", got)
	}

	got = svc.Filename(provider.Wistia, "", now)
	if got != "wistia_videos_2025-07-01T09-30-00.xlsx" {
		t.Errorf("filename = %q", got)
	}
}

func TestRender_RowsAndSentinel(t *testing.T) {
	svc := NewExportService()
	videos := []model.Video{
		{Title: "Clip 1", AiTitle: "Titolo AI 1", DurationSeconds: model.Duration(754),
			PlaybackLink: "https://v/1", DownloadLink: "https://dl/1"},
		{Title: "Clip 2", PlaybackLink: "https://v/2", DownloadLink: model.DownloadUnavailable},
	}

	data, err := svc.Render(videos)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}

	if strings.Join(rows[0], "|") != "Titolo Originale|Titolo AI|Durata|Video Link|Download Link" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "Clip 1" || rows[1][2] != "12:34" || rows[1][4] != "https://dl/1" {
		t.Errorf("row 1 = %v", rows[1])
	}
	// The unavailable sentinel must survive into the cell, never empty.
	if rows[2][4] != model.DownloadUnavailable {
		t.Errorf("row 2 download = %q, want %q", rows[2][4], model.DownloadUnavailable)
	}
}

func TestRender_EmptySet(t *testing.T) {
	svc := NewExportService()
	data, err := svc.Render(nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(data) == 0 {
		t.Error("even an empty export produces a workbook with the header")
	}
}
