package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
	"github.com/Amaraciuri/VideoDownloaderPro/internal/provider"
)

const exportSheet = "Videos"

var exportHeader = []any{"Titolo Originale", "Titolo AI", "Durata", "Video Link", "Download Link"}

// ExportService renders the currently displayed set as an xlsx workbook.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// Filename derives the download name from the session source and a
// timestamp, so exports stay traceable to what produced them.
func (s *ExportService) Filename(p provider.Provider, containerURI string, now time.Time) string {
	ts := now.UTC().Format("2006-01-02T15-04-05")
	if containerURI != "" {
		return fmt.Sprintf("%s_videos_container_%s_%s.xlsx", p, pathTail(containerURI), ts)
	}
	return fmt.Sprintf("%s_videos_%s.xlsx", p, ts)
}

// Render builds the workbook: one header row plus one row per record, in
// the displayed order. A missing download link is exported as the literal
// sentinel, never as an empty cell.
func (s *ExportService) Render(videos []model.Video) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}

	for i, v := range videos {
		download := v.DownloadLink
		if download == "" {
			download = model.DownloadUnavailable
		}
		row := []any{v.Title, v.AiTitle, FormatDuration(v.DurationSeconds), v.PlaybackLink, download}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatDuration renders seconds as m:ss, or h:mm:ss past the hour.
// Unknown durations render empty.
func FormatDuration(seconds *float64) string {
	if seconds == nil || *seconds <= 0 {
		return ""
	}
	total := int(*seconds + 0.5)
	h := total / 3600
	m := (total % 3600) / 60
	sec := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}

func pathTail(uri string) string {
	for i := len(uri) - 1; i >= 0; i-- {
		if uri[i] == '/' {
			return uri[i+1:]
		}
	}
	return uri
}
