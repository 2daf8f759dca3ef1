package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
)

type TitleRepo struct {
	pool *pgxpool.Pool
}

func NewTitleRepo(pool *pgxpool.Pool) *TitleRepo {
	return &TitleRepo{pool: pool}
}

// LookupMany returns the cached AI titles for the given video IDs in one
// round trip. IDs without an entry are simply absent from the map.
func (r *TitleRepo) LookupMany(ctx context.Context, videoIDs []string) (map[string]model.TitleEntry, error) {
	entries := make(map[string]model.TitleEntry, len(videoIDs))
	if len(videoIDs) == 0 {
		return entries, nil
	}

	query := `
		SELECT video_id, original_title, ai_title, thumbnail_url, confidence, created_at, updated_at
		FROM ai_titles
		WHERE video_id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, videoIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var e model.TitleEntry
		err := rows.Scan(&e.VideoID, &e.OriginalTitle, &e.AiTitle, &e.ThumbnailURL,
			&e.Confidence, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, err
		}
		entries[e.VideoID] = e
	}
	return entries, rows.Err()
}

// Upsert inserts the entry or, when the video already has one, refreshes
// ai_title, confidence and updated_at. original_title and thumbnail_url
// keep the values of the first successful write. The unique video_id
// constraint makes this the single point of truth for dedup even under
// concurrent bulk batches.
func (r *TitleRepo) Upsert(ctx context.Context, e model.TitleEntry) error {
	query := `
		INSERT INTO ai_titles (video_id, original_title, ai_title, thumbnail_url, confidence, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (video_id) DO UPDATE SET
			ai_title   = EXCLUDED.ai_title,
			confidence = EXCLUDED.confidence,
			updated_at = NOW()`

	_, err := r.pool.Exec(ctx, query, e.VideoID, e.OriginalTitle, e.AiTitle, e.ThumbnailURL, e.Confidence)
	return err
}
