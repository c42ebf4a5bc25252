package store

import (
	"context"
	"time"

	"pathways-backend-go/internal/models"
)

func (q *queries) InsertActivityLog(ctx context.Context, entry *models.ActivityLog) error {
	return q.get(ctx, entry, `
INSERT INTO activity_logs (id, user_id, action, details, ip_address)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, user_id, action, details, ip_address, created_at
`, entry.ID, entry.UserID, entry.Action, jsonText(entry.Details, "{}"), entry.IPAddress)
}

func (q *queries) ListActivityLogs(ctx context.Context, userID string, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	entries := []models.ActivityLog{}
	err := q.selectAll(ctx, &entries, `
SELECT id, user_id, action, details, ip_address, created_at
FROM activity_logs
WHERE $1 = '' OR user_id = $1
ORDER BY created_at DESC
LIMIT $2
`, userID, limit)
	return entries, err
}

func (q *queries) CreateMediaAsset(ctx context.Context, asset *models.MediaAsset) error {
	return q.get(ctx, asset, `
INSERT INTO media_assets (id, owner_user_id, bucket, storage_key, filename, content_type, size_bytes, sha256)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, owner_user_id, bucket, storage_key, filename, content_type, size_bytes, sha256, created_at
`, asset.ID, asset.OwnerUserID, asset.Bucket, asset.StorageKey, asset.Filename, asset.ContentType,
		asset.SizeBytes, asset.Sha256)
}

func (q *queries) GetMediaAsset(ctx context.Context, id string) (*models.MediaAsset, error) {
	var asset models.MediaAsset
	err := q.get(ctx, &asset, `
SELECT id, owner_user_id, bucket, storage_key, filename, content_type, size_bytes, sha256, created_at
FROM media_assets WHERE id = $1
`, id)
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (q *queries) InsertMetricSample(ctx context.Context, sample *models.ServerMetricSample) error {
	return q.exec(ctx, `
INSERT INTO server_metric_samples (
  id, captured_at, process_rss_bytes, system_memory_total_bytes, system_memory_used_bytes,
  disk_total_bytes, disk_used_bytes, process_cpu_load, system_cpu_load
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, sample.ID, sample.CapturedAt, sample.ProcessRSSBytes, sample.SystemMemoryTotal, sample.SystemMemoryUsed,
		sample.DiskTotalBytes, sample.DiskUsedBytes, sample.ProcessCPULoad, sample.SystemCPULoad)
}

func (q *queries) ListMetricSamples(ctx context.Context, since time.Time, limit int) ([]models.ServerMetricSample, error) {
	if limit <= 0 || limit > 5000 {
		limit = 1000
	}
	samples := []models.ServerMetricSample{}
	err := q.selectAll(ctx, &samples, `
SELECT id, captured_at, process_rss_bytes, system_memory_total_bytes, system_memory_used_bytes,
  disk_total_bytes, disk_used_bytes, process_cpu_load, system_cpu_load
FROM server_metric_samples
WHERE captured_at >= $1
ORDER BY captured_at ASC
LIMIT $2
`, since.UTC(), limit)
	return samples, err
}
