package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/store"
)

const BucketResumes = "resumes"

func EnsureStoragePath(base string, bucket string) (string, error) {
	path := filepath.Join(base, bucket)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", err
	}
	return path, nil
}

// SaveMediaAsset streams body to disk and records the asset. At most maxBytes are
// accepted; the file is removed again if anything after the copy fails.
func SaveMediaAsset(ctx context.Context, q store.MediaQueries, basePath, bucket, contentType, filename, ownerID string, body io.Reader, maxBytes int64) (*models.MediaAsset, error) {
	assetID := uuid.NewString()
	bucketPath, err := EnsureStoragePath(basePath, bucket)
	if err != nil {
		return nil, err
	}
	targetPath := filepath.Join(bucketPath, assetID)

	file, err := os.Create(targetPath)
	if err != nil {
		return nil, err
	}
	hasher := sha256.New()
	size, err := io.Copy(io.MultiWriter(file, hasher), io.LimitReader(body, maxBytes+1))
	_ = file.Close()
	if err != nil {
		_ = os.Remove(targetPath)
		return nil, err
	}
	if size == 0 {
		_ = os.Remove(targetPath)
		return nil, ErrBadRequest("Uploaded file is empty")
	}
	if size > maxBytes {
		_ = os.Remove(targetPath)
		return nil, ErrBadRequest("File size exceeds upload limit")
	}
	sha := hex.EncodeToString(hasher.Sum(nil))

	asset := &models.MediaAsset{
		ID:          assetID,
		OwnerUserID: &ownerID,
		Bucket:      bucket,
		StorageKey:  assetID,
		Filename:    &filename,
		ContentType: contentType,
		SizeBytes:   size,
		Sha256:      &sha,
	}
	if err := q.CreateMediaAsset(ctx, asset); err != nil {
		_ = os.Remove(targetPath)
		return nil, err
	}
	return asset, nil
}

func OpenMediaAsset(basePath string, asset *models.MediaAsset) (*os.File, error) {
	return os.Open(filepath.Join(basePath, asset.Bucket, asset.StorageKey))
}

func BuildAssetURL(assetID string) string {
	return "/api/media/" + assetID
}

// AttachResume stores an uploaded resume and points the student profile at it.
// The asset row, profile update and log entry commit together.
func AttachResume(ctx context.Context, st store.Store, basePath, profileID, ownerID, contentType, filename string, body io.Reader, maxBytes int64, ip string) (*models.MediaAsset, *models.ActivityLog, error) {
	var asset *models.MediaAsset
	var entry *models.ActivityLog
	err := st.WithTx(ctx, func(q store.Queries) error {
		var err error
		asset, err = SaveMediaAsset(ctx, q, basePath, BucketResumes, contentType, filename, ownerID, body, maxBytes)
		if err != nil {
			return err
		}
		if err := q.SetProfileResume(ctx, profileID, asset.ID); err != nil {
			_ = os.Remove(filepath.Join(basePath, asset.Bucket, asset.StorageKey))
			return err
		}
		entry, err = RecordActivity(ctx, q, ownerID, ActionResumeUploaded, Details{"student_id": profileID, "media_id": asset.ID}, ip)
		if err != nil {
			_ = os.Remove(filepath.Join(basePath, asset.Bucket, asset.StorageKey))
		}
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return asset, entry, nil
}
