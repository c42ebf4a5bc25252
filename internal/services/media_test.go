package services

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"pathways-backend-go/internal/models"
)

type memMedia struct {
	assets map[string]*models.MediaAsset
}

func (m *memMedia) CreateMediaAsset(ctx context.Context, asset *models.MediaAsset) error {
	m.assets[asset.ID] = asset
	return nil
}

func (m *memMedia) GetMediaAsset(ctx context.Context, id string) (*models.MediaAsset, error) {
	return m.assets[id], nil
}

func TestSaveMediaAsset(t *testing.T) {
	base := t.TempDir()
	media := &memMedia{assets: map[string]*models.MediaAsset{}}
	ctx := context.Background()

	asset, err := SaveMediaAsset(ctx, media, base, BucketResumes, "application/pdf", "cv.pdf", "user-1", strings.NewReader("%PDF-1.4"), 1024)
	if err != nil {
		t.Fatalf("SaveMediaAsset: %v", err)
	}
	if asset.SizeBytes != 8 || asset.Sha256 == nil || len(*asset.Sha256) != 64 {
		t.Fatalf("unexpected asset %+v", asset)
	}
	f, err := OpenMediaAsset(base, asset)
	if err != nil {
		t.Fatalf("OpenMediaAsset: %v", err)
	}
	body, _ := io.ReadAll(f)
	_ = f.Close()
	if string(body) != "%PDF-1.4" {
		t.Fatalf("stored body %q", body)
	}
	if BuildAssetURL(asset.ID) != "/api/media/"+asset.ID {
		t.Fatal("unexpected asset url")
	}

	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "too large", body: strings.Repeat("x", 11)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SaveMediaAsset(ctx, media, base, BucketResumes, "application/pdf", "cv.pdf", "user-1", strings.NewReader(tt.body), 10)
			if serviceStatus(t, err) != http.StatusBadRequest {
				t.Fatalf("err = %v", err)
			}
		})
	}
	entries, err := os.ReadDir(base + "/" + BucketResumes)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("rejected uploads left %d files behind", len(entries))
	}
}
