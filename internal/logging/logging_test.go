package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDailyFileRotatesAndPrunes(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "app-2020-01-01.log")
	if err := os.WriteFile(stale, []byte("old\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	day := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	d := &DailyFile{dir: dir, retentionDays: 7, now: func() time.Time { return day }}
	if err := d.rotate(day.Format("2006-01-02")); err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("stale log should be removed, stat err = %v", err)
	}
	if _, err := d.Write([]byte("first\n")); err != nil {
		t.Fatal(err)
	}

	day = day.Add(2 * time.Minute)
	if _, err := d.Write([]byte("second\n")); err != nil {
		t.Fatal(err)
	}

	first, err := os.ReadFile(filepath.Join(dir, "app-2024-03-01.log"))
	if err != nil || string(first) != "first\n" {
		t.Fatalf("unexpected first file %q, %v", first, err)
	}
	second, err := os.ReadFile(filepath.Join(dir, "app-2024-03-02.log"))
	if err != nil || string(second) != "second\n" {
		t.Fatalf("unexpected second file %q, %v", second, err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
