package services

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/store"
)

// SampleMetrics reads process and host usage. Readings that fail leave their fields at zero.
func SampleMetrics(ctx context.Context, diskPath string) models.ServerMetricSample {
	sample := models.ServerMetricSample{
		ID:         uuid.NewString(),
		CapturedAt: time.Now().UTC(),
	}
	if proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid())); err == nil {
		if rss, err := proc.MemoryInfoWithContext(ctx); err == nil && rss != nil {
			sample.ProcessRSSBytes = int64(rss.RSS)
		}
		if perc, err := proc.CPUPercentWithContext(ctx); err == nil {
			sample.ProcessCPULoad = perc / 100.0
		}
	}
	if memStat, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		sample.SystemMemoryTotal = int64(memStat.Total)
		sample.SystemMemoryUsed = int64(memStat.Total - memStat.Available)
	}
	diskStat, err := disk.UsageWithContext(ctx, diskPath)
	if err != nil {
		diskStat, err = disk.UsageWithContext(ctx, "/")
	}
	if err == nil {
		sample.DiskTotalBytes = int64(diskStat.Total)
		sample.DiskUsedBytes = int64(diskStat.Used)
	}
	if sysCPU, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(sysCPU) > 0 {
		sample.SystemCPULoad = sysCPU[0] / 100.0
	}
	return sample
}

// CaptureMetrics samples and persists one data point.
func CaptureMetrics(ctx context.Context, q store.MetricQueries, diskPath string) (models.ServerMetricSample, error) {
	sample := SampleMetrics(ctx, diskPath)
	if err := q.InsertMetricSample(ctx, &sample); err != nil {
		return models.ServerMetricSample{}, err
	}
	return sample, nil
}
