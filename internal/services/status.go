package services

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sync/errgroup"

	"sitecms-backend-go/internal/db"
)

var statusTables = []string{blogTable, serviceTable, projectTable, galleryTable, "site_settings", "admin_users"}

type HostSample struct {
	ProcessRSSBytes   int64   `json:"processRssBytes"`
	SystemMemoryTotal int64   `json:"systemMemoryTotalBytes"`
	SystemMemoryUsed  int64   `json:"systemMemoryUsedBytes"`
	DiskTotalBytes    int64   `json:"diskTotalBytes"`
	DiskUsedBytes     int64   `json:"diskUsedBytes"`
	ProcessCpuLoad    float64 `json:"processCpuLoad"`
	SystemCpuLoad     float64 `json:"systemCpuLoad"`
}

type StatusSnapshot struct {
	CapturedAt   time.Time      `json:"capturedAt"`
	Host         HostSample     `json:"host"`
	Rows         map[string]int `json:"rows"`
	EventClients int            `json:"eventClients"`
	AIEnabled    bool           `json:"aiEnabled"`
	CDNEnabled   bool           `json:"cdnEnabled"`
}

// StatusReporter gathers the admin dashboard snapshot.
type StatusReporter struct {
	gw       *db.Gateway
	events   *EventHub
	diskPath string
	ai       bool
	cdn      bool
}

func NewStatusReporter(gw *db.Gateway, events *EventHub, diskPath string, aiEnabled, cdnEnabled bool) *StatusReporter {
	return &StatusReporter{gw: gw, events: events, diskPath: diskPath, ai: aiEnabled, cdn: cdnEnabled}
}

func (s *StatusReporter) Capture(ctx context.Context) (StatusSnapshot, error) {
	rows, err := s.countTables(ctx)
	if err != nil {
		return StatusSnapshot{}, ErrPersistence("Internal server error", err)
	}
	return StatusSnapshot{
		CapturedAt:   time.Now().UTC(),
		Host:         captureHost(s.diskPath),
		Rows:         rows,
		EventClients: s.events.Clients(),
		AIEnabled:    s.ai,
		CDNEnabled:   s.cdn,
	}, nil
}

func (s *StatusReporter) countTables(ctx context.Context) (map[string]int, error) {
	var mu sync.Mutex
	counts := make(map[string]int, len(statusTables))
	g, gctx := errgroup.WithContext(ctx)
	for _, table := range statusTables {
		table := table
		g.Go(func() error {
			n, err := countRows(gctx, s.gw, table)
			if err != nil {
				return err
			}
			mu.Lock()
			counts[table] = n
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

// captureHost reads host metrics. Probes that fail leave their fields zero.
func captureHost(diskPath string) HostSample {
	sample := HostSample{}
	if memStat, err := mem.VirtualMemory(); err == nil {
		sample.SystemMemoryTotal = int64(memStat.Total)
		sample.SystemMemoryUsed = int64(memStat.Total - memStat.Available)
	}
	diskStat, err := disk.Usage(diskPath)
	if err != nil {
		diskStat, err = disk.Usage("/")
	}
	if err == nil {
		sample.DiskTotalBytes = int64(diskStat.Total)
		sample.DiskUsedBytes = int64(diskStat.Used)
	}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if rss, _ := proc.MemoryInfo(); rss != nil {
			sample.ProcessRSSBytes = int64(rss.RSS)
		}
		cpuPerc, _ := proc.CPUPercent()
		sample.ProcessCpuLoad = cpuPerc / 100.0
	}
	if sysCPU, _ := cpu.Percent(0, false); len(sysCPU) > 0 {
		sample.SystemCpuLoad = sysCPU[0] / 100.0
	}
	return sample
}
