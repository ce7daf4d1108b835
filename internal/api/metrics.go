package api

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

const mb = 1024 * 1024

// ProcessSnapshot - состояние процесса для /api/server
type ProcessSnapshot struct {
	Uptime        string  `json:"uptime"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	AllocMB       float64 `json:"alloc_mb"`
	HeapMB        float64 `json:"heap_mb"`
	SysMB         float64 `json:"sys_mb"`
	NumGC         uint32  `json:"num_gc"`
	Goroutines    int     `json:"goroutines"`
	CPUPercent    float64 `json:"cpu_percent"`
	CPUSource     string  `json:"cpu_source"` // process, system или none
}

// ServerMetrics собирает метрики процесса через gopsutil и runtime
type ServerMetrics struct {
	startTime time.Time
	proc      *process.Process // nil, если процесс недоступен
}

func NewServerMetrics() *ServerMetrics {
	sm := &ServerMetrics{startTime: time.Now()}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		sm.proc = proc
	}
	return sm
}

// Snapshot снимает текущие показатели. Ошибка CPU не фатальна: поле остаётся нулевым.
func (sm *ServerMetrics) Snapshot() ProcessSnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(sm.startTime)
	snap := ProcessSnapshot{
		Uptime:        formatUptime(uptime),
		UptimeSeconds: int64(uptime.Seconds()),
		AllocMB:       float64(m.Alloc) / mb,
		HeapMB:        float64(m.HeapAlloc) / mb,
		SysMB:         float64(m.Sys) / mb,
		NumGC:         m.NumGC,
		Goroutines:    runtime.NumGoroutine(),
		CPUSource:     "none",
	}
	snap.CPUPercent, snap.CPUSource = sm.cpuPercent()
	return snap
}

// cpuPercent берёт загрузку процесса, при неудаче - системную
func (sm *ServerMetrics) cpuPercent() (float64, string) {
	if sm.proc != nil {
		if p, err := sm.proc.CPUPercent(); err == nil {
			return p, "process"
		}
	}
	if ps, err := cpu.Percent(100*time.Millisecond, false); err == nil && len(ps) > 0 {
		return ps[0], "system"
	}
	return 0, "none"
}

func formatUptime(uptime time.Duration) string {
	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	default:
		return fmt.Sprintf("%dс", seconds)
	}
}
