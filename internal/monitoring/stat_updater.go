package monitoring

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/lifetrack/lifetrack-be/internal/services"
)

// Snapshot is the most recent host resource sample, served by the status
// endpoint.
type Snapshot struct {
	CPUPercent  float64   `json:"cpu_percent"`
	MemPercent  float64   `json:"mem_percent"`
	DiskPercent float64   `json:"disk_percent"`
	SampledAt   time.Time `json:"sampled_at"`
}

// StatUpdater periodically samples host CPU, memory and disk usage. It keeps
// the latest snapshot for the status endpoint and raises a warn-level audit
// event when CPU stays high.
type StatUpdater struct {
	eventSvc services.EventServiceProvider
	ticker   *time.Ticker
	done     chan bool

	mu            sync.RWMutex
	snapshot      Snapshot
	lastHighCPUAt time.Time
}

// NewStatUpdater creates a new StatUpdater.
func NewStatUpdater(eventSvc services.EventServiceProvider) *StatUpdater {
	return &StatUpdater{
		eventSvc: eventSvc,
		done:     make(chan bool),
	}
}

// Run starts the periodic updates.
func (su *StatUpdater) Run() {
	log.Info().Msg("Starting background stat updater...")
	su.ticker = time.NewTicker(15 * time.Second)
	defer su.ticker.Stop()

	// Run once immediately on start
	su.sample()

	for {
		select {
		case <-su.done:
			log.Info().Msg("Stopping background stat updater.")
			return
		case <-su.ticker.C:
			su.sample()
		}
	}
}

// Stop halts the periodic updates.
func (su *StatUpdater) Stop() {
	su.done <- true
}

// Latest returns the most recent snapshot.
func (su *StatUpdater) Latest() Snapshot {
	su.mu.RLock()
	defer su.mu.RUnlock()
	return su.snapshot
}

func (su *StatUpdater) sample() {
	snap := Snapshot{SampledAt: time.Now()}

	if pcts, err := cpu.Percent(0, false); err != nil {
		log.Warn().Err(err).Msg("StatUpdater: Could not sample CPU usage")
	} else if len(pcts) > 0 {
		snap.CPUPercent = pcts[0]
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		log.Warn().Err(err).Msg("StatUpdater: Could not sample memory usage")
	} else {
		snap.MemPercent = vm.UsedPercent
	}

	if du, err := disk.Usage("/"); err != nil {
		log.Warn().Err(err).Msg("StatUpdater: Could not sample disk usage")
	} else {
		snap.DiskPercent = du.UsedPercent
	}

	su.mu.Lock()
	su.snapshot = snap
	su.mu.Unlock()

	su.checkAndAlertForHighCPU(snap)
}

func (su *StatUpdater) checkAndAlertForHighCPU(snap Snapshot) {
	const highCPUThreshold = 90.0
	const alertCooldown = 15 * time.Minute

	if snap.CPUPercent <= highCPUThreshold {
		return
	}

	su.mu.Lock()
	recent := time.Since(su.lastHighCPUAt) < alertCooldown
	if !recent {
		su.lastHighCPUAt = time.Now()
	}
	su.mu.Unlock()

	if recent {
		return
	}

	msg := fmt.Sprintf("High CPU usage (%.1f%%) detected on host.", snap.CPUPercent)
	if err := su.eventSvc.CreateEvent("system.alert.cpu", "warn", msg, nil); err != nil {
		log.Error().Err(err).Msg("StatUpdater: Failed to record high CPU event")
	}
}
