package input

import (
	"sync/atomic"
	"time"
)

// Metrics counts what the dispatcher did with each event.
type Metrics struct {
	keyEvents      atomic.Uint64
	charEvents     atomic.Uint64
	droppedRepeats atomic.Uint64
	hookRejections atomic.Uint64
	overrides      atomic.Uint64
	commands       atomic.Uint64
	surfaceKeys    atomic.Uint64
	surfaceChars   atomic.Uint64

	// Start time for uptime calculation
	startTime time.Time

	// Enable flag
	enabled atomic.Bool
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether metrics collection is enabled.
func (m *Metrics) IsEnabled() bool {
	return m.enabled.Load()
}

func (m *Metrics) add(c *atomic.Uint64) {
	if !m.enabled.Load() {
		return
	}
	c.Add(1)
}

func (m *Metrics) recordKeyEvent()      { m.add(&m.keyEvents) }
func (m *Metrics) recordCharEvent()     { m.add(&m.charEvents) }
func (m *Metrics) recordDroppedRepeat() { m.add(&m.droppedRepeats) }
func (m *Metrics) recordHookRejection() { m.add(&m.hookRejections) }
func (m *Metrics) recordOverride()      { m.add(&m.overrides) }
func (m *Metrics) recordCommand()       { m.add(&m.commands) }
func (m *Metrics) recordSurfaceKey()    { m.add(&m.surfaceKeys) }
func (m *Metrics) recordSurfaceChar()   { m.add(&m.surfaceChars) }

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	KeyEvents      uint64
	CharEvents     uint64
	DroppedRepeats uint64
	HookRejections uint64
	Overrides      uint64
	Commands       uint64
	SurfaceKeys    uint64
	SurfaceChars   uint64

	// Uptime
	Uptime time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		KeyEvents:      m.keyEvents.Load(),
		CharEvents:     m.charEvents.Load(),
		DroppedRepeats: m.droppedRepeats.Load(),
		HookRejections: m.hookRejections.Load(),
		Overrides:      m.overrides.Load(),
		Commands:       m.commands.Load(),
		SurfaceKeys:    m.surfaceKeys.Load(),
		SurfaceChars:   m.surfaceChars.Load(),
		Uptime:         time.Since(m.startTime),
	}
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.keyEvents.Store(0)
	m.charEvents.Store(0)
	m.droppedRepeats.Store(0)
	m.hookRejections.Store(0)
	m.overrides.Store(0)
	m.commands.Store(0)
	m.surfaceKeys.Store(0)
	m.surfaceChars.Store(0)
	m.startTime = time.Now()
}
