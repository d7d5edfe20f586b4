// Package status provides a thread-safe status tracker for the tower daemon.
// It is read by HTTP handlers and by the system-event payload builder.
package status

import (
	"sync"
	"time"

	"github.com/pranavrao145/sad-cat-fixer/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	TickMs           int64
	SettleMs         int64
	PresetIntervalMs int64
	HeartbeatMs      int64
	Broker           string
	HTTPAddr         string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Mode          logic.Mode
	Preset        logic.Preset
	Angle         int
	Speed         int
	LaserOn       bool
	Counts        logic.EventCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Mode:      logic.ModeAutomatic,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the controller state. Called from runLoop on every tick.
func (t *Tracker) Update(mode logic.Mode, preset logic.Preset, angle, speed int, laserOn bool, counts logic.EventCounts) {
	t.mu.Lock()
	t.snap.Mode = mode
	t.snap.Preset = preset
	t.snap.Angle = angle
	t.snap.Speed = speed
	t.snap.LaserOn = laserOn
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
