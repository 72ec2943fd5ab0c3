// Package status provides a thread-safe status tracker for the minute-clock
// daemon. It is read by HTTP handlers and embedded in MQTT system events.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/minute-clock/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	PulseMs     int64
	DebounceMs  int64
	LEDMs       int64
	HeartbeatMs int64
	Broker      string
	HTTPAddr    string
	I2CDevice   string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	NextPolarity  string // "A" or "B"
	LastMinute    int    // -1 before the first pulse
	Counts        logic.Counts
	RTCValid      bool
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
			NextPolarity: logic.PolarityA.String(),
			LastMinute:   -1,
			StartTime:    startTime,
			Config:       cfg,
		},
	}
}

// Update sets the next pulse polarity, last processed minute, and pulse
// counts. Called from runLoop on every poll.
func (t *Tracker) Update(nextPolarity logic.Polarity, lastMinute uint8, counts logic.Counts) {
	t.mu.Lock()
	t.snap.NextPolarity = nextPolarity.String()
	if lastMinute == logic.MinuteUnset {
		t.snap.LastMinute = -1
	} else {
		t.snap.LastMinute = int(lastMinute)
	}
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetRTCValid sets whether the RTC reported a valid stored time at startup.
func (t *Tracker) SetRTCValid(valid bool) {
	t.mu.Lock()
	t.snap.RTCValid = valid
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
