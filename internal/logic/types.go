// Package logic contains the minute pulse state machine for the clock movement.
// This package has NO hardware dependencies (no GPIO, MQTT, or RTC access).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// Polarity selects which phase pair the next pulse energizes.
type Polarity bool

const (
	// PolarityA drives phase A high and phase B low.
	PolarityA Polarity = false
	// PolarityB drives phase A low and phase B high.
	PolarityB Polarity = true
)

// String returns "A" or "B".
func (p Polarity) String() string {
	if p == PolarityA {
		return "A"
	}
	return "B"
}

// MinuteUnset is the last-processed-minute sentinel. It sits outside the
// valid 0-59 range so the first minute sample always triggers a pulse.
const MinuteUnset uint8 = 255

// Input is a single wall-clock sample plus the monotonic time it was taken.
type Input struct {
	Minute int // 0-59
	Second int // 0-59
	Time   time.Time
}

// Pulse records one fired pulse.
type Pulse struct {
	Timestamp time.Time
	Minute    int
	Polarity  Polarity // the polarity that was driven
}

// Counts tracks the number of fired pulses since startup.
type Counts struct {
	Total  int
	PhaseA int
	PhaseB int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    Counts
}
