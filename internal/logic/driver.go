package logic

import (
	"sync"
	"time"
)

// Coil drives the two-phase coil actuator of the clock movement.
type Coil interface {
	// Energize drives the polarity-selected phase pair.
	Energize(p Polarity)
	// Release de-energizes both phases.
	Release()
}

// Driver owns pulse polarity and last-processed-minute state and fires one
// alternating-polarity pulse per minute boundary.
//
// A minute boundary is detected by observing second == 0 on a sample. If
// polling jitter means no sample lands on second 0 for a given minute,
// that minute's pulse is skipped permanently; there is no catch-up. The
// polling interval must stay well under one second to keep misses rare.
type Driver struct {
	coil          Coil
	ind           *Indicator
	wait          Waiter
	pulseDuration time.Duration
	debounce      time.Duration

	// mu guards the polarity toggle. The control loop is the only writer
	// today; the critical section is reserved for interrupt-driven
	// extensions that may touch polarity asynchronously.
	mu         sync.Mutex
	polarity   Polarity
	lastMinute uint8

	counts        Counts
	startTime     time.Time
	lastHeartbeat time.Time
}

// NewDriver creates a driver with the given pulse and debounce durations.
// The startTime is used for calculating uptime in heartbeat events.
func NewDriver(coil Coil, ind *Indicator, wait Waiter, pulseDuration, debounce time.Duration, startTime time.Time) *Driver {
	return &Driver{
		coil:          coil,
		ind:           ind,
		wait:          wait,
		pulseDuration: pulseDuration,
		debounce:      debounce,
		lastMinute:    MinuteUnset,
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Tick evaluates the minute-boundary condition for one wall-clock sample
// and runs the full pulse sequence when it is met: energize the selected
// phase pair, hold for the pulse duration, release both phases, toggle
// polarity, then hold the debounce guard. The sequence blocks the caller
// for the pulse duration plus the debounce interval.
// Returns the fired pulse, or nil if this sample fired nothing.
func (d *Driver) Tick(in Input) *Pulse {
	if uint8(in.Minute) == d.lastMinute || in.Second != 0 {
		return nil
	}
	d.lastMinute = uint8(in.Minute)
	p := d.polarity

	d.ind.Activate(in.Time)
	d.coil.Energize(p)
	d.wait.Hold(d.pulseDuration)
	d.coil.Release()

	d.mu.Lock()
	d.polarity = !d.polarity
	d.mu.Unlock()

	// Quiet period after release. Spin, not sleep: a coarse sleep could
	// overrun past the one-second trigger window.
	d.wait.Spin(d.debounce)

	d.counts.Total++
	if p == PolarityA {
		d.counts.PhaseA++
	} else {
		d.counts.PhaseB++
	}

	return &Pulse{Timestamp: in.Time, Minute: in.Minute, Polarity: p}
}

// CurrentState returns the polarity of the next pulse and the last
// processed minute (MinuteUnset before the first pulse).
func (d *Driver) CurrentState() (Polarity, uint8) {
	d.mu.Lock()
	p := d.polarity
	d.mu.Unlock()
	return p, d.lastMinute
}

// CountsSnapshot returns the pulse counts since startup.
func (d *Driver) CountsSnapshot() Counts {
	return d.counts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since
// the last heartbeat (or startup). Returns nil if the interval has not
// elapsed or if interval is <= 0 (disabled).
func (d *Driver) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if now.Sub(d.lastHeartbeat) < interval {
		return nil
	}

	d.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(d.startTime),
		Counts:    d.counts,
	}
}
