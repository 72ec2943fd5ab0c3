package logic

import "time"

// Lamp sets the indicator output level.
type Lamp interface {
	Set(on bool)
}

// Indicator owns the heartbeat LED. It is lit at pulse-fire time and
// turned off, non-blockingly, once the configured duration has elapsed.
// Update runs once per loop iteration, so the LED timing is decoupled
// from the blocking pulse sequence; expiry may overrun slightly when it
// falls inside a pulse, since Update cannot run during that block.
type Indicator struct {
	lamp      Lamp
	duration  time.Duration
	active    bool
	startedAt time.Time
}

// NewIndicator creates an indicator that stays lit for the given duration.
func NewIndicator(lamp Lamp, duration time.Duration) *Indicator {
	return &Indicator{lamp: lamp, duration: duration}
}

// Activate lights the lamp and records the activation time.
// Called by the pulse driver at pulse-fire time.
func (i *Indicator) Activate(now time.Time) {
	i.active = true
	i.startedAt = now
	i.lamp.Set(true)
}

// Update turns the lamp off once the duration has elapsed. Non-blocking.
func (i *Indicator) Update(now time.Time) {
	if !i.active {
		return
	}
	if now.Sub(i.startedAt) >= i.duration {
		i.lamp.Set(false)
		i.active = false
	}
}

// Active reports whether the lamp is currently lit.
func (i *Indicator) Active() bool {
	return i.active
}
