package logic

import "time"

// Waiter provides the blocking waits used inside the pulse sequence.
// The wait strategy is explicit because exact timing is a functional
// requirement of the debounce guard, not an incidental time.Sleep.
type Waiter interface {
	// Hold blocks for the pulse-width hold. A coarse sleep is acceptable.
	Hold(d time.Duration)

	// Spin blocks for the debounce guard with a busy-wait, trading CPU
	// for precision so the quiet period never overshoots.
	Spin(d time.Duration)
}

// SleepSpinWaiter is the hardware waiter: time.Sleep for holds, a
// busy-wait on the monotonic clock for spins.
type SleepSpinWaiter struct{}

// Hold sleeps for d.
func (SleepSpinWaiter) Hold(d time.Duration) {
	time.Sleep(d)
}

// Spin busy-waits until d has elapsed on the monotonic clock.
func (SleepSpinWaiter) Spin(d time.Duration) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
	}
}

// FakeWaiter records waits without blocking, for tests.
type FakeWaiter struct {
	// Holds and Spins contain the requested durations in call order.
	Holds []time.Duration
	Spins []time.Duration

	// OnHold and OnSpin, if set, are invoked with the duration. Tests use
	// them to advance fake clocks or record interleaving.
	OnHold func(d time.Duration)
	OnSpin func(d time.Duration)
}

// Hold records the duration.
func (f *FakeWaiter) Hold(d time.Duration) {
	f.Holds = append(f.Holds, d)
	if f.OnHold != nil {
		f.OnHold(d)
	}
}

// Spin records the duration.
func (f *FakeWaiter) Spin(d time.Duration) {
	f.Spins = append(f.Spins, d)
	if f.OnSpin != nil {
		f.OnSpin(d)
	}
}
