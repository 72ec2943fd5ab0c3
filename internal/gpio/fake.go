package gpio

// Transition records a single output write in call order.
type Transition struct {
	Channel Channel
	High    bool
}

// FakeOutputs is a test double that records every output write.
type FakeOutputs struct {
	// Transitions contains every Set call in order.
	Transitions []Transition

	// levels tracks the current level of each channel.
	levels map[Channel]bool

	// Closed tracks if Close was called.
	Closed bool

	// SetError, if set, will be returned by Set.
	SetError error
}

// NewFakeOutputs creates a FakeOutputs with all channels low.
func NewFakeOutputs() *FakeOutputs {
	return &FakeOutputs{levels: make(map[Channel]bool)}
}

// Set records the write and updates the tracked level.
func (f *FakeOutputs) Set(ch Channel, high bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Transitions = append(f.Transitions, Transition{Channel: ch, High: high})
	f.levels[ch] = high
	return nil
}

// Level returns the current level of the channel (low if never written).
func (f *FakeOutputs) Level(ch Channel) bool {
	return f.levels[ch]
}

// Close marks the outputs as closed.
func (f *FakeOutputs) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded transitions and levels.
func (f *FakeOutputs) Reset() {
	f.Transitions = nil
	f.levels = make(map[Channel]bool)
	f.Closed = false
	f.SetError = nil
}

// BothPhasesEverHigh replays the recorded transitions and reports whether
// phase A and phase B were ever high at the same instant.
func (f *FakeOutputs) BothPhasesEverHigh() bool {
	a, b := false, false
	for _, tr := range f.Transitions {
		switch tr.Channel {
		case PhaseA:
			a = tr.High
		case PhaseB:
			b = tr.High
		}
		if a && b {
			return true
		}
	}
	return false
}
