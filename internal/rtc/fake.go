package rtc

import "errors"

// FakeDevice is a test double that returns scripted wall-clock readings.
type FakeDevice struct {
	// Samples contains scripted readings. Each call to Read() consumes
	// the next sample; once exhausted, the last sample repeats.
	Samples []Time

	// index tracks current position in Samples
	index int

	// ValidFlag controls the return value of Valid.
	ValidFlag bool

	// SetCalls records every SetTime argument.
	SetCalls []Time

	// Closed tracks if Close was called.
	Closed bool

	// ReadError, ValidError and SetError, if set, are returned by the
	// corresponding methods.
	ReadError  error
	ValidError error
	SetError   error
}

// NewFakeDevice creates a FakeDevice with the given samples, reporting a
// valid stored time.
func NewFakeDevice(samples []Time) *FakeDevice {
	return &FakeDevice{Samples: samples, ValidFlag: true}
}

// Read returns the next scripted sample.
func (f *FakeDevice) Read() (Time, error) {
	if f.ReadError != nil {
		return Time{}, f.ReadError
	}

	if len(f.Samples) == 0 {
		return Time{}, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample, nil
}

// Valid returns the configured validity flag.
func (f *FakeDevice) Valid() (bool, error) {
	if f.ValidError != nil {
		return false, f.ValidError
	}
	return f.ValidFlag, nil
}

// SetTime records the call and marks the stored time valid.
func (f *FakeDevice) SetTime(t Time) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.SetCalls = append(f.SetCalls, t)
	f.ValidFlag = true
	return nil
}

// Close marks the device as closed.
func (f *FakeDevice) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the device to the beginning of its samples.
func (f *FakeDevice) Reset() {
	f.index = 0
	f.Closed = false
}
