//go:build !linux

package gpio

import "errors"

// RealOutputs is not available on non-Linux platforms.
type RealOutputs struct{}

// NewRealOutputs returns an error on non-Linux platforms.
func NewRealOutputs(pinPhaseA, pinPhaseB, pinLED int) (*RealOutputs, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Set is not implemented on non-Linux platforms.
func (r *RealOutputs) Set(ch Channel, high bool) error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *RealOutputs) Close() error {
	return nil
}
