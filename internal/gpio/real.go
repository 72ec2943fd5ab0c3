//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealOutputs drives GPIO on actual hardware using Linux GPIO character device.
type RealOutputs struct {
	chip  *gpiocdev.Chip
	lines map[Channel]*gpiocdev.Line
}

// NewRealOutputs requests the three output lines on actual Raspberry Pi
// hardware. All lines are driven low at request time so the coil is
// de-energized and the LED dark before the control loop starts.
func NewRealOutputs(pinPhaseA, pinPhaseB, pinLED int) (*RealOutputs, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	r := &RealOutputs{
		chip:  chip,
		lines: make(map[Channel]*gpiocdev.Line, 3),
	}

	pins := []struct {
		ch  Channel
		pin int
	}{
		{PhaseA, pinPhaseA},
		{PhaseB, pinPhaseB},
		{LED, pinLED},
	}
	for _, p := range pins {
		line, err := chip.RequestLine(p.pin, gpiocdev.AsOutput(0))
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("request %s pin %d: %w", p.ch, p.pin, err)
		}
		r.lines[p.ch] = line
	}

	return r, nil
}

// Set drives the channel high or low.
func (r *RealOutputs) Set(ch Channel, high bool) error {
	line, ok := r.lines[ch]
	if !ok {
		return fmt.Errorf("set %s: no such channel", ch)
	}
	v := 0
	if high {
		v = 1
	}
	if err := line.SetValue(v); err != nil {
		return fmt.Errorf("set %s: %w", ch, err)
	}
	return nil
}

// Close drives all lines low before releasing them so the coil is never
// left energized across a restart, then closes the chip.
func (r *RealOutputs) Close() error {
	var errs []error

	for ch, line := range r.lines {
		if line == nil {
			continue
		}
		if err := line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("lower %s: %w", ch, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", ch, err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
