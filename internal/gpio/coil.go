package gpio

import (
	"log"

	"github.com/sweeney/minute-clock/internal/logic"
)

// Coil adapts Outputs to the pulse driver's coil interface. Write
// failures are logged and swallowed: the pulse sequence has no recovery
// path for a failed line write and must keep its timing.
type Coil struct {
	Out Outputs
}

// Energize drives the polarity-selected phase pair (A: phase A high,
// phase B low; B: phase A low, phase B high). The inactive phase is
// lowered first so both phases are never high together.
func (c *Coil) Energize(p logic.Polarity) {
	if p == logic.PolarityA {
		c.set(PhaseB, false)
		c.set(PhaseA, true)
	} else {
		c.set(PhaseA, false)
		c.set(PhaseB, true)
	}
}

// Release de-energizes both phases.
func (c *Coil) Release() {
	c.set(PhaseA, false)
	c.set(PhaseB, false)
}

func (c *Coil) set(ch Channel, high bool) {
	if err := c.Out.Set(ch, high); err != nil {
		log.Printf("gpio: set %s: %v", ch, err)
	}
}

// Lamp adapts Outputs to the indicator's lamp interface.
type Lamp struct {
	Out Outputs
}

// Set drives the LED channel, logging write failures.
func (l *Lamp) Set(on bool) {
	if err := l.Out.Set(LED, on); err != nil {
		log.Printf("gpio: set %s: %v", LED, err)
	}
}
