package gpio

import (
	"errors"
	"testing"

	"github.com/sweeney/minute-clock/internal/logic"
)

func TestCoilEnergizePolarityA(t *testing.T) {
	f := NewFakeOutputs()
	c := &Coil{Out: f}

	c.Energize(logic.PolarityA)

	if !f.Level(PhaseA) {
		t.Error("phase A should be high")
	}
	if f.Level(PhaseB) {
		t.Error("phase B should be low")
	}
}

func TestCoilEnergizePolarityB(t *testing.T) {
	f := NewFakeOutputs()
	c := &Coil{Out: f}

	c.Energize(logic.PolarityB)

	if f.Level(PhaseA) {
		t.Error("phase A should be low")
	}
	if !f.Level(PhaseB) {
		t.Error("phase B should be high")
	}
}

func TestCoilRelease(t *testing.T) {
	f := NewFakeOutputs()
	c := &Coil{Out: f}

	c.Energize(logic.PolarityA)
	c.Release()

	if f.Level(PhaseA) || f.Level(PhaseB) {
		t.Error("both phases should be low after Release")
	}
}

func TestCoilNeverDrivesBothPhases(t *testing.T) {
	f := NewFakeOutputs()
	c := &Coil{Out: f}

	// A full alternating sequence, including back-to-back energizes.
	c.Energize(logic.PolarityA)
	c.Release()
	c.Energize(logic.PolarityB)
	c.Release()
	c.Energize(logic.PolarityB)
	c.Energize(logic.PolarityA)
	c.Release()

	if f.BothPhasesEverHigh() {
		t.Error("phase A and phase B were high at the same instant")
	}
}

func TestCoilSwallowsWriteErrors(t *testing.T) {
	f := NewFakeOutputs()
	f.SetError = errors.New("simulated error")
	c := &Coil{Out: f}

	// Must not panic or propagate; the pulse sequence keeps its timing.
	c.Energize(logic.PolarityA)
	c.Release()
}

func TestLampSet(t *testing.T) {
	f := NewFakeOutputs()
	l := &Lamp{Out: f}

	l.Set(true)
	if !f.Level(LED) {
		t.Error("LED should be high")
	}
	l.Set(false)
	if f.Level(LED) {
		t.Error("LED should be low")
	}

	// Lamp only ever touches the LED channel.
	for _, tr := range f.Transitions {
		if tr.Channel != LED {
			t.Errorf("lamp wrote to %s", tr.Channel)
		}
	}
}
