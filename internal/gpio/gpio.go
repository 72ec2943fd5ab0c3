// Package gpio provides GPIO output driving with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Channel identifies one of the driver's output lines.
type Channel int

const (
	// PhaseA and PhaseB are the two coil phases of the clock movement.
	PhaseA Channel = iota
	PhaseB
	// LED is the heartbeat indicator.
	LED
)

// String returns a short name for log messages.
func (c Channel) String() string {
	switch c {
	case PhaseA:
		return "PHASE_A"
	case PhaseB:
		return "PHASE_B"
	case LED:
		return "LED"
	}
	return "UNKNOWN"
}

// Outputs sets the logical level of output channels.
type Outputs interface {
	// Set drives the channel high or low.
	Set(ch Channel, high bool) error

	// Close de-energizes all channels and releases GPIO resources.
	Close() error
}

// Pin definitions (BCM numbering)
const (
	DefaultPinPhaseA = 17 // coil phase A
	DefaultPinPhaseB = 27 // coil phase B
	DefaultPinLED    = 22 // heartbeat LED
)
