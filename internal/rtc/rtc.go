// Package rtc provides wall-clock time from a battery-backed RTC with
// hardware abstraction. The real implementation is a DS3231 on the Linux
// I2C character device. The fake implementation allows testing without
// hardware.
package rtc

import "time"

// Time is one wall-clock reading at second granularity.
type Time struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

// Std converts the reading to a time.Time in UTC.
func (t Time) Std() time.Time {
	return time.Date(t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, 0, time.UTC)
}

// FromStd converts a time.Time to a reading, dropping sub-second precision.
func FromStd(t time.Time) Time {
	return Time{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// Reference is the fixed baseline written to the RTC when it reports an
// invalid time after power loss.
var Reference = Time{Year: 2000, Month: time.January, Day: 1}

// MinValidYear is the oldest plausible stored year. Anything earlier is
// treated as a factory default, same as the power-loss flag.
const MinValidYear = 2020

// Device reads and sets the hardware clock.
type Device interface {
	// Read returns the current wall-clock time.
	Read() (Time, error)

	// Valid reports whether the stored time survived since it was last
	// set. False signals power loss or an implausible stored value.
	Valid() (bool, error)

	// SetTime writes the time and marks the stored value valid.
	SetTime(t Time) error

	// Close releases the device.
	Close() error
}
