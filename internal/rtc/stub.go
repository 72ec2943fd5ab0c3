//go:build !linux

package rtc

import "errors"

// Raspberry Pi wiring defaults, mirrored for non-Linux builds.
const (
	DefaultDevice = "/dev/i2c-1"
	DefaultAddr   = 0x68
)

// DS3231 is not available on non-Linux platforms.
type DS3231 struct{}

// NewDS3231 returns an error on non-Linux platforms.
func NewDS3231(device string, addr int) (*DS3231, error) {
	return nil, errors.New("rtc: not supported on this platform (requires Linux)")
}

// Read is not implemented on non-Linux platforms.
func (d *DS3231) Read() (Time, error) {
	return Time{}, errors.New("rtc: not supported")
}

// Valid is not implemented on non-Linux platforms.
func (d *DS3231) Valid() (bool, error) {
	return false, errors.New("rtc: not supported")
}

// SetTime is not implemented on non-Linux platforms.
func (d *DS3231) SetTime(t Time) error {
	return errors.New("rtc: not supported")
}

// Close is not implemented on non-Linux platforms.
func (d *DS3231) Close() error {
	return nil
}
