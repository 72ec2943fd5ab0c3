//go:build linux

package rtc

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Raspberry Pi wiring defaults.
const (
	DefaultDevice = "/dev/i2c-1"
	DefaultAddr   = 0x68
)

// i2cSlave is the I2C_SLAVE ioctl request from linux/i2c-dev.h.
const i2cSlave = 0x0703

// DS3231 is a Maxim DS3231 RTC on the I2C character device.
type DS3231 struct {
	fd int
}

// NewDS3231 opens the I2C device and selects the RTC address.
func NewDS3231(device string, addr int) (*DS3231, error) {
	fd, err := unix.Open(device, unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", device, err)
	}
	if err := unix.IoctlSetInt(fd, i2cSlave, addr); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("select rtc address %#x: %w", addr, err)
	}
	return &DS3231{fd: fd}, nil
}

func (d *DS3231) readRegs(reg byte, buf []byte) error {
	if _, err := unix.Write(d.fd, []byte{reg}); err != nil {
		return fmt.Errorf("set register pointer %#x: %w", reg, err)
	}
	n, err := unix.Read(d.fd, buf)
	if err != nil {
		return fmt.Errorf("read registers at %#x: %w", reg, err)
	}
	if n != len(buf) {
		return fmt.Errorf("read registers at %#x: short read (%d of %d)", reg, n, len(buf))
	}
	return nil
}

func (d *DS3231) writeRegs(reg byte, data []byte) error {
	msg := append([]byte{reg}, data...)
	if _, err := unix.Write(d.fd, msg); err != nil {
		return fmt.Errorf("write registers at %#x: %w", reg, err)
	}
	return nil
}

// Read returns the current wall-clock time.
func (d *DS3231) Read() (Time, error) {
	var regs [7]byte
	if err := d.readRegs(regSeconds, regs[:]); err != nil {
		return Time{}, err
	}
	return decodeTime(regs), nil
}

// Valid reports whether the stored time survived since it was last set:
// false when the oscillator stop flag is set or the stored year is
// implausibly old.
func (d *DS3231) Valid() (bool, error) {
	var status [1]byte
	if err := d.readRegs(regStatus, status[:]); err != nil {
		return false, err
	}
	if status[0]&statusOSF != 0 {
		return false, nil
	}
	t, err := d.Read()
	if err != nil {
		return false, err
	}
	return t.Year >= MinValidYear, nil
}

// SetTime writes the time and clears the oscillator stop flag.
func (d *DS3231) SetTime(t Time) error {
	regs := encodeTime(t)
	if err := d.writeRegs(regSeconds, regs[:]); err != nil {
		return err
	}
	var status [1]byte
	if err := d.readRegs(regStatus, status[:]); err != nil {
		return err
	}
	return d.writeRegs(regStatus, []byte{status[0] &^ statusOSF})
}

// Close releases the I2C device.
func (d *DS3231) Close() error {
	return unix.Close(d.fd)
}
