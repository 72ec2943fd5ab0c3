package rtc

import "time"

// DS3231 register map. Timekeeping registers 0x00-0x06 hold BCD-encoded
// seconds through year; 0x0F is the status register.
const (
	regSeconds = 0x00
	regStatus  = 0x0F

	// Oscillator Stop Flag: set by the chip whenever the oscillator has
	// stopped, i.e. the stored time was lost.
	statusOSF = 0x80
)

func bcdToDec(b byte) int {
	return int(b>>4)*10 + int(b&0x0F)
}

func decToBCD(d int) byte {
	return byte(d/10)<<4 | byte(d%10)
}

// decodeTime converts the seven timekeeping registers to a Time.
// The hour register is assumed to be in 24-hour mode; the century bit in
// the month register is ignored (years are 2000-based).
func decodeTime(regs [7]byte) Time {
	return Time{
		Second: bcdToDec(regs[0] & 0x7F),
		Minute: bcdToDec(regs[1] & 0x7F),
		Hour:   bcdToDec(regs[2] & 0x3F),
		Day:    bcdToDec(regs[4] & 0x3F),
		Month:  time.Month(bcdToDec(regs[5] & 0x1F)),
		Year:   2000 + bcdToDec(regs[6]&0xFF),
	}
}

// encodeTime converts a Time to the seven timekeeping registers. The
// day-of-week register (0x03) is written as 1; nothing here reads it.
func encodeTime(t Time) [7]byte {
	return [7]byte{
		decToBCD(t.Second),
		decToBCD(t.Minute),
		decToBCD(t.Hour),
		1,
		decToBCD(t.Day),
		decToBCD(int(t.Month)),
		decToBCD(t.Year % 100),
	}
}
