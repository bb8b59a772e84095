package em3071x

import "fmt"

// LEDDrive is the emitter current setting, stored in a 3 bit field of the
// CONFIG register.  The register codes are not ordered by current.
type LEDDrive uint8

const (
	LED15mA  LEDDrive = 0x00
	LED30mA  LEDDrive = 0x01
	LED60mA  LEDDrive = 0x02
	LED120mA LEDDrive = 0x03
	LED25mA  LEDDrive = 0x04
	LED50mA  LEDDrive = 0x05
	LED100mA LEDDrive = 0x06
	LED200mA LEDDrive = 0x07
)

const (
	// DefaultLEDDrive is used when the device description has no ps_power
	DefaultLEDDrive = LED50mA
	// DefaultOffset is used when the device description has no ps_offset
	DefaultOffset uint8 = 0x05
)

var ledMilliamps = [...]uint16{15, 30, 60, 120, 25, 50, 100, 200}

// Milliamps returns the emitter current in mA, or 0 for an invalid code
func (l LEDDrive) Milliamps() uint16 {

	if !l.Valid() {
		return 0
	}

	return ledMilliamps[l]
}

// Valid reports whether l fits the register field
func (l LEDDrive) Valid() bool {
	return l <= LED200mA
}

// String implement Stringer interface for LEDDrive
func (l LEDDrive) String() string {

	if !l.Valid() {
		return fmt.Sprintf("LEDDrive(%d)", uint8(l))
	}

	return fmt.Sprintf("%dmA", ledMilliamps[l])
}

// ParseLEDDrive returns the LEDDrive code for a current given in mA
func ParseLEDDrive(mA uint16) (LEDDrive, error) {

	for code, v := range ledMilliamps {
		if v == mA {
			return LEDDrive(code), nil
		}
	}

	return 0, fmt.Errorf("%w: %dmA", ErrInvalidLEDDrive, mA)
}

// Config holds the per device calibration applied by Init.  The thresholds
// are written to the chip as their low byte.
type Config struct {
	LEDDrive      LEDDrive
	Offset        uint8
	ThresholdLow  uint16
	ThresholdHigh uint16
}

// DefaultConfig returns the configuration used for an empty device
// description
func DefaultConfig() Config {
	return Config{
		LEDDrive: DefaultLEDDrive,
		Offset:   DefaultOffset,
	}
}

// Validate checks fields that cannot be represented in the chip registers.
// Threshold order is not checked.
func (c Config) Validate() error {

	if !c.LEDDrive.Valid() {
		return fmt.Errorf("%w: code %d", ErrInvalidLEDDrive, uint8(c.LEDDrive))
	}

	return nil
}
