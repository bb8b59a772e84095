package em3071x

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned when the sensor is used before a successful Init
	ErrNotReady = errors.New("sensor not initialized")

	// ErrConfigMissing marks an absent device description property.  It is
	// only ever logged, the property falls back to its default.
	ErrConfigMissing = errors.New("config property missing")

	// ErrInvalidLEDDrive is returned for LED drive codes outside the 3 bit
	// register field
	ErrInvalidLEDDrive = errors.New("invalid LED drive level")
)

// BusError is a register read or write failure reported by the Bus
type BusError struct {
	Op  string
	Reg uint8
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("%s register 0x%02X: %v", e.Op, e.Reg, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}
