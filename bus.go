package em3071x

import (
	"fmt"

	"github.com/swdee/go-i2c"
	periphi2c "periph.io/x/conn/v3/i2c"
	"tinygo.org/x/drivers"
)

// Bus is the register protocol used by the sensor: single byte registers
// addressed by a single byte.
type Bus interface {
	ReadReg(reg uint8) (uint8, error)
	WriteReg(reg uint8, value uint8) error
}

// I2CBus adapts a go-i2c connection to the Bus interface
type I2CBus struct {
	conn *i2c.Options
}

// NewI2CBus returns a Bus on an opened go-i2c connection
func NewI2CBus(conn *i2c.Options) *I2CBus {
	return &I2CBus{conn: conn}
}

// WriteReg writes a 8 bit value to the register
func (b *I2CBus) WriteReg(reg uint8, value uint8) error {

	if _, err := b.conn.WriteBytes([]byte{reg, value}); err != nil {
		return err
	}

	return nil
}

// ReadReg reads an 8-bit value from the register
func (b *I2CBus) ReadReg(reg uint8) (uint8, error) {

	// Write the register address.
	if _, err := b.conn.WriteBytes([]byte{reg}); err != nil {
		return 0, err
	}

	// Read one byte.
	buf := make([]byte, 1)
	n, err := b.conn.ReadBytes(buf)

	if err != nil {
		return 0, err
	}

	if n < 1 {
		return 0, fmt.Errorf("readReg: insufficient data")
	}

	return buf[0], nil
}

// PeriphBus adapts a periph.io I2C device to the Bus interface
type PeriphBus struct {
	dev *periphi2c.Dev
}

// NewPeriphBus returns a Bus on a periph.io device, eg.
// &i2c.Dev{Addr: 0x24, Bus: bus}
func NewPeriphBus(dev *periphi2c.Dev) *PeriphBus {
	return &PeriphBus{dev: dev}
}

func (b *PeriphBus) WriteReg(reg uint8, value uint8) error {
	return b.dev.Tx([]byte{reg, value}, nil)
}

func (b *PeriphBus) ReadReg(reg uint8) (uint8, error) {

	buf := make([]byte, 1)

	if err := b.dev.Tx([]byte{reg}, buf); err != nil {
		return 0, err
	}

	return buf[0], nil
}

// TinyGoBus adapts a TinyGo drivers.I2C bus to the Bus interface
type TinyGoBus struct {
	bus  drivers.I2C
	addr uint16
}

// NewTinyGoBus returns a Bus talking to the device at addr on bus
func NewTinyGoBus(bus drivers.I2C, addr uint16) *TinyGoBus {
	return &TinyGoBus{bus: bus, addr: addr}
}

func (b *TinyGoBus) WriteReg(reg uint8, value uint8) error {
	return b.bus.Tx(b.addr, []byte{reg, value}, nil)
}

func (b *TinyGoBus) ReadReg(reg uint8) (uint8, error) {

	buf := make([]byte, 1)

	if err := b.bus.Tx(b.addr, []byte{reg}, buf); err != nil {
		return 0, err
	}

	return buf[0], nil
}
