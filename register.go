package em3071x

const (
	// Identification register and the value reported by the part
	ID      uint8 = 0x00
	IDValue uint8 = 0x31

	// Control register holding the PS enable bit, LED current and ALS bits
	CONFIG uint8 = 0x01

	// Interrupt status and clear register
	INT_STATUS uint8 = 0x02

	// Proximity interrupt thresholds
	THRESH_LOW  uint8 = 0x03
	THRESH_HIGH uint8 = 0x04

	// Raw proximity measurement
	PROXIMITY_RAW uint8 = 0x08

	// Chip reset.  Never written, a reset also clears the ALS configuration.
	RESET uint8 = 0x0E

	// Calibration offset, written pre-shifted by PS_OFFSET_SHIFT
	PS_OFFSET uint8 = 0x0F
)

const (
	PS_OFFSET_SHIFT = 1

	// CONFIG register fields
	ENABLE_BIT uint8 = 0x80
	LED_SHIFT        = 3
	LED_MASK   uint8 = 0x38
	ALS_MASK   uint8 = 0x07

	// INT_STATUS register fields
	INT_FLAG  uint8 = 0x80
	INT_MASK  uint8 = 0xF0
	INT_CLEAR uint8 = 0x00
)

// writeReg writes a 8 bit value to the register
func (v *EM3071X) writeReg(reg uint8, value uint8) error {

	if err := v.bus.WriteReg(reg, value); err != nil {
		return &BusError{Op: "write", Reg: reg, Err: err}
	}

	return nil
}

// readReg reads an 8-bit value from the register
func (v *EM3071X) readReg(reg uint8) (uint8, error) {

	val, err := v.bus.ReadReg(reg)

	if err != nil {
		return 0, &BusError{Op: "read", Reg: reg, Err: err}
	}

	return val, nil
}
