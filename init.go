package em3071x

import "fmt"

// Init puts the sensor into a known state and applies the configuration.  The
// proximity sensor is always disabled first so the chip starts from Off, the
// ambient light settings in CONFIG are left untouched.  Any register write
// failure aborts Init.
func (v *EM3071X) Init() error {

	v.log.Printf("The proximity driver is starting")

	v.ready = false

	if _, err := v.setActive(false); err != nil {
		return fmt.Errorf("Error disabling sensor, %w", err)
	}

	// a chip reset is avoided as it would clear the ALS configuration
	if err := v.writeReg(INT_STATUS, INT_CLEAR); err != nil {
		v.log.Printf("write INT_STATUS reg fail: %v", err)
		return err
	}

	offset := v.config.Offset << PS_OFFSET_SHIFT

	if err := v.writeReg(PS_OFFSET, offset); err != nil {
		v.log.Printf("write PS_OFFSET reg fail: %v", err)
		return err
	}

	if err := v.setThreshold(v.config.ThresholdHigh, v.config.ThresholdLow); err != nil {
		return fmt.Errorf("Error setting threshold, %w", err)
	}

	v.ready = true

	return nil
}

// setThreshold writes the interrupt thresholds, low register first
func (v *EM3071X) setThreshold(high, low uint16) error {

	if low > 0xFF || high > 0xFF {
		v.log.Printf("thresholds exceed register width, writing low byte "+
			"(high = %d, low = %d)", high, low)
	}

	if err := v.writeReg(THRESH_LOW, uint8(low)); err != nil {
		v.log.Printf("fail to write THRESH_LOW: %v", err)
		return err
	}

	if err := v.writeReg(THRESH_HIGH, uint8(high)); err != nil {
		v.log.Printf("fail to write THRESH_HIGH: %v", err)
		return err
	}

	v.log.Printf("set threshold_high = %d, set threshold_low = %d", high, low)

	return nil
}
