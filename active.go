package em3071x

// DeviceState is the proximity sensor power state as last confirmed by a
// successful CONFIG register write
type DeviceState uint8

const (
	Off DeviceState = iota
	Active
)

// String implement Stringer interface for DeviceState
func (s DeviceState) String() string {
	switch s {
	case Off:
		return "off"
	case Active:
		return "active"
	default:
		return "unknown state"
	}
}

// State returns the cached sensor state
func (v *EM3071X) State() DeviceState {
	return v.state
}

// SetActive enables or disables proximity sensing and returns the state the
// sensor is in after the attempt.  The cached state only changes when the
// CONFIG write succeeds.
func (v *EM3071X) SetActive(enable bool) (DeviceState, error) {

	if !v.ready {
		return v.state, ErrNotReady
	}

	return v.setActive(enable)
}

// setActive performs the CONFIG read-modify-write.  When enabling, the enable
// bit and LED current are set outright while the ALS bits are carried over.
// When disabling, only the enable bit is cleared.
func (v *EM3071X) setActive(enable bool) (DeviceState, error) {

	v.log.Printf("activating proximity sensor (enable = %t)", enable)

	ctrl, err := v.readReg(CONFIG)

	if err != nil {
		return v.state, err
	}

	target := Off

	if enable {
		ctrl = ENABLE_BIT | (uint8(v.config.LEDDrive) << LED_SHIFT) | (ALS_MASK & ctrl)
		target = Active
	} else {
		ctrl &^= ENABLE_BIT
	}

	if err := v.writeReg(CONFIG, ctrl); err != nil {
		v.log.Printf("fail to active sensor: %v", err)
		return v.state, err
	}

	v.state = target

	return v.state, nil
}
