package em3071x

import "time"

// SetTimeout set the duration Watch waits for an interrupt edge before
// checking for cancellation
func (v *EM3071X) SetTimeout(timeout time.Duration) {
	v.edgeTimeout = timeout
}

// TimeoutOccurred reports whether an edge wait expired without an interrupt
// since the last call
func (v *EM3071X) TimeoutOccurred() bool {
	tmp := v.didTimeout
	v.didTimeout = false
	return tmp
}

// waitTimeout returns the edge wait duration, with a non positive timeout
// meaning wait forever
func (v *EM3071X) waitTimeout() time.Duration {

	if v.edgeTimeout <= 0 {
		return -1
	}

	return v.edgeTimeout
}
