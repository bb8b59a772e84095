package em3071x

import (
	"fmt"
	"log"
)

// ReportMode selects how Report decides whether a new sample is due
type ReportMode int

const (
	// Polling samples and reports on every call
	Polling ReportMode = iota
	// InterruptDriven only reports when the chip has raised the proximity
	// interrupt flag, which is cleared before sampling
	InterruptDriven
)

// String implement Stringer interface for ReportMode
func (m ReportMode) String() string {
	switch m {
	case Polling:
		return "polling"
	case InterruptDriven:
		return "interrupt"
	default:
		return "unknown mode"
	}
}

// Axis identifies an absolute event axis
type Axis uint16

// AxisDistance is the absolute distance axis, matching ABS_DISTANCE of the
// Linux input subsystem
const AxisDistance Axis = 0x19

// Sink receives reported values.  Sync marks the end of one report.
type Sink interface {
	ReportAbs(axis Axis, value int32) error
	Sync() error
}

// DiscardSink drops every report
type DiscardSink struct{}

func (DiscardSink) ReportAbs(Axis, int32) error { return nil }
func (DiscardSink) Sync() error                 { return nil }

// LogSink prints reports to a logger
type LogSink struct {
	Log     *log.Logger
	pending []int32
}

func (s *LogSink) ReportAbs(axis Axis, value int32) error {
	s.pending = append(s.pending, value)
	return nil
}

func (s *LogSink) Sync() error {
	for _, val := range s.pending {
		s.Log.Printf("distance: %d", val)
	}
	s.pending = s.pending[:0]
	return nil
}

// Report reads the interrupt status and, depending on mode, samples the
// proximity register and emits the distance to the sink.  The returned bool is
// false when interrupt driven and no proximity interrupt is pending.
func (v *EM3071X) Report(mode ReportMode) (Distance, bool, error) {

	if !v.ready {
		return 0, false, ErrNotReady
	}

	status, err := v.readReg(INT_STATUS)

	if err != nil {
		return 0, false, err
	}

	v.log.Printf("report: status = 0x%x, mode = %s", status, mode)

	switch mode {
	case Polling:
		// interrupt status is ignored

	case InterruptDriven:
		if status&INT_FLAG == 0 {
			return 0, false, nil
		}

		if err := v.writeReg(INT_STATUS, status&^INT_MASK); err != nil {
			v.log.Printf("write INT_STATUS reg fail: %v", err)
			return 0, false, err
		}

	default:
		return 0, false, fmt.Errorf("unrecognized report mode %d", mode)
	}

	d, err := v.readDistance()

	if err != nil {
		return 0, false, err
	}

	if err := v.emit(d); err != nil {
		return d, false, err
	}

	return d, true, nil
}

// ReadDistance samples the proximity register without touching the interrupt
// status or the sink
func (v *EM3071X) ReadDistance() (Distance, error) {

	if !v.ready {
		return 0, ErrNotReady
	}

	return v.readDistance()
}

// readDistance reads the raw proximity value and maps it with the configured
// thresholds
func (v *EM3071X) readDistance() (Distance, error) {

	raw, err := v.readReg(PROXIMITY_RAW)

	if err != nil {
		return 0, err
	}

	d := ComputeDistance(raw, v.config.ThresholdLow, v.config.ThresholdHigh)

	v.log.Printf("raw = 0x%x, distance = %d", raw, d)

	return d, nil
}

// emit delivers a distance followed by a sync to the sink
func (v *EM3071X) emit(d Distance) error {

	if err := v.sink.ReportAbs(AxisDistance, int32(d)); err != nil {
		return fmt.Errorf("sink report failed: %w", err)
	}

	if err := v.sink.Sync(); err != nil {
		return fmt.Errorf("sink sync failed: %w", err)
	}

	return nil
}
