package em3071x

import (
	"errors"
	"time"
)

type regWrite struct {
	reg uint8
	val uint8
}

// fakeBus is a register map with a write log and per register failures
type fakeBus struct {
	regs      map[uint8]uint8
	writes    []regWrite
	reads     []uint8
	failRead  map[uint8]bool
	failWrite map[uint8]bool
}

func newFakeBus() *fakeBus {
	return &fakeBus{
		regs:      map[uint8]uint8{},
		failRead:  map[uint8]bool{},
		failWrite: map[uint8]bool{},
	}
}

func (f *fakeBus) ReadReg(reg uint8) (uint8, error) {
	f.reads = append(f.reads, reg)
	if f.failRead[reg] {
		return 0, errors.New("read nack")
	}
	return f.regs[reg], nil
}

func (f *fakeBus) WriteReg(reg uint8, value uint8) error {
	if f.failWrite[reg] {
		return errors.New("write nack")
	}
	f.writes = append(f.writes, regWrite{reg, value})
	f.regs[reg] = value
	return nil
}

func (f *fakeBus) reset() {
	f.writes = nil
	f.reads = nil
}

type sinkEvent struct {
	axis  Axis
	value int32
}

// recordSink keeps every reported value and counts syncs
type recordSink struct {
	events  []sinkEvent
	syncs   int
	failErr error
}

func (s *recordSink) ReportAbs(axis Axis, value int32) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.events = append(s.events, sinkEvent{axis, value})
	return nil
}

func (s *recordSink) Sync() error {
	s.syncs++
	return nil
}

// fakePin returns queued edge results, then reports timeouts
type fakePin struct {
	edges  []bool
	waits  int
	onWait func()
}

func (p *fakePin) WaitForEdge(timeout time.Duration) bool {
	p.waits++
	if p.onWait != nil {
		p.onWait()
	}
	if len(p.edges) == 0 {
		return false
	}
	e := p.edges[0]
	p.edges = p.edges[1:]
	return e
}

var testConfig = Config{
	LEDDrive:      LED100mA,
	Offset:        0x05,
	ThresholdLow:  10,
	ThresholdHigh: 200,
}

// newTestDevice returns an initialized device on a fake bus with the write
// log cleared
func newTestDevice(cfg Config) (*EM3071X, *fakeBus, *recordSink, error) {
	bus := newFakeBus()
	sink := &recordSink{}

	v, err := NewWithBus(bus, cfg, sink, nil)
	if err != nil {
		return nil, nil, nil, err
	}

	bus.reset()
	return v, bus, sink, nil
}
