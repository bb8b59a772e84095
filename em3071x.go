// go-em3071x is an I2C driver for the EM3071X proximity sensor.
package em3071x

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/swdee/go-i2c"
)

const (
	// Address is the default address of the sensor on I2C bus
	Address uint8 = 0x24
	// DefaultEdgeTimeout is how long Watch blocks on the interrupt pin before
	// checking for cancellation
	DefaultEdgeTimeout = 500 * time.Millisecond
)

// EM3071X represents a single EM3071X sensor instance.  All calibration
// values are owned by the instance, so several sensors may be driven from the
// same process.
type EM3071X struct {
	// bus is the register interface
	bus Bus
	// sink receives reported distances
	sink Sink

	config Config
	state  DeviceState
	ready  bool

	edgeTimeout time.Duration
	didTimeout  bool

	// log logger for debugging
	log *log.Logger
}

// New returns a new EM3071X sensor instance on the given I2C connection,
// configured and initialized with cfg.  Distances are delivered to sink.
func New(bus *i2c.Options, cfg Config, sink Sink) (*EM3071X, error) {

	if bus == nil || bus.GetAddr() == 0 {
		return nil, fmt.Errorf("I2C device is not initiated")
	}

	return NewWithBus(NewI2CBus(bus), cfg, sink,
		log.New(io.Discard, "", log.LstdFlags))
}

// NewWithLog creates sensor instance with logger to be used for debugging
func NewWithLog(bus *i2c.Options, cfg Config, sink Sink,
	log *log.Logger) (*EM3071X, error) {

	if bus == nil || bus.GetAddr() == 0 {
		return nil, fmt.Errorf("I2C device is not initiated")
	}

	return NewWithBus(NewI2CBus(bus), cfg, sink, log)
}

// NewWithBus creates a sensor instance on any register Bus implementation and
// runs Init.  A nil sink discards reports and a nil logger discards output.
func NewWithBus(bus Bus, cfg Config, sink Sink, logger *log.Logger) (*EM3071X, error) {

	v, err := newDevice(bus, cfg, sink, logger)

	if err != nil {
		return nil, err
	}

	// finish device setup
	err = v.setup()

	return v, err
}

// newDevice returns an uninitialized EM3071X instance
func newDevice(bus Bus, cfg Config, sink Sink, logger *log.Logger) (*EM3071X, error) {

	if bus == nil {
		return nil, fmt.Errorf("register bus is nil")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if sink == nil {
		sink = DiscardSink{}
	}

	if logger == nil {
		logger = log.New(io.Discard, "", log.LstdFlags)
	}

	v := &EM3071X{
		bus:         bus,
		sink:        sink,
		config:      cfg,
		state:       Off,
		edgeTimeout: DefaultEdgeTimeout,
		log:         logger,
	}

	return v, nil
}

// setup completes instance creation and is common to all constructors
func (v *EM3071X) setup() error {

	v.log.Printf("Starting Setup()")

	if err := v.Init(); err != nil {
		return fmt.Errorf("Failed to Init device: %w", err)
	}

	v.log.Printf("Device Init()'d")

	return nil
}

// Config returns the configuration this instance was created with
func (v *EM3071X) Config() Config {
	return v.config
}

// Connected reads the identification register and reports whether it holds
// the EM3071X part value
func (v *EM3071X) Connected() (bool, error) {

	id, err := v.readReg(ID)

	if err != nil {
		return false, err
	}

	return id == IDValue, nil
}

// Close disables the proximity sensor if it is active.  The underlying bus is
// owned by the caller and is left open.
func (v *EM3071X) Close() error {

	if !v.ready || v.state != Active {
		return nil
	}

	_, err := v.SetActive(false)
	return err
}
