// Package config loads the YAML device description for an EM3071X sensor.
package config

import (
	"fmt"
	"log"
	"os"

	"github.com/swdee/go-em3071x"
	"gopkg.in/yaml.v3"
)

const (
	ModePolling   = "polling"
	ModeInterrupt = "interrupt"

	DriverGoI2C  = "go-i2c"
	DriverPeriph = "periph"

	DefaultBus            = "/dev/i2c-0"
	DefaultPollIntervalMs = 200
	DefaultTopic          = "sensors/proximity"
)

type File struct {
	Device     DeviceConfig `yaml:"device"`
	Properties Properties   `yaml:"properties"`
	MQTT       MQTTConfig   `yaml:"mqtt"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Name           string `yaml:"name"`
	Driver         string `yaml:"driver"` // go-i2c | periph
	Bus            string `yaml:"bus"`    // device path for go-i2c, i2creg name for periph
	Address        uint8  `yaml:"address"`
	IRQPin         string `yaml:"irq_pin"`
	Mode           string `yaml:"mode"` // polling | interrupt
	PollIntervalMs int    `yaml:"poll_interval_ms"`
}

// ---- PROPERTIES ----

// Properties mirrors the sensor node of a device description.  Absent keys
// stay nil and fall back to defaults in Resolve.
type Properties struct {
	PSPower         *uint32 `yaml:"ps_power"`
	PSOffset        *uint32 `yaml:"ps_offset"`
	PSThresholdLow  *uint32 `yaml:"ps_threshold_low"`
	PSThresholdHigh *uint32 `yaml:"ps_threshold_high"`
}

// ---- MQTT ----

type MQTTConfig struct {
	Broker   string `yaml:"broker"` // empty disables publishing
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
}

// Load reads, normalizes and validates a device description file
func Load(path string) (*File, error) {

	b, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	return Parse(b)
}

// Parse decodes, normalizes and validates a device description
func Parse(b []byte) (*File, error) {

	var f File

	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("config parse: %w", err)
	}

	Normalize(&f)

	if err := Validate(&f); err != nil {
		return nil, err
	}

	return &f, nil
}

// Normalize fills in defaults for the device and mqtt sections.  Sensor
// properties are left as found, Resolve applies their defaults.
func Normalize(f *File) {

	if f == nil {
		return
	}

	if f.Device.Name == "" {
		f.Device.Name = "ps_em3071x"
	}

	if f.Device.Driver == "" {
		f.Device.Driver = DriverGoI2C
	}

	if f.Device.Bus == "" && f.Device.Driver == DriverGoI2C {
		f.Device.Bus = DefaultBus
	}

	if f.Device.Address == 0 {
		f.Device.Address = em3071x.Address
	}

	if f.Device.Mode == "" {
		f.Device.Mode = ModePolling
	}

	if f.Device.PollIntervalMs == 0 {
		f.Device.PollIntervalMs = DefaultPollIntervalMs
	}

	if f.MQTT.Topic == "" {
		f.MQTT.Topic = DefaultTopic
	}

	if f.MQTT.ClientID == "" {
		f.MQTT.ClientID = f.Device.Name
	}
}

// Validate rejects descriptions the driver cannot run with.  Threshold order
// is not checked.
func Validate(f *File) error {

	if f == nil {
		return fmt.Errorf("config: nil")
	}

	switch f.Device.Mode {
	case ModePolling:
		if f.Device.PollIntervalMs <= 0 {
			return fmt.Errorf("config: poll_interval_ms must be > 0")
		}
	case ModeInterrupt:
		if f.Device.IRQPin == "" {
			return fmt.Errorf("config: irq_pin required in interrupt mode")
		}
	default:
		return fmt.Errorf("config: unknown mode %q", f.Device.Mode)
	}

	switch f.Device.Driver {
	case DriverGoI2C, DriverPeriph:
	default:
		return fmt.Errorf("config: unknown driver %q", f.Device.Driver)
	}

	if f.Device.Address > 0x7F {
		return fmt.Errorf("config: address 0x%X is not a 7 bit address", f.Device.Address)
	}

	p := f.Properties

	if p.PSPower != nil && *p.PSPower > uint32(em3071x.LED200mA) {
		return fmt.Errorf("config: ps_power %d: %w", *p.PSPower, em3071x.ErrInvalidLEDDrive)
	}

	if p.PSOffset != nil && *p.PSOffset > 0xFF {
		return fmt.Errorf("config: ps_offset %d exceeds 8 bits", *p.PSOffset)
	}

	if p.PSThresholdLow != nil && *p.PSThresholdLow > 0xFFFF {
		return fmt.Errorf("config: ps_threshold_low %d exceeds 16 bits", *p.PSThresholdLow)
	}

	if p.PSThresholdHigh != nil && *p.PSThresholdHigh > 0xFFFF {
		return fmt.Errorf("config: ps_threshold_high %d exceeds 16 bits", *p.PSThresholdHigh)
	}

	return nil
}

// ReportMode returns the driver report mode for the device section
func (d DeviceConfig) ReportMode() em3071x.ReportMode {

	if d.Mode == ModeInterrupt {
		return em3071x.InterruptDriven
	}

	return em3071x.Polling
}

// Missing lists the property keys absent from the description
func (p Properties) Missing() []string {

	var keys []string

	if p.PSPower == nil {
		keys = append(keys, "ps_power")
	}

	if p.PSOffset == nil {
		keys = append(keys, "ps_offset")
	}

	if p.PSThresholdLow == nil {
		keys = append(keys, "ps_threshold_low")
	}

	if p.PSThresholdHigh == nil {
		keys = append(keys, "ps_threshold_high")
	}

	return keys
}

// Resolve converts the properties into a driver Config.  Missing keys take
// their defaults and are logged as warnings, a nil logger is allowed.
func (p Properties) Resolve(logger *log.Logger) em3071x.Config {

	cfg := em3071x.DefaultConfig()

	for _, key := range p.Missing() {
		if logger != nil {
			logger.Printf("warning: Unable to get %s: %v", key, em3071x.ErrConfigMissing)
		}
	}

	if p.PSPower != nil {
		cfg.LEDDrive = em3071x.LEDDrive(*p.PSPower)
	}

	if p.PSOffset != nil {
		cfg.Offset = uint8(*p.PSOffset)
	}

	if p.PSThresholdLow != nil {
		cfg.ThresholdLow = uint16(*p.PSThresholdLow)
	}

	if p.PSThresholdHigh != nil {
		cfg.ThresholdHigh = uint16(*p.PSThresholdHigh)
	}

	return cfg
}
