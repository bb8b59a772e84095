package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/swdee/go-em3071x"
	"github.com/swdee/go-em3071x/config"
	"github.com/swdee/go-em3071x/mqttsink"
	"github.com/swdee/go-i2c"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	periphi2c "periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func main() {

	cfgPath := flag.String("c", "em3071x.yaml", "Path to device description")
	verbose := flag.Bool("v", false, "Log driver debug output")
	flag.Parse()

	logger := log.New(os.Stderr, "em3071x ",
		log.LstdFlags|log.Lmicroseconds|log.Lmsgprefix)

	file, err := config.Load(*cfgPath)

	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	sensorCfg := file.Properties.Resolve(logger)

	sink := selectSink(file, logger)

	var sensor *em3071x.EM3071X

	switch file.Device.Driver {
	case config.DriverPeriph:
		sensor, err = openPeriph(file, sensorCfg, sink, logger, *verbose)

	default:
		// Open I2C bus
		bus, berr := i2c.New(file.Device.Address, file.Device.Bus)

		if berr != nil {
			log.Fatal(berr)
		}

		defer bus.Close()

		if *verbose {
			sensor, err = em3071x.NewWithLog(bus, sensorCfg, sink, logger)
		} else {
			sensor, err = em3071x.New(bus, sensorCfg, sink)
		}
	}

	if err != nil {
		log.Fatal(err)
	}

	if ok, err := sensor.Connected(); err != nil || !ok {
		logger.Printf("unexpected part ID (err: %v)", err)
	}

	if _, err := sensor.SetActive(true); err != nil {
		log.Fatalf("enable sensor failed: %v", err)
	}

	defer sensor.Close()

	logger.Printf("sensor %s active, LED %s, thresholds %d/%d, mode %s",
		file.Device.Name, sensorCfg.LEDDrive, sensorCfg.ThresholdLow,
		sensorCfg.ThresholdHigh, file.Device.ReportMode())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch file.Device.ReportMode() {
	case em3071x.InterruptDriven:
		err = sensor.Watch(ctx, irqPin(file.Device.IRQPin))
	default:
		interval := time.Duration(file.Device.PollIntervalMs) * time.Millisecond
		err = sensor.Poll(ctx, interval)
	}

	if err != nil && err != context.Canceled {
		logger.Printf("run stopped: %v", err)
	}
}

// openPeriph creates the sensor on a periph.io I2C bus.  The bus stays open
// for the life of the process.
func openPeriph(file *config.File, cfg em3071x.Config, sink em3071x.Sink,
	logger *log.Logger, verbose bool) (*em3071x.EM3071X, error) {

	if _, err := host.Init(); err != nil {
		return nil, err
	}

	bus, err := i2creg.Open(file.Device.Bus)

	if err != nil {
		return nil, err
	}

	dev := &periphi2c.Dev{Addr: uint16(file.Device.Address), Bus: bus}

	if !verbose {
		logger = nil
	}

	return em3071x.NewWithBus(em3071x.NewPeriphBus(dev), cfg, sink, logger)
}

// selectSink publishes to MQTT when a broker is configured, otherwise
// distances are logged
func selectSink(file *config.File, logger *log.Logger) em3071x.Sink {

	if file.MQTT.Broker == "" {
		return &em3071x.LogSink{Log: logger}
	}

	client, err := mqttsink.Connect(file.MQTT.Broker, file.MQTT.ClientID)

	if err != nil {
		log.Fatal(err)
	}

	return mqttsink.New(client, file.MQTT.Topic, file.Device.Name)
}

// irqPin opens the sensor interrupt line, which is active low
func irqPin(name string) gpio.PinIO {

	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	pin := gpioreg.ByName(name)

	if pin == nil {
		log.Fatalf("Failed to find interrupt pin %s", name)
	}

	if err := pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		log.Fatal(err)
	}

	return pin
}
