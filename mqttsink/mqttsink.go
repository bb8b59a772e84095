// Package mqttsink publishes EM3071X distance reports to an MQTT broker.
package mqttsink

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/swdee/go-em3071x"
)

// DefaultQoS is the publish quality of service
const DefaultQoS byte = 1

// Publisher is the part of mqtt.Client used by the sink
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Event is the JSON message published on every Sync
type Event struct {
	Device string    `json:"device"`
	Axis   uint16    `json:"axis"`
	Value  int32     `json:"value"`
	Time   time.Time `json:"time"`
}

// Sink collects reported values and publishes them on Sync
type Sink struct {
	client  Publisher
	topic   string
	device  string
	qos     byte
	timeout time.Duration
	pending []Event

	// now is replaced in tests
	now func() time.Time
}

// New returns a Sink publishing to topic, tagging events with device
func New(client Publisher, topic, device string) *Sink {
	return &Sink{
		client:  client,
		topic:   topic,
		device:  device,
		qos:     DefaultQoS,
		timeout: 2 * time.Second,
		now:     time.Now,
	}
}

// Connect opens a paho client to broker
func Connect(broker, clientID string) (mqtt.Client, error) {

	opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID(clientID)
	opts.SetKeepAlive(2 * time.Second)
	opts.SetPingTimeout(1 * time.Second)
	opts.SetAutoReconnect(true)

	c := mqtt.NewClient(opts)

	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}

	return c, nil
}

// ReportAbs buffers a value until the next Sync
func (s *Sink) ReportAbs(axis em3071x.Axis, value int32) error {

	s.pending = append(s.pending, Event{
		Device: s.device,
		Axis:   uint16(axis),
		Value:  value,
		Time:   s.now(),
	})

	return nil
}

// Sync publishes every buffered value.  The buffer is emptied even when a
// publish fails.
func (s *Sink) Sync() error {

	pending := s.pending
	s.pending = nil

	for _, ev := range pending {
		if err := s.publish(ev); err != nil {
			return err
		}
	}

	return nil
}

func (s *Sink) publish(ev Event) error {

	msg, err := json.Marshal(ev)

	if err != nil {
		return err
	}

	token := s.client.Publish(s.topic, s.qos, false, msg)

	if !token.WaitTimeout(s.timeout) {
		return fmt.Errorf("mqtt publish to %s timed out", s.topic)
	}

	return token.Error()
}
