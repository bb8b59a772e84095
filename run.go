package em3071x

import (
	"context"
	"fmt"
	"time"
)

// EdgeWaiter is an interrupt line.  A periph.io gpio.PinIO configured with
// In(gpio.PullUp, gpio.FallingEdge) satisfies it.
type EdgeWaiter interface {
	WaitForEdge(timeout time.Duration) bool
}

// Poll reports a distance on every tick of interval until ctx is cancelled.
// A failed cycle is logged and retried on the next tick.
func (v *EM3071X) Poll(ctx context.Context, interval time.Duration) error {

	if !v.ready {
		return ErrNotReady
	}

	if interval <= 0 {
		return fmt.Errorf("poll interval must be > 0")
	}

	v.log.Printf("Start polling every %s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			v.log.Print("Stop polling")
			return ctx.Err()

		case <-ticker.C:
			if _, _, err := v.Report(Polling); err != nil {
				v.log.Printf("poll report failed: %v", err)
			}
		}
	}
}

// Watch waits for interrupt edges on pin and runs an interrupt driven Report
// for each one until ctx is cancelled.  A failed cycle is logged and the next
// edge retries.
func (v *EM3071X) Watch(ctx context.Context, pin EdgeWaiter) error {

	if !v.ready {
		return ErrNotReady
	}

	v.log.Print("Start watching interrupt line")

	for {
		if err := ctx.Err(); err != nil {
			v.log.Print("Stop watching interrupt line")
			return err
		}

		if !pin.WaitForEdge(v.waitTimeout()) {
			v.didTimeout = true
			continue
		}

		if _, _, err := v.Report(InterruptDriven); err != nil {
			v.log.Printf("interrupt report failed: %v", err)
		}
	}
}
