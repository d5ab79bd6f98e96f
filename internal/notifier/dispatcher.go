package notifier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdg-garage/registration-api/internal/logging"
	"github.com/gdg-garage/registration-api/internal/metrics"
	"github.com/gdg-garage/registration-api/internal/models"
)

const DefaultTimeout = 10 * time.Second

type sink struct {
	name     string
	notifier Notifier
}

// Dispatcher broadcasts registrations to every registered sink without
// blocking the caller. Delivery is at most once: failures are logged and
// counted, never retried and never reported back.
type Dispatcher struct {
	sinks   []sink
	timeout time.Duration
	metrics *metrics.Metrics
	wg      sync.WaitGroup
}

func NewDispatcher(timeout time.Duration, m *metrics.Metrics) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{timeout: timeout, metrics: m}
}

// Register adds a sink. It must not be called concurrently with Notify.
func (d *Dispatcher) Register(name string, n Notifier) {
	d.sinks = append(d.sinks, sink{name: name, notifier: n})
}

func (d *Dispatcher) Sinks() []string {
	names := make([]string, len(d.sinks))
	for i, s := range d.sinks {
		names[i] = s.name
	}
	return names
}

// Notify returns immediately. ctx only contributes its values (request id);
// its cancellation does not abort deliveries.
func (d *Dispatcher) Notify(ctx context.Context, registration models.Registration) {
	if d == nil || len(d.sinks) == 0 {
		return
	}

	ctx = context.WithoutCancel(ctx)
	for _, s := range d.sinks {
		d.wg.Add(1)
		go func(s sink) {
			defer d.wg.Done()
			d.deliver(ctx, s, registration)
		}(s)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, s sink, registration models.Registration) {
	logger := logging.WithFields(ctx, "sink", s.name, "registration_id", registration.ID)

	defer func() {
		if r := recover(); r != nil {
			d.metrics.IncrementNotificationFailures(s.name)
			logger.Error("notification sink panicked", "panic", fmt.Sprint(r))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := s.notifier.NotifyRegistration(ctx, registration); err != nil {
		d.metrics.IncrementNotificationFailures(s.name)
		logger.Warn("notification failed", "error", err)
		return
	}

	logger.Debug("notification delivered")
}

// Wait blocks until in-flight deliveries finish.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}
