package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/alnourclinic/clinic-scheduler/internal/domain/booking"
)

// StatusChanged is emitted after a booking status transition commits.
// External modules (billing, reminders) subscribe to it; the scheduler
// never calls them directly.
type StatusChanged struct {
	BookingID string         `json:"booking_id"`
	From      booking.Status `json:"from"`
	To        booking.Status `json:"to"`
	At        time.Time      `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev StatusChanged) error
}

// Dispatcher decouples publishing from the request path: events go
// through a buffered queue and a single worker, and are dropped rather
// than blocking a request when the queue is full.
type Dispatcher struct {
	pub   Publisher
	log   *zap.Logger
	queue chan StatusChanged
}

func NewDispatcher(pub Publisher, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		pub:   pub,
		log:   log,
		queue: make(chan StatusChanged, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.pub.Publish(context.Background(), ev); err != nil {
			d.log.Error("status event publish failed",
				zap.String("booking_id", ev.BookingID),
				zap.String("to", string(ev.To)),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev StatusChanged) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("status event queue full, dropping event",
			zap.String("booking_id", ev.BookingID),
		)
	}
}
