package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/aaira-a/mock-api-files/pkg/blobstore"
	"github.com/aaira-a/mock-api-files/pkg/logging"
	"github.com/aaira-a/mock-api-files/pkg/scheduler"
)

// DefaultDelay is the fixed delay between scheduling and dispatch.
const DefaultDelay = 15 * time.Second

// Dispatcher schedules and fires deferred callbacks. The outcome of a
// dispatched POST is not observed, retried, or reported to the original
// caller; the response to that caller was already sent. It is logged at
// debug level only.
type Dispatcher struct {
	sched      scheduler.Scheduler
	client     *http.Client
	delay      time.Duration
	log        *slog.Logger
	clock      clockwork.Clock
	store      blobstore.Store
	instanceID string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient sets the client used for outbound callback POSTs.
func WithHTTPClient(client *http.Client) Option {
	return func(d *Dispatcher) {
		if client != nil {
			d.client = client
		}
	}
}

// WithDelay overrides the fixed dispatch delay.
func WithDelay(delay time.Duration) Option {
	return func(d *Dispatcher) {
		if delay > 0 {
			d.delay = delay
		}
	}
}

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// WithClock sets the clock used for audit record timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(d *Dispatcher) {
		if clock != nil {
			d.clock = clock
		}
	}
}

// WithAuditStore enables best-effort persistence of dispatched receipts
// under keys namespaced by the instance ID.
func WithAuditStore(store blobstore.Store, instanceID string) Option {
	return func(d *Dispatcher) {
		d.store = store
		d.instanceID = instanceID
	}
}

// New creates a Dispatcher on the given scheduler.
func New(sched scheduler.Scheduler, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sched:  sched,
		client: http.DefaultClient,
		delay:  DefaultDelay,
		log:    logging.Nop(),
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch schedules a one-shot delayed POST of the receipt to its outgoing
// callback URL. It returns immediately; the task cannot be observed by the
// original caller once scheduled. The returned handle allows cancellation,
// though the HTTP surface never cancels.
func (d *Dispatcher) Dispatch(receipt Receipt) scheduler.Handle {
	return d.sched.ScheduleOnce(d.delay, func() {
		d.fire(receipt)
	})
}

// fire performs the outbound POST and the best-effort audit write.
func (d *Dispatcher) fire(receipt Receipt) {
	target := receipt.Outputs.CallbackURL

	body, err := json.Marshal(receipt)
	if err != nil {
		d.log.Debug("callback payload marshal failed", "receiptId", receipt.ReceiptID, "error", err)
		return
	}

	resp, err := d.client.Post(target, "application/json", bytes.NewReader(body))
	if err != nil {
		d.log.Debug("callback dispatch failed", "receiptId", receipt.ReceiptID, "url", target, "error", err)
	} else {
		_ = resp.Body.Close()
		d.log.Debug("callback dispatched", "receiptId", receipt.ReceiptID, "url", target, "status", resp.StatusCode)
	}

	d.audit(receipt)
}

// audit persists the receipt for out-of-band inspection. Failures are
// swallowed; auditing never affects dispatch.
func (d *Dispatcher) audit(receipt Receipt) {
	if d.store == nil {
		return
	}
	key := blobstore.ObjectKey(d.instanceID, d.clock.Now())
	if err := d.store.Put(context.Background(), key, receipt); err != nil {
		d.log.Debug("callback audit write failed", "key", key, "error", err)
	}
}
