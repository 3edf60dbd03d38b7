// Package dashboard keeps the displayed balance and transaction table in step
// with the backend. Each operation sends one request, hides its modal,
// reconciles the view from the reply and shows a single toast.
package dashboard

import (
	"context"
	"sync"
	"time"

	"ledgerdash/internal/api"
	"ledgerdash/internal/logger"
	"ledgerdash/internal/metrics"
	"ledgerdash/internal/view"
)

const (
	DefaultDismissDelay = 4 * time.Second

	successMark = "✅ "
	failureMark = "❌ "

	msgInFlight = "A request is already in progress."
)

// Backend is the subset of Client the controller depends on.
type Backend interface {
	Post(ctx context.Context, path string, body any) (*Reply, error)
	Dashboard(ctx context.Context) (*api.DashboardResponse, error)
}

// Result is the outcome of one operation. Message is the toast text
// without its status mark.
type Result struct {
	OK      bool
	Message string
}

type operation struct {
	name             string
	path             string
	modal            string
	successFallback  string
	failureFallback  string
	transportFailure string
	apply            func(*Reply)
}

type Controller struct {
	backend  Backend
	view     *view.State
	notifier Notifier
	modals   Modals

	guard   bool
	mu      sync.Mutex
	pending map[string]bool

	dismissDelay time.Duration
	afterFunc    func(time.Duration, func())
}

type Option func(*Controller)

// WithInFlightGuard rejects a submission while the same form still has a
// request outstanding.
func WithInFlightGuard() Option {
	return func(c *Controller) { c.guard = true }
}

func WithDismissDelay(d time.Duration) Option {
	return func(c *Controller) { c.dismissDelay = d }
}

func New(backend Backend, state *view.State, notifier Notifier, modals Modals, opts ...Option) *Controller {
	c := &Controller{
		backend:      backend,
		view:         state,
		notifier:     notifier,
		modals:       modals,
		pending:      make(map[string]bool),
		dismissDelay: DefaultDismissDelay,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) OpenTopUp() {
	c.modals.Show(TopUpModal)
}

func (c *Controller) OpenTransaction() {
	c.modals.Show(TransactionModal)
}

// SubmitTopUp posts the raw form amount; the backend decides if it is valid.
func (c *Controller) SubmitTopUp(ctx context.Context, amount string) Result {
	return c.submit(ctx, operation{
		name:             "topup",
		path:             "/topup",
		modal:            TopUpModal,
		successFallback:  "Top-up successful.",
		failureFallback:  "Top-up failed.",
		transportFailure: "Failed to top up balance.",
		apply:            c.applyBalance,
	}, map[string]string{"amount": amount})
}

func (c *Controller) SubmitTransaction(ctx context.Context, txType, amount string) Result {
	return c.submit(ctx, operation{
		name:             "transaction",
		path:             "/transactions",
		modal:            TransactionModal,
		successFallback:  "Transaction successful!",
		failureFallback:  "Failed to create transaction.",
		transportFailure: "Failed to create transaction.",
		apply: func(r *Reply) {
			c.applyBalance(r)
			if txs, ok := r.TransactionList(); ok {
				c.view.ReplaceTransactions(txs)
			}
		},
	}, map[string]string{"type": txType, "amount": amount})
}

func (c *Controller) RequestReport(ctx context.Context) Result {
	return c.submit(ctx, operation{
		name:             "report",
		path:             "/request-report",
		successFallback:  "Report requested.",
		failureFallback:  "Failed to request report.",
		transportFailure: "Failed to send report request.",
	}, nil)
}

// Refresh loads the page state from the backend and seeds the view with it.
func (c *Controller) Refresh(ctx context.Context) (*api.DashboardResponse, error) {
	snap, err := c.backend.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	if snap.User.Balance != nil {
		c.view.SetBalance(float64(*snap.User.Balance))
	}
	c.view.ReplaceTransactions(snap.Transactions)
	return snap, nil
}

// ScheduleAlertDismissal closes, once, every flash alert still showing when
// the dismiss delay elapses. Alerts added later are left alone.
func (c *Controller) ScheduleAlertDismissal(flashes Flashes) {
	c.afterFunc(c.dismissDelay, func() {
		for _, id := range flashes.Active() {
			flashes.Close(id)
		}
	})
}

func (c *Controller) submit(ctx context.Context, op operation, body any) Result {
	if !c.acquire(op.name) {
		if op.modal != "" {
			c.modals.Hide(op.modal)
		}
		res := Result{Message: msgInFlight}
		c.toast(res)
		metrics.RecordDashboardOperation(op.name, "rejected")
		return res
	}
	defer c.release(op.name)

	reply, err := c.backend.Post(ctx, op.path, body)

	// The modal goes away before the toast so the toast stays visible.
	if op.modal != "" {
		c.modals.Hide(op.modal)
	}

	var res Result
	switch {
	case err != nil:
		logger.WithError(err).Warn("dashboard request failed", "operation", op.name)
		res = Result{Message: op.transportFailure}
	case reply.Succeeded():
		if op.apply != nil {
			op.apply(reply)
		}
		res = Result{OK: true, Message: orDefault(reply.Message, op.successFallback)}
	default:
		logger.Debug("dashboard operation rejected", "operation", op.name, "status", reply.StatusCode)
		res = Result{Message: orDefault(reply.Error, op.failureFallback)}
	}

	c.toast(res)
	metrics.RecordDashboardOperation(op.name, metrics.Outcome(res.OK))
	return res
}

func (c *Controller) applyBalance(r *Reply) {
	if r.Balance != nil {
		c.view.SetBalance(float64(*r.Balance))
	}
}

func (c *Controller) toast(res Result) {
	mark := failureMark
	if res.OK {
		mark = successMark
	}
	c.notifier.Toast(mark+res.Message, res.OK)
	metrics.RecordToast(res.OK)
}

func (c *Controller) acquire(name string) bool {
	if !c.guard {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending[name] {
		return false
	}
	c.pending[name] = true
	return true
}

func (c *Controller) release(name string) {
	if !c.guard {
		return
	}
	c.mu.Lock()
	delete(c.pending, name)
	c.mu.Unlock()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
