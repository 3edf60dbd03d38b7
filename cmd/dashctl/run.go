package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"ledgerdash/internal/api"
	"ledgerdash/internal/charts"
	"ledgerdash/internal/config"
	"ledgerdash/internal/dashboard"
	"ledgerdash/internal/money"
	"ledgerdash/internal/terminal"
	"ledgerdash/internal/view"
)

var (
	errUsage  = errors.New("usage: show | topup <amount> | tx <credit|debit> <amount> | report | watch")
	errFailed = errors.New("operation failed")
)

type app struct {
	out     io.Writer
	ctrl    *dashboard.Controller
	state   *view.State
	flashes *terminal.FlashBoard
	charts  *terminal.ChartRenderer
	dismiss func(context.Context) error
}

func newApp(cfg *config.Config, backend dashboard.Backend, out io.Writer) (*app, error) {
	formatter, err := money.NewFormatter(cfg.Locale, cfg.CurrencyPrefix)
	if err != nil {
		return nil, err
	}

	state := view.NewState(formatter)
	ctrl := dashboard.New(backend, state,
		terminal.NewToaster(out, cfg.ToastDelay),
		terminal.NewModals(),
		dashboard.WithInFlightGuard(),
		dashboard.WithDismissDelay(cfg.AlertDismissDelay),
	)

	a := &app{
		out:     out,
		ctrl:    ctrl,
		state:   state,
		flashes: terminal.NewFlashBoard(out),
		charts:  terminal.NewChartRenderer(out, formatter),
	}
	a.dismiss = a.waitForDismissal
	return a, nil
}

func run(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	backend := dashboard.NewClient(cfg.DashboardURL, cfg.DashboardToken, cfg.RequestTimeout)
	a, err := newApp(cfg, backend, out)
	if err != nil {
		return err
	}
	return a.exec(ctx, args)
}

func (a *app) exec(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	snap, err := a.ctrl.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("load dashboard: %w", err)
	}

	var res dashboard.Result
	switch args[0] {
	case "show":
		return a.show(snap)
	case "topup":
		if len(args) != 2 {
			return errUsage
		}
		a.ctrl.OpenTopUp()
		res = a.ctrl.SubmitTopUp(ctx, args[1])
	case "tx":
		if len(args) != 3 {
			return errUsage
		}
		a.ctrl.OpenTransaction()
		res = a.ctrl.SubmitTransaction(ctx, args[1], args[2])
	case "report":
		return outcome(a.ctrl.RequestReport(ctx))
	case "watch":
		return a.watch(ctx, snap)
	default:
		return errUsage
	}
	if err := terminal.RenderView(a.out, a.state); err != nil {
		return err
	}
	return outcome(res)
}

func outcome(res dashboard.Result) error {
	if !res.OK {
		return fmt.Errorf("%w: %s", errFailed, res.Message)
	}
	return nil
}

func (a *app) show(snap *api.DashboardResponse) error {
	if err := terminal.RenderView(a.out, a.state); err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	return charts.RenderAll(a.charts, snap.Charts)
}

// watch shows notifications as flash alerts and waits for them to be
// dismissed.
func (a *app) watch(ctx context.Context, snap *api.DashboardResponse) error {
	for _, n := range snap.Notifications {
		a.flashes.Add(n.Message)
	}
	if err := a.show(snap); err != nil {
		return err
	}
	if len(a.flashes.Active()) == 0 {
		return nil
	}
	return a.dismiss(ctx)
}

func (a *app) waitForDismissal(ctx context.Context) error {
	tracker := &dismissTracker{FlashBoard: a.flashes, done: make(chan struct{})}
	a.ctrl.ScheduleAlertDismissal(tracker)
	select {
	case <-tracker.done:
		fmt.Fprintln(a.out, "alerts dismissed")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// dismissTracker closes done once every alert taken by the dismissal pass
// has been closed.
type dismissTracker struct {
	*terminal.FlashBoard
	done chan struct{}

	mu   sync.Mutex
	left int
	once sync.Once
}

func (t *dismissTracker) Active() []string {
	ids := t.FlashBoard.Active()
	t.mu.Lock()
	t.left = len(ids)
	t.mu.Unlock()
	if len(ids) == 0 {
		t.finish()
	}
	return ids
}

func (t *dismissTracker) Close(id string) {
	t.FlashBoard.Close(id)
	t.mu.Lock()
	t.left--
	left := t.left
	t.mu.Unlock()
	if left <= 0 {
		t.finish()
	}
}

func (t *dismissTracker) finish() {
	t.once.Do(func() { close(t.done) })
}
