// Package terminal renders the dashboard surfaces as plain text: toasts,
// modal dialogs, flash alerts, the transaction table and chart widgets.
package terminal

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Element identifiers of the toast.
const (
	LiveToast    = "liveToast"
	ToastMessage = "toast-message"
)

const DefaultToastDelay = 3 * time.Second

// Toaster prints each toast and keeps it current until it auto-hides. A
// newer toast replaces the current one and restarts the hide timer.
type Toaster struct {
	w     io.Writer
	delay time.Duration

	mu      sync.Mutex
	current string
	success bool
	seq     int

	afterFunc func(time.Duration, func())
}

func NewToaster(w io.Writer, delay time.Duration) *Toaster {
	if delay <= 0 {
		delay = DefaultToastDelay
	}
	return &Toaster{
		w:     w,
		delay: delay,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

func (t *Toaster) Toast(message string, success bool) {
	t.mu.Lock()
	t.seq++
	seq := t.seq
	t.current = message
	t.success = success
	fmt.Fprintln(t.w, message)
	t.mu.Unlock()

	t.afterFunc(t.delay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.seq == seq {
			t.current = ""
		}
	})
}

// Current returns the visible toast, if any, and whether it is the success
// variant.
func (t *Toaster) Current() (string, bool, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current, t.success, t.current != ""
}
