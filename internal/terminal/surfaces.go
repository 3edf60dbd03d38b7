package terminal

import (
	"fmt"
	"io"
	"sync"
)

// Modals tracks which dialogs are open.
type Modals struct {
	mu   sync.Mutex
	open map[string]bool
}

func NewModals() *Modals {
	return &Modals{open: make(map[string]bool)}
}

func (m *Modals) Show(id string) {
	m.mu.Lock()
	m.open[id] = true
	m.mu.Unlock()
}

func (m *Modals) Hide(id string) {
	m.mu.Lock()
	delete(m.open, id)
	m.mu.Unlock()
}

func (m *Modals) IsOpen(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open[id]
}

type flash struct {
	id      string
	message string
}

// FlashBoard holds the flash alerts shown on top of the page, in the order
// they were added.
type FlashBoard struct {
	w io.Writer

	mu     sync.Mutex
	alerts []flash
	nextID int
}

func NewFlashBoard(w io.Writer) *FlashBoard {
	return &FlashBoard{w: w}
}

// Add shows an alert and returns its id.
func (b *FlashBoard) Add(message string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := fmt.Sprintf("flash-%d", b.nextID)
	b.alerts = append(b.alerts, flash{id: id, message: message})
	fmt.Fprintf(b.w, "[!] %s\n", message)
	return id
}

func (b *FlashBoard) Active() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]string, 0, len(b.alerts))
	for _, a := range b.alerts {
		ids = append(ids, a.id)
	}
	return ids
}

// Close removes the alert. Closing an unknown or already closed id is a no-op.
func (b *FlashBoard) Close(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, a := range b.alerts {
		if a.id == id {
			b.alerts = append(b.alerts[:i], b.alerts[i+1:]...)
			return
		}
	}
}

func (b *FlashBoard) Messages() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.alerts))
	for _, a := range b.alerts {
		out = append(out, a.message)
	}
	return out
}
