// Package view holds what the dashboard currently displays. Values are only
// ever written from server replies; nothing here computes a balance or a
// transaction list from user input.
package view

import (
	"math"
	"sync"

	"ledgerdash/internal/ledger"
	"ledgerdash/internal/money"
)

// Element identifiers of the dashboard page.
const (
	BalanceText          = "balance-text"
	TransactionTableBody = "transaction-table-body"
)

// Placeholders for a missing creation timestamp and an unreadable amount.
const (
	EmptyDate     = "—"
	UnknownAmount = "—"
)

type Row struct {
	ID        string
	Type      string
	Amount    string
	CreatedAt string
}

// State is safe for concurrent use. Writers race on last-reply-wins terms.
type State struct {
	mu        sync.RWMutex
	formatter *money.Formatter
	balance   string
	rows      []Row
	listeners []func(element string)
}

func NewState(f *money.Formatter) *State {
	if f == nil {
		f = money.Rupiah()
	}
	return &State{formatter: f}
}

// OnChange registers fn to be told which element changed.
func (s *State) OnChange(fn func(element string)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *State) SetBalance(v float64) {
	s.mu.Lock()
	s.balance = s.formatter.Format(v)
	listeners := s.listeners
	s.mu.Unlock()

	notify(listeners, BalanceText)
}

// ReplaceTransactions clears the table and rebuilds it row by row in the
// order given.
func (s *State) ReplaceTransactions(txs []ledger.Transaction) {
	rows := make([]Row, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, s.renderRow(t))
	}

	s.mu.Lock()
	s.rows = rows
	listeners := s.listeners
	s.mu.Unlock()

	notify(listeners, TransactionTableBody)
}

func (s *State) renderRow(t ledger.Transaction) Row {
	created := t.CreatedAt
	if created == "" {
		created = EmptyDate
	}
	amount := UnknownAmount
	if !math.IsNaN(float64(t.Amount)) {
		amount = s.formatter.Format(float64(t.Amount))
	}
	return Row{
		ID:        string(t.ID),
		Type:      ledger.Capitalize(t.Type),
		Amount:    amount,
		CreatedAt: created,
	}
}

func (s *State) BalanceText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balance
}

// Rows returns a copy of the rendered table body.
func (s *State) Rows() []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

func notify(listeners []func(string), element string) {
	for _, fn := range listeners {
		fn(element)
	}
}
