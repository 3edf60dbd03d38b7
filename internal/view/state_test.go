package view

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerdash/internal/ledger"
)

func TestState_SetBalance(t *testing.T) {
	s := NewState(nil)
	assert.Empty(t, s.BalanceText())

	s.SetBalance(1250000)
	assert.Equal(t, "Rp 1.250.000", s.BalanceText())

	s.SetBalance(0)
	assert.Equal(t, "Rp 0", s.BalanceText())
}

func TestState_ReplaceTransactions_ReplacesWholeTable(t *testing.T) {
	s := NewState(nil)
	s.ReplaceTransactions([]ledger.Transaction{
		{ID: "1", Type: "credit", Amount: 10},
		{ID: "2", Type: "debit", Amount: 20},
		{ID: "3", Type: "debit", Amount: 30},
	})
	require.Len(t, s.Rows(), 3)

	s.ReplaceTransactions([]ledger.Transaction{
		{ID: "9", Type: "credit", Amount: 5000, CreatedAt: "2025-03-01"},
	})

	rows := s.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, Row{ID: "9", Type: "Credit", Amount: "Rp 5.000", CreatedAt: "2025-03-01"}, rows[0])

	s.ReplaceTransactions(nil)
	assert.Empty(t, s.Rows())
}

func TestState_RowRendering(t *testing.T) {
	s := NewState(nil)
	s.ReplaceTransactions([]ledger.Transaction{
		{ID: "1", Type: "debit", Amount: 1500},
		{ID: "2", Type: "refund", Amount: 7},
	})

	rows := s.Rows()
	assert.Equal(t, "Debit", rows[0].Type)
	assert.Equal(t, "Rp 1.500", rows[0].Amount)
	assert.Equal(t, "—", rows[0].CreatedAt)
	assert.Equal(t, "Refund", rows[1].Type)
}

func TestState_UnreadableAmount(t *testing.T) {
	s := NewState(nil)
	s.ReplaceTransactions([]ledger.Transaction{{ID: "9", Type: "debit", Amount: ledger.Amount(math.NaN())}})

	require.Len(t, s.Rows(), 1)
	assert.Equal(t, UnknownAmount, s.Rows()[0].Amount)
	assert.Equal(t, "Debit", s.Rows()[0].Type)
}

func TestState_PreservesOrder(t *testing.T) {
	var txs []ledger.Transaction
	for i := 10; i > 0; i-- {
		txs = append(txs, ledger.Transaction{ID: ledger.ID(fmt.Sprint(i)), Type: "credit", Amount: 1})
	}

	s := NewState(nil)
	s.ReplaceTransactions(txs)

	rows := s.Rows()
	require.Len(t, rows, 10)
	for i, r := range rows {
		assert.Equal(t, string(txs[i].ID), r.ID)
	}
}

func TestState_RowsIsACopy(t *testing.T) {
	s := NewState(nil)
	s.ReplaceTransactions([]ledger.Transaction{{ID: "1", Type: "credit", Amount: 1}})

	rows := s.Rows()
	rows[0].ID = "mutated"

	assert.Equal(t, "1", s.Rows()[0].ID)
}

func TestState_OnChange(t *testing.T) {
	s := NewState(nil)
	var changed []string
	s.OnChange(func(el string) { changed = append(changed, el) })

	s.SetBalance(1)
	s.ReplaceTransactions(nil)

	assert.Equal(t, []string{BalanceText, TransactionTableBody}, changed)
}

func TestState_ConcurrentWriters(t *testing.T) {
	s := NewState(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.SetBalance(float64(i))
			s.ReplaceTransactions([]ledger.Transaction{{ID: "x", Type: "credit", Amount: ledger.Amount(i)}})
			_ = s.Rows()
		}(i)
	}
	wg.Wait()

	assert.NotEmpty(t, s.BalanceText())
	assert.Len(t, s.Rows(), 1)
}
