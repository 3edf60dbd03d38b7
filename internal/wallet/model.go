package wallet

import "ledgerdash/internal/ledger"

type TopUpRequest struct {
	Amount ledger.Amount `json:"amount"`
}

type TransactionRequest struct {
	UserID int           `json:"user_id"`
	Type   string        `json:"type" validate:"required,oneof=credit debit"`
	Amount ledger.Amount `json:"amount"`
}

// Outcome is a successful mutation as reported back to the dashboard.
// Nil fields are left out of the reply.
type Outcome struct {
	Message      string
	Balance      *ledger.Amount
	Transactions []ledger.Transaction
}

type newTransaction struct {
	UserID int     `json:"user_id"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

type topUpPayload struct {
	Amount float64 `json:"amount"`
}
