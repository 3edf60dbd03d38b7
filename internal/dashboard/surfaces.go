package dashboard

// Modal dialog identifiers.
const (
	TopUpModal       = "topupModal"
	TransactionModal = "transactionModal"
)

// Notifier shows a toast in the success or failure variant.
type Notifier interface {
	Toast(message string, success bool)
}

type Modals interface {
	Show(id string)
	Hide(id string)
}

// Flashes exposes the flash alerts currently on screen. Close must be
// idempotent.
type Flashes interface {
	Active() []string
	Close(id string)
}
