package charts

import "ledgerdash/internal/ledger"

const (
	TransactionChart = "transactionChart"
	BalanceChart     = "balanceChart"
)

type Dataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
}

// Widget is the data handed to the chart library for one canvas.
type Widget struct {
	Element     string    `json:"element"`
	Kind        string    `json:"type"`
	Title       string    `json:"title"`
	Labels      []string  `json:"labels"`
	Datasets    []Dataset `json:"datasets"`
	BeginAtZero bool      `json:"beginAtZero,omitempty"`
}

type Dashboard struct {
	Transactions *Widget `json:"transactions,omitempty"`
	Balances     *Widget `json:"balances,omitempty"`
}

// Renderer draws a widget onto its element.
type Renderer interface {
	Render(w Widget) error
}

// Build derives both dashboard widgets. The balances bar is omitted when
// there are no users.
func Build(transactions []ledger.Transaction, users []ledger.User) Dashboard {
	d := Dashboard{Transactions: TransactionSplit(transactions)}
	if len(users) > 0 {
		d.Balances = UserBalances(users)
	}
	return d
}

func TransactionSplit(transactions []ledger.Transaction) *Widget {
	var credit, debit float64
	for _, t := range transactions {
		switch t.Type {
		case ledger.Credit:
			credit++
		case ledger.Debit:
			debit++
		}
	}
	return &Widget{
		Element: TransactionChart,
		Kind:    "doughnut",
		Title:   "Transactions (Credit vs Debit)",
		Labels:  []string{"Credit", "Debit"},
		Datasets: []Dataset{{
			Data:            []float64{credit, debit},
			BackgroundColor: []string{"#198754", "#dc3545"},
		}},
	}
}

func UserBalances(users []ledger.User) *Widget {
	labels := make([]string, 0, len(users))
	data := make([]float64, 0, len(users))
	for _, u := range users {
		labels = append(labels, u.FullName)
		data = append(data, u.BalanceOrZero())
	}
	return &Widget{
		Element:     BalanceChart,
		Kind:        "bar",
		Title:       "User Balances",
		Labels:      labels,
		Datasets:    []Dataset{{Label: "Balance", Data: data}},
		BeginAtZero: true,
	}
}

// RenderAll renders whichever widgets are present.
func RenderAll(r Renderer, d Dashboard) error {
	for _, w := range []*Widget{d.Transactions, d.Balances} {
		if w == nil {
			continue
		}
		if err := r.Render(*w); err != nil {
			return err
		}
	}
	return nil
}
