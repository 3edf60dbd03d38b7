package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	Credit = "credit"
	Debit  = "debit"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Transaction mirrors a ledger entry as the transaction service reports it.
// Entries are never edited client side.
type Transaction struct {
	ID        ID     `json:"id"`
	UserID    int    `json:"user_id,omitempty"`
	Type      string `json:"type"`
	Amount    Amount `json:"amount"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type User struct {
	ID       int     `json:"id"`
	FullName string  `json:"full_name"`
	Email    string  `json:"email,omitempty"`
	Role     string  `json:"role,omitempty"`
	Balance  *Amount `json:"balance,omitempty"`
}

// BalanceOrZero is the value charted for users the upstream reports without a balance.
func (u User) BalanceOrZero() float64 {
	if u.Balance == nil {
		return 0
	}
	return float64(*u.Balance)
}

type Notification struct {
	ID        ID     `json:"id"`
	UserID    int    `json:"user_id,omitempty"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ID accepts both numeric and string identifiers.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", b, err)
	}
	*id = ID(n.String())
	return nil
}

// Amount is a monetary value sent either as a JSON number or a numeric
// string, the way HTML form fields arrive.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := ParseAmount(s)
		if err != nil {
			return err
		}
		*a = v
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, b)
	}
	*a = Amount(f)
	return nil
}

// ParseAmount parses a form value. Blank input parses as zero so that
// positivity checks reject it with the usual message.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Amount(f), nil
}

func (a Amount) Positive() bool {
	return a > 0
}

// Capitalize upper-cases the first rune and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func IsValidType(t string) bool {
	return t == Credit || t == Debit
}
