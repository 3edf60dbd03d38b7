// Package money renders balances the way the dashboard shows them:
// a currency prefix and a whole number grouped for the display locale.
package money

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type Formatter struct {
	prefix  string
	printer *message.Printer
}

// NewFormatter builds a formatter for a BCP 47 locale such as "id-ID".
func NewFormatter(locale, prefix string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &Formatter{prefix: prefix, printer: message.NewPrinter(tag)}, nil
}

// Rupiah is the default dashboard formatter (id-ID, "Rp").
func Rupiah() *Formatter {
	return &Formatter{prefix: "Rp", printer: message.NewPrinter(language.Indonesian)}
}

func (f *Formatter) Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	digits := f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
	if f.prefix == "" {
		return digits
	}
	return f.prefix + " " + digits
}
