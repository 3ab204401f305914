package currency

import "fmt"

// Formatter renders cent amounts with a fixed two-decimal-place convention
// and a single local-currency symbol prefix. Display only; nothing in the
// core computes on formatted strings.
type Formatter struct {
	symbol string
}

// NewFormatter creates a formatter with the given currency symbol
func NewFormatter(symbol string) *Formatter {
	if symbol == "" {
		symbol = "₹"
	}
	return &Formatter{symbol: symbol}
}

// FormatCents renders an amount stored in cents, e.g. 1999 -> "₹19.99"
func (f *Formatter) FormatCents(cents int64) string {
	return fmt.Sprintf("%s%.2f", f.symbol, float64(cents)/100)
}

// Format renders a decimal amount, e.g. 19.9 -> "₹19.90"
func (f *Formatter) Format(amount float64) string {
	return fmt.Sprintf("%s%.2f", f.symbol, amount)
}
