package payment

import "fmt"

// CurrencySymbol prefixes every displayed amount.
const CurrencySymbol = "₹"

// FormatAmount renders amount with the currency prefix and two decimals,
// e.g. 1234.5 -> "₹1234.50".
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%s%.2f", CurrencySymbol, amount)
}
