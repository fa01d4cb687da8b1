package view

import (
	"fmt"
	"strconv"
	"strings"
)

// Money renders a decimal amount as sent by the API, e.g. "19.9" -> "$19.90".
// Unparseable amounts are shown as-is.
func Money(amount string) string {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return currencySymbol("USD") + "0.00"
	}
	f, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return currencySymbol("USD") + amount
	}
	return MoneyFromFloat(f, "USD")
}

func MoneyFromFloat(v float64, currency string) string {
	return fmt.Sprintf("%s%.2f", currencySymbol(currency), v)
}

// Percent renders a signed change, e.g. 4.26 -> "+4.3%".
func Percent(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

// ShortID is the first five characters of an identifier.
func ShortID(id string) string {
	if len(id) <= 5 {
		return id
	}
	return id[:5]
}

func currencySymbol(code string) string {
	switch code {
	case "EUR":
		return "€"
	case "USD":
		return "$"
	case "GBP":
		return "£"
	default:
		return code + " "
	}
}
