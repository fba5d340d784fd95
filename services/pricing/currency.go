package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const rupeeSymbol = "₹"

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders amount as a rupee string with en-IN digit grouping and no
// fractional part.
func FormatINR(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + rupeeSymbol + inrPrinter.Sprintf("%v", number.Decimal(amount, number.MaxFractionDigits(0)))
}

// ParseINR reverses FormatINR.
func ParseINR(s string) (int, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '-':
			return r
		default:
			return -1
		}
	}, s)
	if cleaned == "" || cleaned == "-" {
		return 0, fmt.Errorf("no amount in %q", s)
	}
	v, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return v, nil
}
