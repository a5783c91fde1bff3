package insight

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups thousands in money and counts.
var printer = message.NewPrinter(language.English)

func money(v float64) string { return printer.Sprintf("$%.2f", v) }

func count(n int) string { return printer.Sprintf("%d", n) }

func whole(v float64) string { return printer.Sprintf("%.0f", v) }

// percent formats a ratio with two decimals, no grouping and no suffix.
func percent(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
