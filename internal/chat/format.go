package chat

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dateLayout = "Mon, 02 Jan 2006 · 3:04 PM"

// formatter renders amounts and dates for chat messages.
type formatter struct {
	printer  *message.Printer
	currency string
	loc      *time.Location
}

func newFormatter(code string, loc *time.Location) formatter {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		unit = currency.INR
	}
	if loc == nil {
		loc = time.UTC
	}
	return formatter{
		printer:  message.NewPrinter(language.English),
		currency: unit.String(),
		loc:      loc,
	}
}

func (f formatter) money(amount float64) string {
	return fmt.Sprintf("%s %s", f.currency, f.printer.Sprintf("%.2f", amount))
}

func (f formatter) date(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.In(f.loc).Format(dateLayout)
}

// shortDate is used in option labels.
func (f formatter) shortDate(t time.Time) string {
	if t.IsZero() {
		return "TBA"
	}
	return t.In(f.loc).Format("02 Jan 2006")
}

// title upper-cases the first letter of a status such as "pending".
func title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
