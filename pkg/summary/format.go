package summary

import (
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	nonDigits  = regexp.MustCompile(`\D`)
	localPhone = regexp.MustCompile(`^0[567]\d{8}$`)
)

// FormatPhone groups a 10 digit local number in pairs ("05 51 23 45 67").
// Anything else is returned unchanged.
func FormatPhone(phone string) string {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	if !localPhone.MatchString(cleaned) {
		return phone
	}
	return strings.Join([]string{cleaned[0:2], cleaned[2:4], cleaned[4:6], cleaned[6:8], cleaned[8:10]}, " ")
}

type currencyStyle struct {
	symbol string
	prefix bool
}

var currencies = map[string]currencyStyle{
	"EUR": {symbol: "€", prefix: true},
	"USD": {symbol: "$", prefix: true},
	"DZD": {symbol: " دج"},
}

// Formatter renders amounts with digit grouping.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter builds a formatter for tag. Amounts keep Latin digits, the
// way the site displays prices, so the tag only drives separators.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

var defaultFormatter = NewFormatter(language.English)

// Number formats amount rounded to the nearest unit ("17,600").
func (f *Formatter) Number(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return f.printer.Sprintf("%d", int64(math.Round(amount)))
}

// Money formats amount with the currency symbol ("€15,840", "5,000 دج").
// Unknown currencies are appended as their code.
func (f *Formatter) Money(amount float64, currency string) string {
	number := f.Number(amount)
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		return number
	}
	style, ok := currencies[code]
	if !ok {
		return number + " " + code
	}
	if style.prefix {
		return style.symbol + number
	}
	return number + style.symbol
}

// FormatMoney formats with the default English formatter.
func FormatMoney(amount float64, currency string) string {
	return defaultFormatter.Money(amount, currency)
}
