// Package format renders numbers, money and dates for display using the
// configured locale.
package format

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter holds a locale and currency. It is immutable and safe for
// concurrent use; a fresh message.Printer is created per call.
type Formatter struct {
	tag language.Tag
	cur currency.Unit
}

// New returns a Formatter for tag and cur.
func New(tag language.Tag, cur currency.Unit) *Formatter {
	return &Formatter{tag: tag, cur: cur}
}

// Default returns an en-US formatter using US dollars.
func Default() *Formatter {
	return New(language.AmericanEnglish, currency.USD)
}

func (f *Formatter) printer() *message.Printer {
	return message.NewPrinter(f.tag)
}

// Grouped renders n with locale grouping separators and at most three
// fraction digits, e.g. 1234.5 -> "1,234.5".
func (f *Formatter) Grouped(n float64) string {
	return f.printer().Sprint(number.Decimal(n, number.MaxFractionDigits(3)))
}

// Currency renders n as an amount of the configured currency with two
// fraction digits, e.g. 1234.5 -> "$1,234.50".
func (f *Formatter) Currency(n float64) string {
	p := f.printer()
	symbol := strings.TrimSpace(p.Sprint(currency.Symbol(f.cur)))
	amount := p.Sprint(number.Decimal(math.Abs(n), number.Scale(2)))
	if n < 0 {
		return "-" + symbol + amount
	}
	return symbol + amount
}

// Percent renders n/100 as a whole percentage, e.g. 25 -> "25%".
func (f *Formatter) Percent(n float64) string {
	return f.printer().Sprint(number.Percent(n/100, number.MaxFractionDigits(0)))
}

// localeDateLayouts maps a language (optionally with region) to a short date layout.
var localeDateLayouts = map[string]string{
	"en-US": "1/2/2006",
	"en-GB": "02/01/2006",
	"en":    "1/2/2006",
	"de":    "2.1.2006",
	"fr":    "02/01/2006",
	"es":    "2/1/2006",
	"it":    "2/1/2006",
	"nl":    "2-1-2006",
	"ja":    "2006/1/2",
	"zh":    "2006/1/2",
}

// Date renders t as a short locale date, e.g. 2024-01-05 -> "1/5/2024" for en-US.
// Unknown locales fall back to YYYY-MM-DD.
func (f *Formatter) Date(t time.Time) string {
	base, _ := f.tag.Base()
	region, _ := f.tag.Region()
	if layout, ok := localeDateLayouts[base.String()+"-"+region.String()]; ok {
		return t.Format(layout)
	}
	if layout, ok := localeDateLayouts[base.String()]; ok {
		return t.Format(layout)
	}
	return t.Format(time.DateOnly)
}
