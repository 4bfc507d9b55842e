// internal/app/system/numfmt/numfmt.go
package numfmt

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders dashboard numbers for one locale.
// It is safe for concurrent use.
type Formatter struct {
	tag language.Tag
	p   *message.Printer
}

// New builds a Formatter for a BCP 47 locale such as "en" or "ca".
func New(locale string) (*Formatter, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = "en"
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &Formatter{tag: tag, p: message.NewPrinter(tag)}, nil
}

// MustNew is New for static locales.
func MustNew(locale string) *Formatter {
	f, err := New(locale)
	if err != nil {
		panic(err)
	}
	return f
}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Count formats an integer with thousands separators: 705261 → "705,261".
func (f *Formatter) Count(n int64) string {
	return f.p.Sprintf("%d", n)
}

// Decimal formats v with the given number of fraction digits.
func (f *Formatter) Decimal(v float64, digits int) string {
	return f.p.Sprint(number.Decimal(v, number.Scale(digits)))
}

// Nights formats an average stay: 3.666 → "3.7 nits".
func (f *Formatter) Nights(v float64) string {
	return f.Decimal(v, 1) + " nits"
}

// Percent formats a fraction as a percentage with one decimal: 0.871 → "87.1%".
func (f *Formatter) Percent(v float64) string {
	return f.Decimal(v*100, 1) + "%"
}

// SignedPercent is Percent with an explicit sign: 0.054 → "+5.4%".
func (f *Formatter) SignedPercent(v float64) string {
	s := f.Percent(v)
	if v > 0 {
		return "+" + s
	}
	return s
}
