package mapper

import (
	"math"
	"strconv"
	"strings"
)

// PriceQuote is a name/value pair extracted from a legacy price field.
type PriceQuote struct {
	Name   string
	Amount float64
}

// Text renders the amount with two decimals, as stored by DECIMAL(10,2).
func (p PriceQuote) Text() string {
	return strconv.FormatFloat(p.Amount, 'f', 2, 64)
}

// PriceParser extracts a price from free text. ok is false when the text
// carries no usable price; such rows are skipped, not failed.
type PriceParser interface {
	Parse(text string) (quote PriceQuote, ok bool)
}

const (
	priceNameMarker      = "Price Name = "
	priceValueMarker     = "Price Value = "
	priceNameTerminator  = ", Price Value ="
	priceValueTerminator = ","
)

// DelimitedPriceParser reads fields shaped like
// "Price Name = <n>, Price Value = <v>[, ...]", possibly repeated, and
// returns the last pair.
type DelimitedPriceParser struct{}

// Parse implements PriceParser.
func (DelimitedPriceParser) Parse(text string) (PriceQuote, bool) {
	if !strings.Contains(text, priceNameMarker) || !strings.Contains(text, priceValueMarker) {
		return PriceQuote{}, false
	}

	name := afterLast(text, priceNameMarker)
	if i := strings.Index(name, priceNameTerminator); i >= 0 {
		name = name[:i]
	}

	value := afterLast(text, priceValueMarker)
	if i := strings.Index(value, priceValueTerminator); i >= 0 {
		value = value[:i]
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return PriceQuote{}, false
	}

	return PriceQuote{
		Name:   strings.TrimSpace(name),
		Amount: math.Round(amount*100) / 100,
	}, true
}

func afterLast(s, marker string) string {
	return s[strings.LastIndex(s, marker)+len(marker):]
}
