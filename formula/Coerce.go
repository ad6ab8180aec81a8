package formula

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"vergoReports/contracts"
)

const (
	FormatCurrency = "currency"
	FormatNumber   = "number"
	FormatText     = "text"
)

// NullPlaceholder is what a null result renders as.
const NullPlaceholder = "—"

var currencyCleaner = strings.NewReplacer("$", "", "£", "", "€", "", ",", "", " ", "")

// CoerceNumeric converts a raw cell value to a float64. Strings are
// parsed after stripping currency symbols, thousands separators and
// whitespace. Booleans, unparsable strings and nil are not numeric.
func CoerceNumeric(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		cleaned := currencyCleaner.Replace(strings.TrimSpace(v))
		if cleaned == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}

	return 0, false
}

// Round2 rounds to 2 decimal places. Applied uniformly by every
// evaluation path so repeated evaluation is bit-for-bit stable.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

var localePrinter = message.NewPrinter(language.English)

// FormatResult renders an evaluated value for display. Currency and
// number formats use locale-aware digit grouping; the evaluator has
// already rounded, so no further cents surprises occur here.
func FormatResult(value any, format string) string {
	if value == nil {
		return NullPlaceholder
	}

	switch format {
	case FormatCurrency:
		if numeric, ok := CoerceNumeric(value); ok {
			return "$" + localePrinter.Sprint(number.Decimal(numeric,
				number.MinFractionDigits(2), number.MaxFractionDigits(2)))
		}
	case FormatNumber:
		if numeric, ok := CoerceNumeric(value); ok {
			return localePrinter.Sprint(number.Decimal(numeric, number.MaxFractionDigits(2)))
		}
	}

	return fmt.Sprint(value)
}

// FormatHint maps a column data type to the result format used when a
// formula has no explicit result type of its own.
func FormatHint(dataType string) string {
	switch dataType {
	case contracts.ColumnTypeCurrency:
		return FormatCurrency
	case contracts.ColumnTypeNumber:
		return FormatNumber
	}
	return FormatText
}
