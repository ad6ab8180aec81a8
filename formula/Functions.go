package formula

import "strings"

// AggregateFunc consumes the coerced numeric values of its arguments.
// A nil result means "no data", which renders as an em-dash downstream
// and is distinct from a sum that happens to be zero.
type AggregateFunc func(values []float64) *float64

var functions = map[string]AggregateFunc{
	"SUM":     calculateSum,
	"AVG":     calculateAvg,
	"AVERAGE": calculateAvg,
	"COUNT":   calculateCount,
	"MIN":     calculateMin,
	"MAX":     calculateMax,
}

// IsFunction reports whether name is a registered function. Names are
// case-insensitive; unknown names are rejected at parse time.
func IsFunction(name string) bool {
	_, ok := functions[strings.ToUpper(name)]
	return ok
}

func LookupFunction(name string) (AggregateFunc, bool) {
	fn, ok := functions[strings.ToUpper(name)]
	return fn, ok
}

func calculateSum(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}

	sum := 0.0
	for _, value := range values {
		sum += value
	}
	return &sum
}

func calculateAvg(values []float64) *float64 {
	sum := calculateSum(values)
	if sum == nil {
		return nil
	}

	avg := *sum / float64(len(values))
	return &avg
}

func calculateCount(values []float64) *float64 {
	count := float64(len(values))
	return &count
}

func calculateMin(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}

	minValue := values[0]
	for _, value := range values[1:] {
		if value < minValue {
			minValue = value
		}
	}
	return &minValue
}

func calculateMax(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}

	maxValue := values[0]
	for _, value := range values[1:] {
		if value > maxValue {
			maxValue = value
		}
	}
	return &maxValue
}
