package passpersist

import "strconv"

// Kind classifies the scalar a binding yields
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindCounter
	KindGauge
)

// String returns the kind name used in listings
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindCounter:
		return "counter"
	case KindGauge:
		return "gauge"
	}
	return "unknown"
}

// Value is a resolved scalar ready to be written back to the controller
type Value struct {
	kind  Kind
	text  string
	num   int64
	gauge float64
}

// StringValue wraps a display string
func StringValue(s string) Value {
	return Value{kind: KindString, text: s}
}

// IntegerValue wraps a gauge-like integer (topology sizes, error totals)
func IntegerValue(n int64) Value {
	return Value{kind: KindInteger, num: n}
}

// CounterValue wraps a monotonically increasing integer
func CounterValue(n int64) Value {
	return Value{kind: KindCounter, num: n}
}

// GaugeValue wraps a floating-point measurement
func GaugeValue(f float64) Value {
	return Value{kind: KindGauge, gauge: f}
}

// Kind returns the value classification
func (v Value) Kind() Kind {
	return v.kind
}

// String formats the value for the wire: strings and integers verbatim,
// floating-point values with exactly one decimal digit.
func (v Value) String() string {
	switch v.kind {
	case KindInteger, KindCounter:
		return strconv.FormatInt(v.num, 10)
	case KindGauge:
		return strconv.FormatFloat(v.gauge, 'f', 1, 64)
	}
	return v.text
}
