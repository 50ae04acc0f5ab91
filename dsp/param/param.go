package param

import (
	"math"
	"strings"
)

// Kind identifies how a parameter value is quantized.
type Kind int

const (
	// Float is a continuous value.
	Float Kind = iota
	// Int is rounded to the nearest integer.
	Int
	// Bool is 0 or 1; values >= 0.5 are true.
	Bool
	// Enum is an integer index into Labels.
	Enum
)

func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Enum:
		return "enum"
	default:
		return "unknown"
	}
}

// Range is the inclusive valid interval and default of a parameter.
type Range struct {
	Min     float64
	Max     float64
	Default float64
}

// Clamp limits v to the range. NaN maps to the default.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Default
	}
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// ClampInt rounds v to the nearest integer within the range.
func (r Range) ClampInt(v float64) int {
	return int(math.Round(r.Clamp(v)))
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Normalize maps v in the range onto [0, 1].
func (r Range) Normalize(v float64) float64 {
	if r.Max == r.Min {
		return 0
	}
	return (r.Clamp(v) - r.Min) / (r.Max - r.Min)
}

// Spec describes one named parameter.
type Spec struct {
	Name   string
	Unit   string
	Kind   Kind
	Range  Range
	Labels []string
}

// Quantize clamps v and snaps it according to s.Kind.
func (s Spec) Quantize(v float64) float64 {
	switch s.Kind {
	case Bool:
		if math.IsNaN(v) {
			return s.Range.Default
		}
		if v >= 0.5 {
			return 1
		}
		return 0
	case Int, Enum:
		return float64(s.Range.ClampInt(v))
	default:
		return s.Range.Clamp(v)
	}
}

// Label returns the label for an enum value, or "" when none applies.
func (s Spec) Label(v float64) string {
	if s.Kind != Enum {
		return ""
	}
	i := s.Range.ClampInt(v)
	if i < 0 || i >= len(s.Labels) {
		return ""
	}
	return s.Labels[i]
}

// ParseLabel resolves an enum label (case-insensitive) to its value.
func (s Spec) ParseLabel(label string) (float64, bool) {
	for i, l := range s.Labels {
		if strings.EqualFold(l, label) {
			return float64(i), true
		}
	}
	return 0, false
}

// BoolValue converts a bool into its parameter encoding.
func BoolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
