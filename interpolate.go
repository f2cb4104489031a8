package scrollfx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
)

// Unit is the unit attached to an interpolated Value.
type Unit uint8

const (
	UnitNone    Unit = iota // plain number (scale, opacity)
	UnitPx                  // pixels
	UnitPercent             // percent of the sink's reference size
	UnitDeg                 // degrees
)

var unitSuffixes = [...]string{
	UnitNone:    "",
	UnitPx:      "px",
	UnitPercent: "%",
	UnitDeg:     "deg",
}

// Value is a number with a unit, e.g. -50%.
type Value struct {
	Num  float64
	Unit Unit
}

// Num returns a unitless Value.
func Num(v float64) Value { return Value{Num: v} }

// Px returns a pixel Value.
func Px(v float64) Value { return Value{Num: v, Unit: UnitPx} }

// Percent returns a percentage Value.
func Percent(v float64) Value { return Value{Num: v, Unit: UnitPercent} }

// Deg returns a Value in degrees.
func Deg(v float64) Value { return Value{Num: v, Unit: UnitDeg} }

// String formats v as a style string ("-25%", "12px", "0.5").
func (v Value) String() string {
	suffix := ""
	if int(v.Unit) < len(unitSuffixes) {
		suffix = unitSuffixes[v.Unit]
	}
	return strconv.FormatFloat(v.Num, 'g', -1, 64) + suffix
}

// ParseValue parses a style string such as "-50%", "100px", "5deg" or "1.1".
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	unit := UnitNone
	for u := len(unitSuffixes) - 1; u > 0; u-- {
		if strings.HasSuffix(s, unitSuffixes[u]) {
			unit = Unit(u)
			s = strings.TrimSuffix(s, unitSuffixes[u])
			break
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(f) {
		return Value{}, fmt.Errorf("parse value %q: %w", s, ErrInvalidValue)
	}
	return Value{Num: f, Unit: unit}, nil
}

// Breakpoint is one (domain, output) pair of a piecewise-linear table.
type Breakpoint struct {
	At  float64
	Out Value
}

// Interpolation maps a progress scalar through ordered breakpoints.
// Build it with NewInterpolation or ParseInterpolation; a hand-built table
// that breaks the ordering rules evaluates to a safe default instead.
type Interpolation struct {
	Breakpoints []Breakpoint
	// ClampBelow and ClampAbove hold the boundary output outside the
	// domain. When false the first/last segment is extrapolated.
	ClampBelow bool
	ClampAbove bool
	// Ease shapes progress within each segment. Nil is linear. It is not
	// applied when extrapolating. Eased progress passes through float32,
	// so an eased segment is accurate to about 1e-7 of its output span
	// (a few thousandths of a pixel on a segment thousands of pixels
	// long). Breakpoints themselves are exact.
	Ease ease.TweenFunc

	checked bool
	err     error
}

// NewInterpolation builds a clamped table from parallel domain and output
// slices. Domains must be strictly increasing and there must be at least
// two. Outputs must share a unit, except that a unitless zero adopts the
// unit of the others.
func NewInterpolation(domain []float64, outputs []Value) (*Interpolation, error) {
	if len(domain) != len(outputs) {
		return nil, fmt.Errorf("new interpolation: %d domains, %d outputs: %w",
			len(domain), len(outputs), ErrTooFewBreakpoints)
	}
	in := &Interpolation{
		Breakpoints: make([]Breakpoint, len(domain)),
		ClampBelow:  true,
		ClampAbove:  true,
	}
	for i := range domain {
		in.Breakpoints[i] = Breakpoint{At: domain[i], Out: outputs[i]}
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("new interpolation: %w", err)
	}
	return in, nil
}

// ParseInterpolation is NewInterpolation with outputs given as style
// strings: ParseInterpolation([]float64{0, 1}, "0%", "-50%").
func ParseInterpolation(domain []float64, outputs ...string) (*Interpolation, error) {
	vals := make([]Value, len(outputs))
	for i, s := range outputs {
		v, err := ParseValue(s)
		if err != nil {
			return nil, fmt.Errorf("new interpolation: %w", err)
		}
		vals[i] = v
	}
	return NewInterpolation(domain, vals)
}

// MustInterpolation panics if err is non-nil. It is intended for static
// tables declared at setup, where a bad table should fail loudly.
func MustInterpolation(in *Interpolation, err error) *Interpolation {
	if err != nil {
		panic(err)
	}
	return in
}

// Validate checks the breakpoint invariants and normalizes unitless zero
// outputs to the table's unit.
func (in *Interpolation) Validate() error {
	in.checked = true
	in.err = nil
	bps := in.Breakpoints
	if len(bps) < 2 {
		in.err = ErrTooFewBreakpoints
		return in.err
	}
	unit := UnitNone
	for i, bp := range bps {
		if !finite(bp.At) || !finite(bp.Out.Num) {
			in.err = fmt.Errorf("breakpoint %d: %w", i, ErrInvalidValue)
			return in.err
		}
		if i > 0 && bp.At <= bps[i-1].At {
			in.err = fmt.Errorf("breakpoint %d at %g after %g: %w", i, bp.At, bps[i-1].At, ErrBreakpointOrder)
			return in.err
		}
		if bp.Out.Unit == UnitNone {
			continue
		}
		if unit != UnitNone && bp.Out.Unit != unit {
			in.err = fmt.Errorf("breakpoint %d: %w", i, ErrUnitMismatch)
			return in.err
		}
		unit = bp.Out.Unit
	}
	for i := range bps {
		if bps[i].Out.Unit != unit {
			if bps[i].Out.Num != 0 {
				in.err = fmt.Errorf("breakpoint %d: %w", i, ErrUnitMismatch)
				return in.err
			}
			bps[i].Out.Unit = unit
		}
	}
	return nil
}

// Unit returns the table's output unit.
func (in *Interpolation) Unit() Unit {
	if len(in.Breakpoints) == 0 {
		return UnitNone
	}
	return in.Breakpoints[len(in.Breakpoints)-1].Out.Unit
}

// Evaluate maps p through the table. Below the first or above the last
// breakpoint it returns the boundary output (clamped) or extrapolates the
// boundary segment. An invalid table returns its first output, or the zero
// Value if it has none; it never panics.
func (in *Interpolation) Evaluate(p float64) Value {
	if in == nil {
		return Value{}
	}
	if !in.checked {
		_ = in.Validate()
	}
	bps := in.Breakpoints
	if in.err != nil {
		if len(bps) > 0 {
			return bps[0].Out
		}
		return Value{}
	}
	unit := bps[0].Out.Unit
	first, last := bps[0], bps[len(bps)-1]

	if !finite(p) {
		return first.Out
	}
	if p <= first.At {
		if in.ClampBelow || p == first.At {
			return first.Out
		}
		return Value{Num: extrapolate(first, bps[1], p), Unit: unit}
	}
	if p >= last.At {
		if in.ClampAbove || p == last.At {
			return last.Out
		}
		return Value{Num: extrapolate(bps[len(bps)-2], last, p), Unit: unit}
	}

	i := 0
	for i < len(bps)-2 && p >= bps[i+1].At {
		i++
	}
	a, b := bps[i], bps[i+1]
	t := (p - a.At) / (b.At - a.At)
	if in.Ease != nil {
		t = float64(in.Ease(float32(t), 0, 1, 1))
	}
	return Value{Num: a.Out.Num + (b.Out.Num-a.Out.Num)*t, Unit: unit}
}

// Evaluate is the free-function form of (*Interpolation).Evaluate.
func Evaluate(p float64, in *Interpolation) Value {
	return in.Evaluate(p)
}

func extrapolate(a, b Breakpoint, p float64) float64 {
	slope := (b.Out.Num - a.Out.Num) / (b.At - a.At)
	return a.Out.Num + slope*(p-a.At)
}
