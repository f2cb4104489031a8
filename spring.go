package scrollfx

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	// MaxFrameDelta caps the time a single Step may integrate. Longer gaps
	// (backgrounded tab, dropped frames) are treated as this long.
	MaxFrameDelta = 0.1
	// MaxSubstep is the largest integration step; longer frames are split.
	// Stiff or heavily damped springs take smaller steps still.
	MaxSubstep = 1.0 / 120

	// maxSubsteps bounds the Euler steps per frame. Springs that would need
	// more use the closed-form solution instead.
	maxSubsteps = 1000

	defaultRestDelta = 0.01
	defaultRestSpeed = 0.01
)

// SpringConfig parameterizes a damped harmonic oscillator.
type SpringConfig struct {
	Stiffness float64
	Damping   float64
	Mass      float64

	// RestDelta and RestSpeed define "settled". When both position error and
	// speed drop below them the spring snaps to its target. Zero uses 0.01.
	RestDelta float64
	RestSpeed float64

	// Analytic integrates with harmonica's closed-form solution instead of
	// semi-implicit Euler.
	Analytic bool
}

// Spring presets.
var (
	SpringGentle  = SpringConfig{Stiffness: 120, Damping: 14, Mass: 1}
	SpringDefault = SpringConfig{Stiffness: 170, Damping: 26, Mass: 1}
	SpringSnappy  = SpringConfig{Stiffness: 300, Damping: 30, Mass: 1}
)

// SpringCritical returns a critically damped config (damping = 2√(k·m)).
func SpringCritical(stiffness, mass float64) SpringConfig {
	return SpringConfig{Stiffness: stiffness, Damping: 2 * math.Sqrt(stiffness*mass), Mass: mass}
}

// Validate rejects non-positive mass or stiffness and negative damping.
func (c SpringConfig) Validate() error {
	switch {
	case !(c.Mass > 0) || !finite(c.Mass):
		return fmt.Errorf("mass %g: %w", c.Mass, ErrInvalidSpring)
	case !(c.Stiffness > 0) || !finite(c.Stiffness):
		return fmt.Errorf("stiffness %g: %w", c.Stiffness, ErrInvalidSpring)
	case !(c.Damping >= 0) || !finite(c.Damping):
		return fmt.Errorf("damping %g: %w", c.Damping, ErrInvalidSpring)
	case c.RestDelta < 0 || c.RestSpeed < 0:
		return fmt.Errorf("rest thresholds: %w", ErrInvalidSpring)
	}
	return nil
}

func (c SpringConfig) valid() bool {
	return c.Mass > 0 && c.Stiffness > 0 && c.Damping >= 0 &&
		finite(c.Mass) && finite(c.Stiffness) && finite(c.Damping) &&
		c.RestDelta >= 0 && c.RestSpeed >= 0
}

// DampingRatio returns ζ = c / (2√(k·m)). 1 is critical, below oscillates.
func (c SpringConfig) DampingRatio() float64 {
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// AngularFrequency returns the undamped angular frequency √(k/m).
func (c SpringConfig) AngularFrequency() float64 {
	return math.Sqrt(c.Stiffness / c.Mass)
}

func (c SpringConfig) restDelta() float64 {
	if c.RestDelta > 0 {
		return c.RestDelta
	}
	return defaultRestDelta
}

func (c SpringConfig) restSpeed() float64 {
	if c.RestSpeed > 0 {
		return c.RestSpeed
	}
	return defaultRestSpeed
}

// SpringState is one consumer's spring. It is never shared.
type SpringState struct {
	Position float64
	Velocity float64
	Target   float64
	Config   SpringConfig
}

// NewSpring creates a spring at rest at position. A bad config is a setup
// error.
func NewSpring(cfg SpringConfig, position float64) (*SpringState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new spring: %w", err)
	}
	return &SpringState{Position: position, Target: position, Config: cfg}, nil
}

// Settled reports whether the spring is within eps of its target and its
// speed is below eps.
func (s SpringState) Settled(eps float64) bool {
	return math.Abs(s.Target-s.Position) < eps && math.Abs(s.Velocity) < eps
}

// Update steps the spring in place toward target and returns the new
// position.
func (s *SpringState) Update(target, dt float64) float64 {
	*s = Step(*s, target, dt)
	return s.Position
}

// Step advances s toward target by dt seconds and returns the new state.
//
//	a = k(target - x)/m - c·v/m;  v += a·h;  x += v·h
//
// dt is clamped to MaxFrameDelta and split into steps h of at most
// MaxSubstep and at most 1/(c/m + √(k/m)). Within that bound the step is
// stable and a spring with ζ >= 1 released at rest never passes its
// target. Springs too stiff for maxSubsteps use the closed form. Negative
// or non-finite dt integrates nothing. A state whose config is invalid
// holds its position.
func Step(s SpringState, target, dt float64) SpringState {
	if !finite(target) {
		return s
	}
	s.Target = target
	if !finite(dt) || dt <= 0 {
		return s
	}
	if !s.Config.valid() {
		return s
	}
	if !finite(s.Position) || !finite(s.Velocity) {
		s.Position, s.Velocity = target, 0
		return s
	}
	dt = math.Min(dt, MaxFrameDelta)

	c := s.Config
	n := eulerSteps(c, dt)
	if c.Analytic || n > maxSubsteps {
		sp := harmonica.NewSpring(dt, c.AngularFrequency(), c.DampingRatio())
		s.Position, s.Velocity = sp.Update(s.Position, s.Velocity, target)
	} else {
		h := dt / float64(n)
		k, damp, m := c.Stiffness, c.Damping, c.Mass
		x, v := s.Position, s.Velocity
		for i := 0; i < n; i++ {
			a := k*(target-x)/m - damp*v/m
			v += a * h
			x += v * h
		}
		s.Position, s.Velocity = x, v
	}

	if math.Abs(target-s.Position) < c.restDelta() && math.Abs(s.Velocity) < c.restSpeed() {
		s.Position, s.Velocity = target, 0
	}
	return s
}

// eulerSteps returns how many semi-implicit Euler steps dt needs under c.
func eulerSteps(c SpringConfig, dt float64) int {
	h := math.Min(MaxSubstep, 1/(c.Damping/c.Mass+c.AngularFrequency()))
	n := math.Ceil(dt / h)
	if n > maxSubsteps {
		return maxSubsteps + 1
	}
	return int(math.Max(n, 1))
}
