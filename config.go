package scrollfx

import (
	"errors"
	"fmt"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// Choreography is a declarative set of effects, loaded from YAML and
// applied to a page's tree by node name:
//
//	effects:
//	  - node: hero-title
//	    region: hero
//	    start: start start
//	    end: end start
//	    tracks:
//	      - property: opacity
//	        domain: [0, 0.5]
//	        output: ["1", "0"]
//	  - node: about
//	    reveal: {once: true, threshold: 0.2, delay: 0.1}
type Choreography struct {
	Effects []EffectSpec `yaml:"effects"`
}

// EffectSpec describes one consumer.
type EffectSpec struct {
	// Node receives the tracks' values.
	Node string `yaml:"node"`
	// Region is measured for scroll progress. Defaults to Node.
	Region string `yaml:"region,omitempty"`
	// Start and End are offset pairs such as "start end". Default
	// "start end" and "end start".
	Start     string      `yaml:"start,omitempty"`
	End       string      `yaml:"end,omitempty"`
	Unclamped bool        `yaml:"unclamped,omitempty"`
	Tracks    []TrackSpec `yaml:"tracks,omitempty"`
	Reveal    *RevealSpec `yaml:"reveal,omitempty"`
}

// TrackSpec describes one track.
type TrackSpec struct {
	Property string `yaml:"property"`
	// Input is "progress" (default), "pointerX" or "pointerY".
	Input  string    `yaml:"input,omitempty"`
	Domain []float64 `yaml:"domain"`
	Output []string  `yaml:"output"`
	// Extrapolate disables clamping at both ends of the domain.
	Extrapolate bool        `yaml:"extrapolate,omitempty"`
	Ease        string      `yaml:"ease,omitempty"`
	Spring      *SpringSpec `yaml:"spring,omitempty"`
}

// SpringSpec describes a spring. Mass defaults to 1.
type SpringSpec struct {
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
	Mass      float64 `yaml:"mass,omitempty"`
	Analytic  bool    `yaml:"analytic,omitempty"`
}

// RevealSpec describes a reveal. Once and Threshold are required.
type RevealSpec struct {
	Once      *bool    `yaml:"once"`
	Threshold *float64 `yaml:"threshold"`
	Margin    float64  `yaml:"margin,omitempty"`
	Delay     float32  `yaml:"delay,omitempty"`
	Duration  float32  `yaml:"duration,omitempty"`
	OffsetY   float64  `yaml:"offsetY,omitempty"`
	// Stagger, when positive, reveals the node's children instead of the
	// node, child i delayed by a further i*Stagger seconds.
	Stagger float32 `yaml:"stagger,omitempty"`
}

// ErrUnknownNode is returned by Apply when a named node is not in the tree.
var ErrUnknownNode = errors.New("scrollfx: unknown node")

// easings maps config names to easing functions.
var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"inExpo":     ease.InExpo,
	"outExpo":    ease.OutExpo,
	"inOutExpo":  ease.InOutExpo,
	"outBack":    ease.OutBack,
	"outBounce":  ease.OutBounce,
}

// LoadChoreography parses and validates a YAML choreography. Every table,
// offset, spring and reveal is checked here so Apply only fails on node
// lookups.
func LoadChoreography(data []byte) (*Choreography, error) {
	var c Choreography
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("load choreography: %w", err)
	}
	for i := range c.Effects {
		if _, err := c.Effects[i].build(); err != nil {
			return nil, fmt.Errorf("load choreography: effect %d (%s): %w", i, c.Effects[i].Node, err)
		}
	}
	return &c, nil
}

// Apply attaches every effect to p. On error, bindings made so far are
// detached and nil is returned.
func (c *Choreography) Apply(p *Page) ([]*Binding, error) {
	var out []*Binding
	fail := func(err error) ([]*Binding, error) {
		for _, b := range out {
			b.Detach()
		}
		return nil, err
	}
	for i := range c.Effects {
		e := &c.Effects[i]
		bs, err := e.apply(p)
		if err != nil {
			return fail(fmt.Errorf("apply choreography: effect %d (%s): %w", i, e.Node, err))
		}
		out = append(out, bs...)
	}
	return out, nil
}

// builtEffect is an EffectSpec resolved into runtime values.
type builtEffect struct {
	start, end OffsetSpec
	tracks     []Track
	reveal     *RevealOptions
}

func (e *EffectSpec) build() (*builtEffect, error) {
	if e.Node == "" {
		return nil, errors.New("missing node")
	}
	b := &builtEffect{start: OffsetStartEnd, end: OffsetEndStart}
	var err error
	if e.Start != "" {
		if b.start, err = ParseOffset(e.Start); err != nil {
			return nil, err
		}
	}
	if e.End != "" {
		if b.end, err = ParseOffset(e.End); err != nil {
			return nil, err
		}
	}
	for j := range e.Tracks {
		t, err := e.Tracks[j].build()
		if err != nil {
			return nil, fmt.Errorf("track %d (%s): %w", j, e.Tracks[j].Property, err)
		}
		b.tracks = append(b.tracks, t)
	}
	if e.Reveal != nil {
		r := e.Reveal
		if r.Once == nil || r.Threshold == nil {
			return nil, errors.New("reveal: once and threshold are required")
		}
		if *r.Threshold < 0 || *r.Threshold > 1 {
			return nil, fmt.Errorf("reveal: threshold %g: %w", *r.Threshold, ErrInvalidThreshold)
		}
		b.reveal = &RevealOptions{
			Once:      *r.Once,
			Threshold: *r.Threshold,
			Margin:    r.Margin,
			Delay:     r.Delay,
			Duration:  r.Duration,
			OffsetY:   r.OffsetY,
		}
	}
	if len(b.tracks) == 0 && b.reveal == nil {
		return nil, errors.New("no tracks and no reveal")
	}
	return b, nil
}

func (t *TrackSpec) build() (Track, error) {
	prop, ok := ParseProperty(t.Property)
	if !ok {
		return Track{}, fmt.Errorf("unknown property %q", t.Property)
	}
	in, err := ParseInterpolation(t.Domain, t.Output...)
	if err != nil {
		return Track{}, err
	}
	if t.Extrapolate {
		in.ClampBelow, in.ClampAbove = false, false
	}
	if t.Ease != "" {
		fn, ok := easings[t.Ease]
		if !ok {
			return Track{}, fmt.Errorf("unknown ease %q", t.Ease)
		}
		in.Ease = fn
	}
	tr := Track{Property: prop, Interp: in}
	switch t.Input {
	case "", "progress":
	case "pointerX":
		tr.Input = PointerOffset(true)
	case "pointerY":
		tr.Input = PointerOffset(false)
	default:
		return Track{}, fmt.Errorf("unknown input %q", t.Input)
	}
	if t.Spring != nil {
		cfg := SpringConfig{
			Stiffness: t.Spring.Stiffness,
			Damping:   t.Spring.Damping,
			Mass:      t.Spring.Mass,
			Analytic:  t.Spring.Analytic,
		}
		if cfg.Mass == 0 {
			cfg.Mass = 1
		}
		// Both progress and pointer inputs rest at 0.
		s, err := NewSpring(cfg, in.Evaluate(0).Num)
		if err != nil {
			return Track{}, err
		}
		tr.Spring = s
	}
	return tr, nil
}

func (e *EffectSpec) apply(p *Page) ([]*Binding, error) {
	built, err := e.build()
	if err != nil {
		return nil, err
	}
	target := p.root.Find(e.Node)
	if target == nil {
		return nil, fmt.Errorf("node %q: %w", e.Node, ErrUnknownNode)
	}
	region := target
	if e.Region != "" {
		if region = p.root.Find(e.Region); region == nil {
			return nil, fmt.Errorf("region %q: %w", e.Region, ErrUnknownNode)
		}
	}

	var out []*Binding
	if len(built.tracks) > 0 {
		c := &Consumer{
			Name:      "config:" + e.Node,
			Unclamped: e.Unclamped,
			Tracks:    built.tracks,
			Sink:      target,
		}
		out = append(out, p.bind(c, target, region, built.start, built.end))
	}
	if built.reveal != nil {
		nodes := []*Node{target}
		plan := StaggerPlan{}
		if e.Reveal.Stagger > 0 {
			nodes = target.Children()
			plan.Increment = float64(e.Reveal.Stagger)
		}
		bs, err := p.RevealStagger(nodes, plan, *built.reveal)
		if err != nil {
			for _, b := range out {
				b.Detach()
			}
			return nil, err
		}
		out = append(out, bs...)
	}
	return out, nil
}
