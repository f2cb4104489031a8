// Package scrollfx is a scroll-linked animation runtime for [Ebitengine].
//
// A page is a tree of boxes inside a scrolling viewport. Visual properties
// of those boxes (offset, scale, rotation, tilt, opacity, fill width) are
// derived each frame from where a region sits relative to the viewport,
// from the pointer, or from one-shot reveal triggers, optionally smoothed
// by springs.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	page := scrollfx.NewPage(960, 640)
//	// ... add nodes and effects ...
//	page.FitContent()
//	scrollfx.Run(page, scrollfx.RunConfig{
//		Title: "My Page", Width: 960, Height: 640,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Page.Update], [Page.Draw] and [Page.Layout], or drive the page headless
// with [Page.Step].
//
// # Regions and progress
//
// A [Measurer] tracks regions and measures them only when layout changed,
// the viewport resized, or a scroll gesture started; never inside a tick.
// Progress through a region is defined by two [OffsetSpec]s, each pairing
// an edge of the region with an edge of the viewport:
//
//	// 0 when the region's top meets the viewport's bottom,
//	// 1 when the region's bottom meets the viewport's top.
//	p := scrollfx.Progress(scroll, rect, scrollfx.OffsetStartEnd, scrollfx.OffsetEndStart, true)
//
// # Tracks
//
// An [Interpolation] maps an input to a [Value] through a breakpoint table.
// A [Track] binds one to a [Property], optionally through a spring:
//
//	y := scrollfx.MustInterpolation(scrollfx.ParseInterpolation([]float64{0, 1}, "-10%", "10%"))
//	c := &scrollfx.Consumer{
//		Sink:   img,
//		Tracks: []scrollfx.Track{{Property: scrollfx.PropTranslateY, Interp: y}},
//	}
//	page.Attach(c, frame, scrollfx.OffsetStartEnd, scrollfx.OffsetEndStart)
//
// The [Runtime] reads one [Sample] per tick, evaluates every consumer
// against it and publishes all values in a single pass, so no consumer sees
// a half-updated frame.
//
// # Effects
//
// Common compositions are ready-made on [Page]: Parallax, HeroFade,
// ProgressBar, Marquee, HorizontalTrack, Tilt, Reveal, RevealStagger and
// Stagger. [LoadChoreography] builds the same from YAML.
//
// # Text
//
// [LoadFont] parses a TrueType font and [NewLabel] creates a node sized to
// its text. Labels follow their node's animated transform and alpha.
//
// # Debug mode
//
// [Page.SetDebugMode] enables panics on disposed-node misuse, tree depth
// warnings, and periodic tick stats on stderr.
//
// # ECS integration
//
// The scrollfx/ecs module forwards reveal events into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package scrollfx
