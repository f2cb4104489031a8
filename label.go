package scrollfx

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font wraps Ebitengine's text/v2 for TrueType label rendering.
type Font struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("scrollfx: failed to parse TTF data: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// TextAlign controls horizontal placement of a label within its node.
type TextAlign uint8

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// Label is text drawn inside a node's layout box, under the node's
// animated transform and alpha. It does not affect measurement.
type Label struct {
	Content string
	Font    *Font
	Align   TextAlign
	Color   Color
}

// NewLabel creates a node sized to fit content in font.
func NewLabel(name, content string, font *Font, color Color) *Node {
	w, h := font.MeasureString(content)
	n := NewNode(name, w, h)
	n.Color = Color{}
	n.Label = &Label{Content: content, Font: font, Color: color}
	return n
}

// drawLabel draws n's label with the node's world matrix m.
func drawLabel(screen *ebiten.Image, n *Node, m [6]float64, alpha float64) {
	lb := n.Label
	if lb.Font == nil || lb.Content == "" || lb.Color.A <= 0 {
		return
	}
	op := &text.DrawOptions{}
	op.LineSpacing = lb.Font.lh
	switch lb.Align {
	case TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
		op.GeoM.Translate(n.Width/2, 0)
	case TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
		op.GeoM.Translate(n.Width, 0)
	}
	op.GeoM.Concat(affineGeoM(m))
	a := float32(alpha * lb.Color.A)
	op.ColorScale.Scale(float32(lb.Color.R)*a, float32(lb.Color.G)*a, float32(lb.Color.B)*a, a)
	text.Draw(screen, lb.Content, lb.Font.face, op)
}
