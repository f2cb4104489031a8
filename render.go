package scrollfx

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Every box is drawn by scaling it.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// Draw paints the visible part of the tree onto screen, offset by the
// viewport's scroll.
func (p *Page) Draw(screen *ebiten.Image) {
	if p.ClearColor.A > 0 {
		screen.Fill(p.ClearColor.toRGBA())
	}
	view := [6]float64{1, 0, 0, 1, 0, -p.viewport.Scroll}
	p.draw(screen, p.root, view, 1)
}

// draw walks the tree depth first. Children are always traversed, since
// their animated offsets can move them into view when the parent is not.
func (p *Page) draw(screen *ebiten.Image, n *Node, parent [6]float64, parentAlpha float64) {
	if !n.Visible || n.disposed {
		return
	}
	m := multiplyAffine(parent, n.localTransform())
	alpha := parentAlpha * n.Alpha
	if alpha <= 0 {
		return
	}
	if n.Width > 0 && n.Height > 0 && n.Fill > 0 && n.Color.A > 0 && p.onScreen(m, n.Width*n.Fill, n.Height) {
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(n.Width*n.Fill, n.Height)
		op.GeoM.Concat(affineGeoM(m))
		a := float32(alpha * n.Color.A)
		op.ColorScale.Scale(float32(n.Color.R)*a, float32(n.Color.G)*a, float32(n.Color.B)*a, a)
		screen.DrawImage(ensureWhitePixel(), &op)
	}
	if n.Label != nil && p.onScreen(m, n.Width, n.Height) {
		drawLabel(screen, n, m, alpha)
	}
	for _, c := range n.children {
		p.draw(screen, c, m, alpha)
	}
}

// onScreen reports whether the transformed w x h box overlaps the viewport.
func (p *Page) onScreen(m [6]float64, w, h float64) bool {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		x, y := transformPoint(m, c[0], c[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	vp := p.viewport
	return maxX >= 0 && maxY >= 0 && minX <= vp.Width && minY <= vp.Height
}

// affineGeoM converts an affine matrix to an ebiten.GeoM.
func affineGeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// Layout implements ebiten.Game. The page follows the window size.
func (p *Page) Layout(outsideWidth, outsideHeight int) (int, int) {
	p.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}
