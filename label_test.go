package scrollfx

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadFont_InvalidData(t *testing.T) {
	if _, err := LoadFont([]byte("not a font"), 16); err == nil {
		t.Error("expected error for invalid TTF data")
	}
}

func TestFont_Measure(t *testing.T) {
	f, err := LoadFont(goregular.TTF, 20)
	if err != nil {
		t.Fatal(err)
	}
	if f.LineHeight() <= 0 {
		t.Errorf("LineHeight = %v", f.LineHeight())
	}
	w1, h1 := f.MeasureString("scroll")
	w2, _ := f.MeasureString("scroll further")
	if w1 <= 0 || h1 <= 0 || w2 <= w1 {
		t.Errorf("widths %v, %v; height %v", w1, w2, h1)
	}
	_, h3 := f.MeasureString("two\nlines")
	if h3 <= h1 {
		t.Errorf("two-line height %v not taller than %v", h3, h1)
	}
}

func TestNewLabel(t *testing.T) {
	f, err := LoadFont(goregular.TTF, 20)
	if err != nil {
		t.Fatal(err)
	}
	n := NewLabel("title", "Hello", f, ColorWhite)
	w, h := f.MeasureString("Hello")
	if n.Width != w || n.Height != h {
		t.Errorf("size = %vx%v, want %vx%v", n.Width, n.Height, w, h)
	}
	if n.Color.A != 0 {
		t.Error("label node should not paint a box")
	}
	if n.Label == nil || n.Label.Content != "Hello" {
		t.Errorf("Label = %+v", n.Label)
	}
}
