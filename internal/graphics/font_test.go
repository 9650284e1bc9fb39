package graphics

import (
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestBakeFontAtlas(t *testing.T) {
	a := BakeFontAtlas(basicfont.Face7x13)
	for r := rune(32); r <= 126; r++ {
		if _, ok := a.Characters[r]; !ok {
			t.Fatalf("glyph %q missing", r)
		}
	}
	if a.LineHeight != 13 {
		t.Errorf("line height = %d, want 13", a.LineHeight)
	}
	lit := 0
	for _, p := range a.Image.Pix {
		if p != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("atlas image is empty")
	}
}

func TestBuildVertices(t *testing.T) {
	a := BakeFontAtlas(basicfont.Face7x13)
	if got := len(a.BuildVertices("ab", 0, 20, 1)); got != 2*6*4 {
		t.Errorf("two glyphs gave %d floats", got)
	}
	// spaces advance without emitting a quad
	if got := len(a.BuildVertices("a b", 0, 20, 1)); got != 2*6*4 {
		t.Errorf("'a b' gave %d floats", got)
	}
	w, _ := a.Measure("abc", 2)
	if w != 3*7*2 {
		t.Errorf("width = %v, want 42", w)
	}
}
