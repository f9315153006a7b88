package ascii

import "testing"

func TestGlyphAnchors(t *testing.T) {
	tests := []struct {
		intensity uint8
		want      byte
	}{
		{0, '@'},    // darkest
		{24, '@'},   // last value in the first bucket
		{25, '#'},   // first value in the second bucket
		{125, '*'},  // 125/25 = 5
		{250, '.'},  // 250/25 = 10
		{255, '.'},  // lightest
	}

	for _, tt := range tests {
		if got := DefaultRamp.Glyph(tt.intensity); got != tt.want {
			t.Errorf("Glyph(%d) = %c, want %c", tt.intensity, got, tt.want)
		}
	}
}

func TestGlyphAlwaysInRamp(t *testing.T) {
	for i := 0; i <= 255; i++ {
		g := DefaultRamp.Glyph(uint8(i))
		if !DefaultRamp.Contains(g) {
			t.Fatalf("Glyph(%d) = %c is not a ramp glyph", i, g)
		}
	}
}

func TestGlyphClampShortRamp(t *testing.T) {
	// A ramp shorter than 11 glyphs must clamp instead of panicking.
	short := Ramp("@.")
	if got := short.Glyph(255); got != '.' {
		t.Errorf("short ramp Glyph(255) = %c, want .", got)
	}
}

func TestDefaultRampShape(t *testing.T) {
	if len(DefaultRamp) != 11 {
		t.Fatalf("DefaultRamp has %d glyphs, want 11", len(DefaultRamp))
	}
	if DefaultRamp[0] != '@' || DefaultRamp[len(DefaultRamp)-1] != '.' {
		t.Errorf("DefaultRamp should run darkest '@' to lightest '.', got %q", DefaultRamp)
	}
}
