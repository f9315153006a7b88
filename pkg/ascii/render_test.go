package ascii

import (
	"strings"
	"testing"
)

func TestFlattenLength(t *testing.T) {
	intensities := make([]uint8, 120*42)
	flat := Flatten(intensities, DefaultRamp)

	if len(flat) != len(intensities) {
		t.Errorf("Flatten length = %d, want %d", len(flat), len(intensities))
	}
	if flat != strings.Repeat("@", len(intensities)) {
		t.Error("all-zero intensities should map to all '@'")
	}
}

func TestReflowLines(t *testing.T) {
	flat := strings.Repeat(".", 12)
	out := Reflow(flat, 4)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, line := range lines {
		if len(line) != 4 {
			t.Errorf("line %d has width %d, want 4", i, len(line))
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("last line should be newline-terminated")
	}
}

func TestReflowRoundTrip(t *testing.T) {
	flat := Flatten([]uint8{0, 50, 100, 150, 200, 250, 10, 60, 110, 160, 210, 255}, DefaultRamp)
	out := Reflow(flat, 3)

	if got := strings.ReplaceAll(out, "\n", ""); got != flat {
		t.Errorf("reflow round trip = %q, want %q", got, flat)
	}
}

func TestReflowShortFinalChunk(t *testing.T) {
	// Defensive: a flat string that is not a multiple of width keeps its
	// trailing partial line instead of being dropped or padded.
	out := Reflow("@@@@@", 3)
	if out != "@@@\n@@\n" {
		t.Errorf("Reflow(5 glyphs, width 3) = %q", out)
	}
}

func TestReflowDegenerate(t *testing.T) {
	if got := Reflow("", 10); got != "" {
		t.Errorf("Reflow of empty string = %q, want empty", got)
	}
	if got := Reflow("abc", 0); got != "abc" {
		t.Errorf("Reflow with width 0 = %q, want input unchanged", got)
	}
}

func TestRenderUniformWhite(t *testing.T) {
	// 120x42 uniform white image: every glyph is '.', 42 lines of 120.
	const w, h = 120, 42
	intensities := make([]uint8, w*h)
	for i := range intensities {
		intensities[i] = 255
	}

	out := Render(intensities, w, DefaultRamp)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != h {
		t.Fatalf("got %d lines, want %d", len(lines), h)
	}
	for _, line := range lines {
		if line != strings.Repeat(".", w) {
			t.Fatal("uniform white should render as '.' lines")
		}
	}

	// Byte count excluding newlines equals width*height.
	if got := len(strings.ReplaceAll(out, "\n", "")); got != w*h {
		t.Errorf("glyph count = %d, want %d", got, w*h)
	}
}
