package ascii

import "strings"

// Flatten maps intensities to ramp glyphs in their given (row-major) order.
// The returned string has exactly one glyph per intensity.
func Flatten(intensities []uint8, ramp Ramp) string {
	var b strings.Builder
	b.Grow(len(intensities))
	for _, v := range intensities {
		b.WriteByte(ramp.Glyph(v))
	}
	return b.String()
}

// Reflow chunks a flat glyph string into lines of exactly width characters,
// each terminated by a newline. A final chunk shorter than width (which a
// well-formed width*height stream never produces) is emitted as-is.
func Reflow(flat string, width int) string {
	if width < 1 || flat == "" {
		return flat
	}

	var b strings.Builder
	b.Grow(len(flat) + len(flat)/width + 1)
	for start := 0; start < len(flat); start += width {
		end := start + width
		if end > len(flat) {
			end = len(flat)
		}
		b.WriteString(flat[start:end])
		b.WriteByte('\n')
	}
	return b.String()
}

// Render maps intensities to glyphs and reflows them into width-sized lines.
func Render(intensities []uint8, width int, ramp Ramp) string {
	return Reflow(Flatten(intensities, ramp), width)
}
