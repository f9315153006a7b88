// Package ascii maps grayscale pixel intensities to characters and lays the
// resulting glyph stream out as newline-delimited text.
//
// The mapping uses a fixed 11-character ramp ordered darkest to lightest.
// Each intensity in [0,255] is bucketed into one of the 11 glyphs by integer
// division, so a fully black pixel renders as '@' and a fully white pixel
// renders as '.'.
package ascii

// Ramp is an ordered sequence of glyphs, darkest to lightest.
type Ramp string

// DefaultRamp is the standard 11-glyph brightness ramp.
const DefaultRamp = Ramp("@#$%?*+;:,.")

// bucketWidth is the intensity range covered by each ramp glyph.
// 255/25 = 10, so all intensities land inside the 11-glyph ramp.
const bucketWidth = 25

// Glyph returns the ramp character for an intensity in [0,255].
// The index is clamped to the last glyph; for intensities in range the
// clamp never fires, it only guards against a shortened custom ramp.
func (r Ramp) Glyph(intensity uint8) byte {
	idx := int(intensity) / bucketWidth
	if idx >= len(r) {
		idx = len(r) - 1
	}
	return r[idx]
}

// Contains reports whether b is one of the ramp's glyphs.
func (r Ramp) Contains(b byte) bool {
	for i := 0; i < len(r); i++ {
		if r[i] == b {
			return true
		}
	}
	return false
}
