package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"asciigen/pkg/errors"
)

// uniformImage builds a w x h image filled with a single color.
func uniformImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestTargetHeight(t *testing.T) {
	tests := []struct {
		name        string
		targetWidth int
		srcW, srcH  int
		want        int
		wantErr     bool
	}{
		{"wide source 200x100 at 120", 120, 200, 100, 42, false}, // 100*120/200=60, 60-18=42
		{"square source", 120, 100, 100, 84, false},              // h1=120, trim 36
		{"tall source", 50, 100, 400, 140, false},                // h1=200, trim 60
		{"zero source width", 120, 0, 100, 0, true},
		{"zero source height", 120, 100, 0, 0, true},
		{"too wide for one row", 10, 1000, 10, 0, true}, // h1=0
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TargetHeight(tt.targetWidth, tt.srcW, tt.srcH)
			if (err != nil) != tt.wantErr {
				t.Fatalf("TargetHeight error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidGeometry) {
					t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidGeometry)
				}
				return
			}
			if got != tt.want {
				t.Errorf("TargetHeight = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResizeDimensions(t *testing.T) {
	img := uniformImage(200, 100, color.White)

	resized, err := Resize(img, 120)
	if err != nil {
		t.Fatalf("Resize error: %v", err)
	}

	bounds := resized.Bounds()
	if bounds.Dx() != 120 || bounds.Dy() != 42 {
		t.Errorf("resized to %dx%d, want 120x42", bounds.Dx(), bounds.Dy())
	}
}

func TestResizeDegenerateSource(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 0, 0))

	if _, err := Resize(img, 120); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
		t.Errorf("expected INVALID_GEOMETRY, got %v", err)
	}
}

func TestGrayscaleUniform(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want uint8
	}{
		{"white", color.NRGBA{255, 255, 255, 255}, 255},
		{"black", color.NRGBA{0, 0, 0, 255}, 0},
		{"mid gray", color.NRGBA{128, 128, 128, 255}, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gray := Grayscale(uniformImage(8, 4, tt.c))
			for i, v := range Intensities(gray) {
				if v != tt.want {
					t.Fatalf("pixel %d intensity = %d, want %d", i, v, tt.want)
				}
			}
		})
	}
}

func TestIntensitiesOrderAndLength(t *testing.T) {
	// Two rows: black on top, white below. Row-major order must keep the
	// dark row first.
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for x := 0; x < 3; x++ {
		img.Set(x, 0, color.NRGBA{0, 0, 0, 255})
		img.Set(x, 1, color.NRGBA{255, 255, 255, 255})
	}

	got := Intensities(Grayscale(img))
	if len(got) != 6 {
		t.Fatalf("got %d intensities, want 6", len(got))
	}
	for i := 0; i < 3; i++ {
		if got[i] != 0 {
			t.Errorf("top row pixel %d = %d, want 0", i, got[i])
		}
		if got[3+i] != 255 {
			t.Errorf("bottom row pixel %d = %d, want 255", i, got[3+i])
		}
	}
}

func TestDecodeUndecodableData(t *testing.T) {
	_, err := Decode(strings.NewReader("plain text, not image data"))
	if !errors.Is(err, errors.ErrCodeDecodeFailed) {
		t.Errorf("expected DECODE_FAILED, got %v", err)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, uniformImage(20, 10, color.White)); err != nil {
		t.Fatal(err)
	}

	img, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("decoded %dx%d, want 20x10", b.Dx(), b.Dy())
	}
}
