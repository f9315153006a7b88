// Package raster handles the image side of the conversion pipeline: decoding
// a source bitmap, resizing it to the target character grid, and reducing it
// to per-pixel grayscale intensities.
//
// Decoding supports PNG, JPEG and GIF via the standard library plus BMP,
// TIFF and WebP via golang.org/x/image. Resizing and grayscale conversion
// are delegated to github.com/disintegration/imaging.
package raster

import (
	"image"
	"io"

	"github.com/disintegration/imaging"

	// Register decoders for formats beyond imaging's built-in set.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"asciigen/pkg/errors"
)

// HeightTrimFactor is the empirical vertical reduction applied after the
// aspect-ratio scale. Terminal cells are taller than they are wide, so
// without the trim the rendered image looks stretched.
const HeightTrimFactor = 0.3

// Decode decodes an image from r using any registered format.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "decode image data")
	}
	return img, nil
}

// TargetHeight computes the resized height for a source of srcWidth x
// srcHeight scaled to targetWidth columns. The aspect-ratio height is
// reduced by HeightTrimFactor to compensate for terminal character cells:
//
//	h1 = targetWidth * srcHeight / srcWidth
//	height = h1 - int(h1 * 0.3)
//
// A zero source width or a resulting height below one row is reported as an
// INVALID_GEOMETRY error rather than producing an empty grid.
func TargetHeight(targetWidth, srcWidth, srcHeight int) (int, error) {
	if srcWidth < 1 || srcHeight < 1 {
		return 0, errors.New(errors.ErrCodeInvalidGeometry,
			"source image has degenerate dimensions %dx%d", srcWidth, srcHeight)
	}

	h1 := targetWidth * srcHeight / srcWidth
	height := h1 - int(float64(h1)*HeightTrimFactor)
	if height < 1 {
		return 0, errors.New(errors.ErrCodeInvalidGeometry,
			"source %dx%d is too wide for target width %d (computed height %d)",
			srcWidth, srcHeight, targetWidth, height)
	}
	return height, nil
}

// Resize scales img to exactly targetWidth columns and the trimmed
// aspect-ratio height, using Lanczos resampling.
func Resize(img image.Image, targetWidth int) (*image.NRGBA, error) {
	bounds := img.Bounds()
	height, err := TargetHeight(targetWidth, bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	return imaging.Resize(img, targetWidth, height, imaging.Lanczos), nil
}

// Grayscale converts img to grayscale using ITU-R 601 luma weights
// (0.299 R + 0.587 G + 0.114 B).
func Grayscale(img image.Image) *image.NRGBA {
	return imaging.Grayscale(img)
}

// Intensities extracts per-pixel luminance values in row-major order from a
// grayscale image. For grayscale NRGBA the three channels are equal, so the
// red channel is the luminance.
func Intensities(img *image.NRGBA) []uint8 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	out := make([]uint8, 0, w*h)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			out = append(out, row[x*4])
		}
	}
	return out
}
