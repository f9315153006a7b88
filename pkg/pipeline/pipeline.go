// Package pipeline provides the core image-to-ASCII conversion pipeline.
//
// This package implements the complete load → resize → grayscale → map →
// reflow pipeline used by both the CLI and the HTTP server. Centralizing it
// keeps behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Decode: read and decode the source image
//  2. Resize: scale to the target width with the terminal aspect trim
//  3. Grayscale: reduce to per-pixel luminance
//  4. Render: map luminance to ramp glyphs and reflow into lines
//
// Every stage failure is fatal for the run and propagates as a structured
// error; nothing is logged-and-continued.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{ImagePath: "cat.png"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(result.Text)
package pipeline

import (
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"asciigen/pkg/ascii"
	"asciigen/pkg/cache"
	"asciigen/pkg/errors"
	"asciigen/pkg/raster"
)

// DefaultTargetWidth is the column count images are resized to when no
// width is configured.
const DefaultTargetWidth = 120

// Options contains all configuration for one conversion.
type Options struct {
	// ImagePath is the source image file. Required for Execute; ignored by
	// ExecuteBytes, which receives the image data directly.
	ImagePath string `json:"image_path,omitempty"`

	// Width is the target column count. Defaults to DefaultTargetWidth.
	Width int `json:"width,omitempty"`

	// Refresh bypasses the cache and overwrites the stored artifact.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Width == 0 {
		o.Width = DefaultTargetWidth
	}
	if err := errors.ValidateTargetWidth(o.Width); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// keyOpts returns the cache key options for these conversion options.
func (o *Options) keyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Width: o.Width,
		Ramp:  string(ascii.DefaultRamp),
	}
}

// Result contains the outputs of one conversion.
type Result struct {
	// Text is the rendered grid: Height lines of Width glyphs, each line
	// newline-terminated.
	Text string

	// Width and Height are the rendered grid dimensions.
	Width  int
	Height int

	// SourceWidth and SourceHeight are the decoded image dimensions.
	SourceWidth  int
	SourceHeight int

	// Stats contains stage timings.
	Stats Stats

	// CacheInfo reports whether the artifact came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution timings.
type Stats struct {
	DecodeTime time.Duration
	ResizeTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache usage for a conversion.
type CacheInfo struct {
	ArtifactHit bool // Whether the rendered text came from cache
}

// artifact is the cached representation of a conversion result.
type artifact struct {
	Text         string `json:"text"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	SourceWidth  int    `json:"source_width"`
	SourceHeight int    `json:"source_height"`
}

// Convert runs the resize → grayscale → render stages on a decoded image.
// It is the pure core shared by Execute and ExecuteBytes; timings land in
// result.Stats, cache handling is the caller's concern.
func Convert(img image.Image, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	result := &Result{
		SourceWidth:  bounds.Dx(),
		SourceHeight: bounds.Dy(),
	}

	resizeStart := time.Now()
	resized, err := raster.Resize(img, opts.Width)
	if err != nil {
		return nil, err
	}
	gray := raster.Grayscale(resized)
	result.Stats.ResizeTime = time.Since(resizeStart)

	grayBounds := gray.Bounds()
	result.Width = grayBounds.Dx()
	result.Height = grayBounds.Dy()

	renderStart := time.Now()
	result.Text = ascii.Render(raster.Intensities(gray), result.Width, ascii.DefaultRamp)
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Debug("converted image",
		"source_width", result.SourceWidth,
		"source_height", result.SourceHeight,
		"grid_width", result.Width,
		"grid_height", result.Height)

	return result, nil
}
