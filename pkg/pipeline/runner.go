package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"asciigen/pkg/cache"
	"asciigen/pkg/errors"
	"asciigen/pkg/raster"
)

// Runner executes conversions with artifact caching.
//
// The Runner is stateless except for the cache and logger - it doesn't store
// conversion results. Multiple goroutines can safely share one Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute reads the image at opts.ImagePath and converts it.
// A missing or unreadable file is a FILE_NOT_FOUND error; the caller turns
// that into the process exit code.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	if err := errors.ValidateImagePath(opts.ImagePath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(opts.ImagePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image %s does not exist", opts.ImagePath)
		}
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read image %s", opts.ImagePath)
	}

	return r.ExecuteBytes(ctx, data, opts)
}

// ExecuteBytes converts an in-memory encoded image.
// This is the entry point the HTTP server uses for uploads; Execute wraps it
// for files on disk. The cache key is the content hash of data plus the
// conversion options, so identical uploads hit the same artifact.
func (r *Runner) ExecuteBytes(ctx context.Context, data []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	key := r.Keyer.ArtifactKey(cache.Hash(data), opts.keyOpts())

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var a artifact
			if err := json.Unmarshal(cached, &a); err == nil {
				r.Logger.Debug("artifact cache hit", "width", a.Width, "height", a.Height)
				return &Result{
					Text:         a.Text,
					Width:        a.Width,
					Height:       a.Height,
					SourceWidth:  a.SourceWidth,
					SourceHeight: a.SourceHeight,
					CacheInfo:    CacheInfo{ArtifactHit: true},
				}, nil
			}
			// Corrupt entry: drop it and reconvert.
			_ = r.Cache.Delete(ctx, key)
		}
	}

	decodeStart := time.Now()
	img, err := raster.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	decodeTime := time.Since(decodeStart)

	result, err := Convert(img, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.DecodeTime = decodeTime

	r.Logger.Info("converted image",
		"grid", result.Width, "rows", result.Height,
		"duration", (decodeTime + result.Stats.ResizeTime + result.Stats.RenderTime).Round(time.Millisecond))

	encoded, err := json.Marshal(artifact{
		Text:         result.Text,
		Width:        result.Width,
		Height:       result.Height,
		SourceWidth:  result.SourceWidth,
		SourceHeight: result.SourceHeight,
	})
	if err == nil {
		_ = r.Cache.Set(ctx, key, encoded, cache.TTLArtifact)
	}

	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
