package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"asciigen/pkg/errors"
	"asciigen/pkg/pipeline"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	imagePath  string // input image file path
	outputDir  string // output directory, created if absent
	outputFile string // output file name inside outputDir
	width      int    // target column count
	noCache    bool   // disable the artifact cache
	refresh    bool   // reconvert even when cached
	toStdout   bool   // print the grid instead of writing a file
	preview    bool   // echo the grid after writing the file
}

// convertCommand creates the convert command for rendering an image as
// ASCII text.
//
// Defaults come from the config file when present, otherwise: width 120,
// output directory "output", output file "ascii_image.txt".
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Render an image as an ASCII text grid",
		Long: `Render an image as an ASCII text grid.

The image is resized to the target width (keeping aspect ratio, with a 30%
height reduction to compensate for terminal character cells), grayscaled,
and mapped onto an 11-glyph brightness ramp. The grid is written to
<output-path>/<output-file-name>, creating the directory if needed.

Conversions are cached by image content and options; use --no-cache or
--refresh to bypass the cache.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConvertDefaults(&opts, c)
			if err := validateConvertOpts(&opts); err != nil {
				return err
			}
			return c.runConvert(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.imagePath, "image-path", "i", "", "path to the input image (required)")
	cmd.Flags().StringVarP(&opts.outputDir, "output-path", "p", "", "output directory (default \"output\")")
	cmd.Flags().StringVarP(&opts.outputFile, "output-file-name", "o", "", "output file name (default \"ascii_image.txt\")")
	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "target width in characters (default 120)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the conversion cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "reconvert even if a cached result exists")
	cmd.Flags().BoolVar(&opts.toStdout, "stdout", false, "print the grid to stdout instead of writing a file")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "print the grid to the terminal after writing the file")
	_ = cmd.MarkFlagRequired("image-path")

	return cmd
}

// applyConvertDefaults fills unset flags from the loaded configuration.
func applyConvertDefaults(opts *convertOpts, c *CLI) {
	if opts.width == 0 {
		opts.width = c.Config.Width
	}
	if opts.outputDir == "" {
		opts.outputDir = c.Config.OutputDir
	}
	if opts.outputFile == "" {
		opts.outputFile = c.Config.OutputFile
	}
}

// validateConvertOpts checks the resolved options before the pipeline runs.
func validateConvertOpts(opts *convertOpts) error {
	if err := errors.ValidateImagePath(opts.imagePath); err != nil {
		return err
	}
	if err := errors.ValidateTargetWidth(opts.width); err != nil {
		return err
	}
	if !opts.toStdout {
		if err := errors.ValidateOutputFileName(opts.outputFile); err != nil {
			return err
		}
	}
	return nil
}

// runConvert executes the conversion pipeline and writes the artifact.
func (c *CLI) runConvert(ctx context.Context, opts *convertOpts) error {
	logger := loggerFromContext(ctx)
	logger.Info("converting image", "path", opts.imagePath, "width", opts.width)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Converting %s...", opts.imagePath))
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		ImagePath: opts.imagePath,
		Width:     opts.width,
		Refresh:   opts.refresh,
		Logger:    logger,
	})
	if err != nil {
		spinner.StopWithError("Conversion failed")
		return err
	}
	spinner.Stop()

	if opts.toStdout {
		fmt.Print(result.Text)
		prog.done("Converted")
		return nil
	}

	path, err := writeArtifact(opts.outputDir, opts.outputFile, result.Text)
	if err != nil {
		return err
	}

	printSuccess("ASCII image written")
	printFile(path)
	printStats(result.Width, result.Height, result.CacheInfo.ArtifactHit)
	prog.done(fmt.Sprintf("Converted %s", opts.imagePath))

	if opts.preview {
		fmt.Print(result.Text)
	}
	return nil
}
