// Package cli implements the asciigen command-line interface.
//
// This package provides commands for converting images to ASCII art, serving
// the converter over HTTP, and managing the conversion artifact cache. The
// CLI is built using cobra; logging uses the charmbracelet/log library and
// is controlled by the --log-level flag.
//
// # Commands
//
// The main commands are:
//   - convert: Render an image as an ASCII text grid
//   - serve: Expose the converter as an HTTP service
//   - cache: Manage the conversion artifact cache
//
// # Example
//
//	import "asciigen/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"asciigen/pkg/buildinfo"
	"asciigen/pkg/cache"
	"asciigen/pkg/config"
	"asciigen/pkg/errors"
	"asciigen/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "asciigen"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config holds file-supplied defaults, loaded in the root
	// PersistentPreRunE before any command runs.
	Config config.Config

	configPath string
	logLevel   string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "asciigen renders images as ASCII art",
		Long:         `asciigen is a CLI tool that converts raster images into ASCII-art text: it resizes the image to a character grid, grayscales it, and maps each pixel's brightness onto an 11-glyph ramp.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVarP(&c.logLevel, "log-level", "l", "", "log level: debug, info, warn, error (default info)")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/asciigen/config.toml)")

	// Register all subcommands
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and applies the log level before any command
// runs. Flags beat the config file, the config file beats the defaults.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level := c.logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid log level %q", level)
	}
	c.Logger.SetLevel(parsed)

	ctx := withLogger(cmd.Context(), c.Logger)
	cmd.SetContext(ctx)

	c.Logger.Debug("configuration resolved",
		"log_level", level,
		"width", cfg.Width,
		"output_dir", cfg.OutputDir,
		"output_file", cfg.OutputFile,
		"serve_addr", cfg.Serve.Addr)
	return nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/asciigen/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// writeArtifact ensures dir exists (creating missing ancestors) and writes
// the text grid to dir/name, overwriting any existing file.
func writeArtifact(dir, name, text string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, err, "create output directory %s", dir)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
	}
	return path, nil
}
