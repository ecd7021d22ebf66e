package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Alicoder001/agent-skills/pkg/config"
	"github.com/Alicoder001/agent-skills/pkg/logger"
	"github.com/Alicoder001/agent-skills/pkg/presenter"
	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// WatchConfig holds configuration for the watch command
type WatchConfig struct {
	IgnoreDirs   []string
	Include      string
	Verbosity    string
	DebounceTime int
}

// NewWatchConfig creates a new WatchConfig with default values
func NewWatchConfig() *WatchConfig {
	return &WatchConfig{
		IgnoreDirs:   []string{".git", "node_modules"},
		Include:      "*.{md,yaml,yml,json,js}",
		Verbosity:    "normal",
		DebounceTime: 500,
	}
}

// Validate validates the WatchConfig and returns an error if invalid
func (c *WatchConfig) Validate() error {
	switch c.Verbosity {
	case "quiet", "normal", "verbose":
	default:
		return errors.Errorf("invalid verbosity level: %s, must be one of: quiet, normal, verbose", c.Verbosity)
	}
	if c.DebounceTime < 0 {
		return errors.Errorf("debounce time cannot be negative: %d", c.DebounceTime)
	}
	if c.Include != "" {
		if _, err := glob.Compile(c.Include); err != nil {
			return errors.Wrapf(err, "invalid include pattern %q", c.Include)
		}
	}
	return nil
}

// FileEvent represents a file system event with additional metadata
type FileEvent struct {
	Path string
	Op   fsnotify.Op
	Time time.Time
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate the catalog whenever it changes",
	Long: `Validate the catalog once, then watch the catalog root and validate
again after every burst of changes to markdown, YAML, JSON or wizard
files. Directories like .git and node_modules are ignored.`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		cfg := loadConfig()

		wc := getWatchConfigFromFlags(cmd, cfg)
		if err := wc.Validate(); err != nil {
			presenter.Error(err, "Invalid configuration")
			os.Exit(1)
		}
		if wc.Verbosity == "quiet" {
			presenter.SetQuiet(true)
		}

		if err := runWatchMode(ctx, cfg, wc); err != nil {
			presenter.Error(err, "Watch stopped")
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewWatchConfig()
	watchCmd.Flags().StringSliceP("ignore", "i", defaults.IgnoreDirs, "Directories to ignore (default ignore_dirs from config)")
	watchCmd.Flags().StringP("include", "p", defaults.Include, "File name pattern that triggers validation")
	watchCmd.Flags().StringP("verbosity", "v", defaults.Verbosity, "Verbosity level (quiet, normal, verbose)")
	watchCmd.Flags().IntP("debounce", "d", defaults.DebounceTime, "Debounce time in milliseconds for file change events")
}

// getWatchConfigFromFlags extracts watch configuration from command flags
func getWatchConfigFromFlags(cmd *cobra.Command, cfg config.Config) *WatchConfig {
	config := NewWatchConfig()
	if len(cfg.IgnoreDirs) > 0 {
		config.IgnoreDirs = cfg.IgnoreDirs
	}

	if cmd.Flags().Changed("ignore") {
		if ignoreDirs, err := cmd.Flags().GetStringSlice("ignore"); err == nil {
			config.IgnoreDirs = ignoreDirs
		}
	}
	if include, err := cmd.Flags().GetString("include"); err == nil {
		config.Include = include
	}
	if verbosity, err := cmd.Flags().GetString("verbosity"); err == nil {
		config.Verbosity = verbosity
	}
	if debounceTime, err := cmd.Flags().GetInt("debounce"); err == nil {
		config.DebounceTime = debounceTime
	}
	return config
}

func runWatchMode(ctx context.Context, cfg config.Config, wc *WatchConfig) error {
	log := logger.G(ctx).WithField("root", cfg.Root)

	var include glob.Glob
	if wc.Include != "" {
		include = glob.MustCompile(wc.Include)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close()

	if err := addWatchDirs(ctx, watcher, cfg.Root, wc.IgnoreDirs); err != nil {
		return errors.Wrap(err, "failed to watch directories")
	}

	revalidate := func() {
		if _, err := runValidate(ctx, cfg, NewValidateConfig()); err != nil {
			presenter.Error(err, "Validation could not run")
		}
	}
	revalidate()

	events := make(chan FileEvent)
	debouncedEvents := make(chan FileEvent)
	go debounceFileEvents(ctx, events, debouncedEvents, time.Duration(wc.DebounceTime)*time.Millisecond)

	go func() {
		for {
			select {
			case event := <-debouncedEvents:
				if wc.Verbosity != "quiet" {
					presenter.Separator()
					presenter.Info(fmt.Sprintf("Change detected: %s (%s)", event.Path, event.Op))
				}
				log.WithField("file", event.Path).WithField("operation", event.Op.String()).Debug("re-validating catalog")
				revalidate()
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if inIgnoredDir(cfg.Root, event.Name, wc.IgnoreDirs) {
					continue
				}
				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := addWatchDirs(ctx, watcher, event.Name, wc.IgnoreDirs); err != nil {
							log.WithError(err).WithField("directory", event.Name).Warn("failed to watch new directory")
						}
					}
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if include != nil && !include.Match(filepath.Base(event.Name)) {
					if wc.Verbosity == "verbose" {
						log.WithField("file", event.Name).Debug("ignoring change to unrelated file")
					}
					continue
				}
				select {
				case events <- FileEvent{Path: event.Name, Op: event.Op, Time: time.Now()}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				presenter.Error(err, "File watcher error")
				log.WithError(err).Error("error watching files")
			case <-ctx.Done():
				return
			}
		}
	}()

	presenter.Info("Watching for catalog changes... Press Ctrl+C to stop")
	<-ctx.Done()
	return nil
}

// addWatchDirs adds dir and every directory below it, except ignored ones.
func addWatchDirs(ctx context.Context, watcher *fsnotify.Watcher, dir string, ignoreDirs []string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isIgnored(d.Name(), ignoreDirs) {
			return filepath.SkipDir
		}
		logger.G(ctx).WithField("directory", path).Debug("adding directory to watcher")
		return watcher.Add(path)
	})
}

func isIgnored(name string, ignoreDirs []string) bool {
	for _, ignored := range ignoreDirs {
		if name == ignored {
			return true
		}
	}
	return false
}

// inIgnoredDir reports whether path lies below an ignored directory of root.
func inIgnoredDir(root, path string, ignoreDirs []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if isIgnored(part, ignoreDirs) {
			return true
		}
	}
	return false
}

// debounceFileEvents collapses a burst of events into the last one, sent
// once no new event arrived for delay.
func debounceFileEvents(ctx context.Context, input <-chan FileEvent, output chan<- FileEvent, delay time.Duration) {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending FileEvent
	)
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}

	for {
		select {
		case event, ok := <-input:
			if !ok {
				stop()
				return
			}
			pending = event
			if timer == nil {
				timer = time.NewTimer(delay)
			} else {
				timer.Reset(delay)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case output <- pending:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			stop()
			return
		}
	}
}
