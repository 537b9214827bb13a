// pattern: Imperative Shell
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"gitahead/internal/cache"
	"gitahead/internal/config"
	"gitahead/internal/events"
	"gitahead/internal/git"
	"gitahead/internal/inspect"
	"gitahead/internal/instance"
	"gitahead/internal/logging"
	"gitahead/internal/report"
	"gitahead/internal/scan"
	"gitahead/internal/status"
	"gitahead/internal/tui"
)

// ResolveDataDir returns the data directory for lock and log files.
// If configDir is specified, uses that; otherwise the default config dir.
func ResolveDataDir(configDir string) string {
	if configDir != "" {
		return configDir
	}
	return config.ConfigDir()
}

// loadConfig loads the configuration from the specified directory or default location.
func loadConfig(configDir string) (config.Config, error) {
	if configDir != "" {
		return config.LoadFromDir(configDir)
	}
	return config.Load()
}

// runScan is the default scan entry point.
func (a *App) runScan(opts Options) int {
	cfg, err := loadConfig(opts.ConfigDir)
	if err != nil {
		return a.fail(err)
	}
	opts.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return a.fail(fmt.Errorf("invalid config: %w", err))
	}

	dataDir := ResolveDataDir(opts.ConfigDir)
	logCfg := logging.Config{
		FilePath: filepath.Join(dataDir, "git-ahead.log"),
		Level:    cfg.LogLevel,
	}
	if opts.Verbose {
		logCfg.Console = a.stderr
	}
	logManager, err := logging.NewManager(logCfg)
	if err != nil {
		return a.fail(fmt.Errorf("failed to initialize logging: %w", err))
	}
	defer func() { _ = logManager.Close() }()

	appLogger := logManager.For("app")
	appLogger.Info("application starting", "version", a.version)

	if opts.Dev {
		agg, ok, err := cache.Load(cfg.CacheFile)
		if err != nil {
			return a.fail(err)
		}
		if ok {
			appLogger.Info("rendering cached results", "cache", cfg.CacheFile)
			return a.output(agg, cfg, opts)
		}
	}

	root := opts.Path
	if root == "" {
		if root, err = os.Getwd(); err != nil {
			return a.fail(err)
		}
	}

	fl, err := instance.Lock(dataDir)
	if err != nil {
		return a.fail(err)
	}
	defer instance.Cleanup(dataDir, fl)
	if err := instance.WriteOwner(dataDir, root); err != nil {
		appLogger.Warn("failed to write owner file", "error", err)
	}

	gitPath, err := cfg.ResolveGit()
	if err != nil {
		return a.fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	agg, err := a.scanRoot(ctx, root, gitPath, cfg, opts, logManager)
	if err != nil {
		return a.fail(err)
	}
	if ctx.Err() != nil {
		appLogger.Warn("scan interrupted")
		fmt.Fprintln(a.stderr, "Interrupted")
		return ExitInterrupted
	}

	if opts.Dev {
		if err := cache.Save(cfg.CacheFile, agg); err != nil {
			return a.fail(err)
		}
		appLogger.Info("wrote cache", "cache", cfg.CacheFile)
	}

	return a.output(agg, cfg, opts)
}

// scanRoot enumerates root and inspects every entry with live progress.
func (a *App) scanRoot(ctx context.Context, root, gitPath string, cfg config.Config, opts Options, logs logging.LoggerProvider) (*status.Aggregate, error) {
	client := git.NewClient(gitPath, cfg.CommandTimeout, logs.For("git"))
	inspector := inspect.New(client, logs, inspect.Options{SkipFetch: opts.NoFetch})

	mode := cfg.Progress
	if opts.JSON {
		mode = config.ProgressNone
	}
	progress := tui.NewProgress(mode, a.stderr, tui.NewStyles(cfg.Theme, a.stderr))

	orchestrator := scan.New(scan.Config{
		Root:        root,
		Concurrency: cfg.Concurrency,
		Inspector:   inspector,
		OnStarted: func(msg events.StartedMsg) {
			if !opts.JSON {
				fmt.Fprintln(a.stdout, "Found", msg.Total, "projects")
			}
		},
		OnProgress: progress.Update,
		OnDrained:  progress.Finish,
		Logs:       logs,
	})

	if !opts.JSON {
		fmt.Fprintln(a.stdout, "Using", root)
	}
	agg, err := orchestrator.Scan(ctx)
	if err != nil {
		return nil, err
	}
	if !opts.JSON {
		fmt.Fprintln(a.stdout, "Done")
	}
	return agg, nil
}

// output prints agg as JSON or as the text report and picks the exit code.
func (a *App) output(agg *status.Aggregate, cfg config.Config, opts Options) int {
	if opts.JSON {
		data, err := json.MarshalIndent(agg, "", "  ")
		if err != nil {
			return a.fail(err)
		}
		fmt.Fprintln(a.stdout, string(data))
	} else {
		err := report.Render(a.stdout, agg, report.Options{
			SkipUntracked:  cfg.SkipUntracked,
			MaxFiles:       cfg.MaxFiles,
			GroupByProject: cfg.GroupByProject,
			Theme:          cfg.Theme,
		})
		if err != nil {
			return a.fail(err)
		}
	}

	if opts.FailOnAttention && len(agg.NeedsAttention(cfg.SkipUntracked)) > 0 {
		return ExitAttention
	}
	return ExitOK
}

func (a *App) fail(err error) int {
	if errors.Is(err, instance.ErrAlreadyRunning) {
		fmt.Fprintf(a.stderr, "Error: %v. Wait for it to finish.\n", err)
		return ExitError
	}
	fmt.Fprintf(a.stderr, "Error: %v\n", err)
	return ExitError
}
