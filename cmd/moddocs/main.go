package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/moddocs/internal/config"
	"git.home.luguber.info/inful/moddocs/internal/linkcheck"
	"git.home.luguber.info/inful/moddocs/internal/modpages"
	"git.home.luguber.info/inful/moddocs/internal/site"
	"git.home.luguber.info/inful/moddocs/internal/version"
	"git.home.luguber.info/inful/moddocs/internal/watch"
)

var CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"moddocs.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `help:"Print version information and quit"`

	Build struct {
	} `cmd:"" help:"Build the documentation site"`

	Check struct {
	} `cmd:"" help:"Render all pages and verify internal links without writing output"`

	Watch struct {
	} `cmd:"" help:"Build, then rebuild whenever the documentation tree changes"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`
}

func main() {
	ctx := kong.Parse(&CLI, kong.Vars{"version": version.Version})

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "build":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runBuild(cfg); err != nil {
			slog.Error("Build failed", "error", err)
			os.Exit(1)
		}
	case "check":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		broken, err := runCheck(cfg)
		if err != nil {
			slog.Error("Check failed", "error", err)
			os.Exit(1)
		}
		if broken > 0 {
			slog.Error("Broken internal links found", "count", broken)
			os.Exit(1)
		}
	case "watch":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runWatch(cfg); err != nil {
			slog.Error("Watch failed", "error", err)
			os.Exit(1)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Configuration file written", "path", CLI.Config)
	}
}

// runBuild produces the site once. Every build gets a fresh plugin so the
// module-list memoization never outlives one invocation.
func runBuild(cfg *config.Config) error {
	plugin, err := modpages.New(cfg)
	if err != nil {
		return err
	}

	report, err := site.NewBuilder(cfg, plugin).Build()
	if err != nil {
		return err
	}

	slog.Info("Build complete",
		"build_id", report.BuildID,
		"pages", report.Pages,
		"assets", report.Assets,
		"duration", report.Duration)
	return nil
}

// runCheck renders every page and verifies internal links, writing nothing.
func runCheck(cfg *config.Config) (int, error) {
	plugin, err := modpages.New(cfg)
	if err != nil {
		return 0, err
	}

	builder := site.NewBuilder(cfg, plugin)
	files, err := builder.Files()
	if err != nil {
		return 0, err
	}

	checker := linkcheck.NewChecker(files)
	broken := 0
	for _, f := range files {
		if !f.Page {
			continue
		}
		markdown, err := builder.RenderPageMarkdown(f)
		if err != nil {
			return 0, err
		}
		for _, finding := range checker.CheckPage(f, markdown) {
			slog.Warn("Broken internal link",
				"page", finding.Page,
				"destination", finding.Destination)
			broken++
		}
	}

	slog.Info("Check complete", "pages", len(files), "broken_links", broken)
	return broken, nil
}

// runWatch builds once, then rebuilds on changes until interrupted.
func runWatch(cfg *config.Config) error {
	if err := runBuild(cfg); err != nil {
		// Surface the first build's failure but keep watching; the author
		// is probably mid-edit.
		slog.Error("Initial build failed", "error", err)
	}

	watcher, err := watch.New(cfg.Site.DocsDir, func() error {
		return runBuild(cfg)
	})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Info("Watching for changes, press Ctrl-C to stop")
	if err := watcher.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
