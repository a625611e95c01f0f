package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hoanghai1803/inkwell/internal/blogs"
	"github.com/hoanghai1803/inkwell/internal/config"
	"github.com/hoanghai1803/inkwell/internal/models"
	"github.com/hoanghai1803/inkwell/internal/query"
	"github.com/hoanghai1803/inkwell/internal/remote"
)

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitRemoteError  = 3
	ExitNotFound     = 4
)

func main() {
	app := &cli.App{
		Name:    "inkwell",
		Usage:   "Read and write posts on a blog service",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath(),
				Usage:   "Config file path (created with defaults if missing)",
				EnvVars: []string{"INKWELL_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log debug messages",
			},
		},
		Before: setupLogging,
		Action: runServe,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the web reader (default)",
				Action: runServe,
			},
			{
				Name:   "tui",
				Usage:  "Open the terminal reader",
				Action: runTUI,
			},
			{
				Name:  "list",
				Usage: "List posts, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "category",
						Usage: "Only posts in this category",
					},
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Only posts whose title, description or category contains this text",
					},
				},
				Action: listBlogs,
			},
			{
				Name:      "show",
				Usage:     "Print one post",
				ArgsUsage: "<id>",
				Action:    showBlog,
			},
			{
				Name:  "create",
				Usage: "Publish a new post",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Post title"},
					&cli.StringFlag{Name: "description", Usage: "Short summary shown in the list"},
					&cli.StringFlag{Name: "content", Usage: "Post body; blank lines separate paragraphs"},
					&cli.StringFlag{Name: "category", Value: models.Categories[0], Usage: "Post category"},
					&cli.StringFlag{Name: "cover-url", Usage: "Cover image URL"},
					&cli.StringFlag{Name: "cover-file", Usage: "Local cover image, sent inline"},
				},
				Action: createBlog,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitGeneralError)
	}
}

// setupLogging sends slog output to stderr. The tui command replaces the
// handler with a file logger.
func setupLogging(c *cli.Context) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(c)})))
	return nil
}

func logLevel(c *cli.Context) slog.Level {
	if c.Bool("verbose") {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// env bundles what every command needs.
type env struct {
	cfg   *config.Config
	cache *query.Client
	svc   *blogs.Service
}

func (e *env) Close() {
	e.cache.Close()
}

func loadEnv(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	client, err := remote.New(remote.Config{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout(),
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		UserAgent:         "inkwell/" + c.App.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("creating blog client: %w", err)
	}

	cache := query.New(query.Options{
		StaleTime:   cfg.Cache.StaleTime(),
		GCTime:      cfg.Cache.GCTime(),
		Retry:       cfg.Cache.Retries(),
		ShouldRetry: remote.Retryable,
	})

	slog.Debug("blog service configured", "base_url", cfg.API.BaseURL, "stale", cfg.Cache.StaleTime().String())
	return &env{cfg: cfg, cache: cache, svc: blogs.NewService(client, cache)}, nil
}
