package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/amkit/internal/applemusic"
	"github.com/desertthunder/amkit/internal/formatter"
	"github.com/desertthunder/amkit/internal/services"
	"github.com/desertthunder/amkit/internal/shared"
	"github.com/desertthunder/amkit/internal/tasks"
	"github.com/desertthunder/amkit/internal/ui"
	"github.com/urfave/cli/v3"
)

const placeholderToken = "your_developer_token"

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	palette    *ui.Palette

	once   sync.Once
	client *applemusic.Client
	err    error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Client     *applemusic.Client // skips config driven initialization
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Palette    *ui.Palette
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Palette == nil {
		opts.Palette = ui.Default
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		palette:    opts.Palette,
	}
	if opts.Client != nil {
		r.client = opts.Client
		r.once.Do(func() {})
	}
	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		configCommand, storefrontCommand, libraryCommand, playlistCommand, catalogCommand, searchCommand, addCommand, apiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// app builds the root command.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "amkit",
		Usage:   "Browse and manage an Apple Music library from the terminal",
		Version: "0.1.0",
		Writer:  r.output,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
				Sources: cli.EnvVars("AMKIT_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the configured log level (debug, info, warn, error)",
			},
		},
		Before:   r.Before,
		Commands: r.register(),
	}
}

// Before loads configuration and applies the log level ahead of any command.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if r.configPath == "" {
		r.configPath = cmd.String("config")
	}

	if r.config == nil {
		config, err := loadConfig(r.configPath)
		if err != nil {
			return ctx, err
		}
		r.config = config
	}

	level := r.config.Log.Level
	if override := cmd.String("log-level"); override != "" {
		level = override
	}

	ll, err := shared.ParseLogLevel(level)
	if err != nil {
		return ctx, err
	}
	shared.SetLogLevel(r.logger, ll)

	return ctx, nil
}

// loadConfig reads path when it exists, falling back to defaults, then applies environment overrides.
func loadConfig(path string) (*shared.Config, error) {
	config := shared.DefaultConfig()
	if _, err := os.Stat(path); err == nil {
		loaded, err := shared.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		config = loaded
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	config.ApplyEnv()
	return config, nil
}

// clientOptions maps the [client] section to [applemusic.Options].
func clientOptions(config *shared.Config, httpClient *http.Client, logger *log.Logger) applemusic.Options {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Client.Timeout}
	}
	return applemusic.Options{
		BaseURL:    config.Client.BaseURL,
		HTTPClient: httpClient,
		Logger:     logger,
		Retry: applemusic.RetryPolicy{
			MaxRetries:    config.Client.MaxRetries,
			FallbackDelay: config.Client.RetryFallback,
		},
		RateLimit:         config.Client.RateLimit,
		DefaultStorefront: config.Client.DefaultStorefront,
	}
}

// appleClient initializes the API client once per process.
func (r *Runner) appleClient(ctx context.Context) (*applemusic.Client, error) {
	r.once.Do(func() {
		if r.config == nil {
			r.config = shared.DefaultConfig()
			r.config.ApplyEnv()
		}

		creds := r.config.Credentials
		if creds.DeveloperToken == "" || creds.DeveloperToken == placeholderToken {
			r.err = fmt.Errorf("%w: set developer_token in %s or %s", shared.ErrMissingCredentials, r.configPath, shared.EnvDeveloperToken)
			return
		}

		r.client, r.err = applemusic.Initialize(ctx, applemusic.Credentials{
			DeveloperToken: creds.DeveloperToken,
			UserToken:      creds.UserToken,
			Storefront:     creds.Storefront,
		}, clientOptions(r.config, r.httpClient, r.logger))
	})
	return r.client, r.err
}

func (r *Runner) service(ctx context.Context) (*services.AppleMusicService, error) {
	c, err := r.appleClient(ctx)
	if err != nil {
		return nil, err
	}
	return services.NewAppleMusicServiceFromClient(c, r.logger), nil
}

func (r *Runner) engine(svc services.Service, api tasks.APIClient) *tasks.Engine {
	return tasks.NewEngine(svc, api, &formatter.Writer{Logger: r.logger, Client: r.httpClient}, r.logger)
}

// track runs fn with a progress channel whose updates are logged until fn returns.
func (r *Runner) track(fn func(chan<- tasks.ProgressUpdate) error) error {
	progress := make(chan tasks.ProgressUpdate, 32)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range progress {
			r.logger.Info(u.Message, "phase", u.Phase)
		}
	}()

	err := fn(progress)
	close(progress)
	<-done
	return err
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	return r.writePlain(format+"\n", args...)
}

func (r *Runner) writeHeader(title string) error {
	return r.writePlain("%s", r.palette.Header(title))
}
