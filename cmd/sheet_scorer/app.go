package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jonathan/sheet-scorer/internal/answerkey"
	"github.com/jonathan/sheet-scorer/internal/config"
	"github.com/jonathan/sheet-scorer/internal/engine"
	"github.com/jonathan/sheet-scorer/internal/extract"
	"github.com/jonathan/sheet-scorer/internal/fetch"
	"go.uber.org/zap"
)

// app bundles the components built from configuration.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	registry *answerkey.Registry
	engine   *engine.Engine
}

// loadSettings merges the config file (if any) and environment over the defaults.
func loadSettings() (config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("SCORER_CONFIG")
	}

	cfg := config.Default()
	if path != "" {
		fileCfg, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(config.Default())
	}

	if port := os.Getenv("SCORER_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return config.Config{}, fmt.Errorf("invalid SCORER_PORT %q: %w", port, err)
		}
		cfg.Port = p
	}
	if verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newApp wires the engine from configuration. The registry is loaded once here
// and shared read-only by every request.
func newApp() (*app, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	sources, err := cfg.ResolvedRegistry()
	if err != nil {
		return nil, err
	}
	registry := answerkey.NewRegistry(sources)

	fetchOpts := fetch.DefaultOptions()
	if t := cfg.FetchTimeout(); t > 0 {
		fetchOpts.Timeout = t
	}
	if cfg.UserAgent != "" {
		fetchOpts.UserAgent = cfg.UserAgent
	}
	client := fetch.NewClient(fetchOpts)

	var documents engine.Fetcher = client
	if cfg.UseBrowser {
		documents = fetch.NewBrowserFetcher(fetchOpts.Timeout, "table", logger)
	}

	opts := engine.DefaultOptions()
	opts.Header = cfg.HeaderLayout()
	opts.Mode = cfg.ResolutionMode()
	opts.Bands = cfg.Bands()
	opts.Schema = extract.DefaultSchema()
	opts.Schema.Sentinel = cfg.Sentinel

	eng := engine.New(opts, documents, answerkey.NewProvider(registry, client), logger)

	logger.Debug("configuration loaded",
		zap.Int("administrations", registry.Len()),
		zap.String("mode", cfg.Mode),
		zap.Int("band_size", cfg.BandSize),
		zap.Bool("use_browser", cfg.UseBrowser))

	return &app{cfg: cfg, logger: logger, registry: registry, engine: eng}, nil
}
