package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"voxelworld/internal/config"
	"voxelworld/internal/mapfile"
	"voxelworld/internal/store"
	"voxelworld/internal/terrain"
	"voxelworld/internal/world"
)

func main() {
	var (
		cfgPath string
		outPath string
		kind    string
		seed    string
	)
	flag.StringVar(&cfgPath, "config", "", "path to worldgen configuration file (.json, .yaml)")
	flag.StringVar(&outPath, "out", "", "override output.path")
	flag.StringVar(&kind, "kind", "", "override generator.kind ("+fmt.Sprint(terrain.Kinds())+")")
	flag.StringVar(&seed, "seed", "", "override generator.seed (32-bit signed integer)")
	flag.Parse()

	if _, err := writeConfigFromEnv(cfgPath); err != nil {
		logrus.WithError(err).Fatal("sync config from environment")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	if err := applyOverrides(cfg, outPath, kind, seed); err != nil {
		logrus.WithError(err).Fatal("apply flag overrides")
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		logrus.WithError(err).Fatal("configure logging")
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	if _, err := run(ctx, cfg, logger); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("worldgen interrupted")
			os.Exit(130)
		}
		logger.WithError(err).Fatal("worldgen failed")
	}
}

// applyOverrides folds non-empty flag values into cfg and revalidates.
func applyOverrides(cfg *config.Config, outPath, kind, seed string) error {
	if outPath != "" {
		cfg.Output.Path = outPath
		cfg.Output.Format = ""
	}
	if kind != "" {
		cfg.Generator.Kind = kind
	}
	if seed != "" {
		v, err := strconv.ParseInt(seed, 10, 32)
		if err != nil {
			return fmt.Errorf("parse -seed: %w", err)
		}
		cfg.Generator.Seed = int32(v)
		cfg.Generator.RandomSeed = false
	}
	return cfg.Validate()
}

func newLogger(cfg config.LoggingConfig) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level := logrus.InfoLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}

// signalContext is cancelled on SIGINT or SIGTERM. Generation itself cannot be
// interrupted, so a cancelled run stops at the next step boundary.
func signalContext(logger logrus.FieldLogger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case sig := <-signals:
			logger.WithField("signal", sig.String()).Warn("stopping after the current step")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// result summarises a finished run.
type result struct {
	Level     *world.Level
	Generator string
	Seed      int32
	Spawn     world.Spawn
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*result, error) {
	gen, err := terrain.NewGenerator(cfg.Generator.Kind, logger)
	if err != nil {
		return nil, err
	}

	seed := cfg.Generator.Seed
	if cfg.Generator.RandomSeed {
		seed = int32(time.Now().UnixNano())
	}
	params := terrain.Params{
		Dimensions: world.Dimensions{
			Width:  cfg.Generator.Width,
			Height: cfg.Generator.Height,
			Length: cfg.Generator.Length,
		},
		Seed:   seed,
		Winter: cfg.Generator.Winter,
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	log := logger.WithFields(logrus.Fields{
		"generator": gen.Name(),
		"seed":      seed,
	})
	lvl := generate(ctx, gen, params, cfg.Progress.PollInterval.Duration(), log)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &result{Level: lvl, Generator: gen.Name(), Seed: seed, Spawn: world.DefaultSpawn(lvl)}
	meta := mapfile.Meta{
		Name:      cfg.Output.Name,
		Author:    "worldgen",
		Generator: gen.Name(),
		Seed:      seed,
		Spawn:     res.Spawn,
	}
	if err := mapfile.Save(cfg.Output.Path, cfg.OutputFormat(), lvl, meta); err != nil {
		return nil, fmt.Errorf("save map: %w", err)
	}
	log.WithFields(logrus.Fields{
		"path":   cfg.Output.Path,
		"format": cfg.OutputFormat(),
		"spawn":  fmt.Sprintf("%d,%d,%d", res.Spawn.X, res.Spawn.Y, res.Spawn.Z),
	}).Info("map saved")

	if cfg.Output.Preview != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := world.SavePreview(lvl, cfg.Output.Preview, cfg.Output.PreviewScale); err != nil {
			return nil, fmt.Errorf("save preview: %w", err)
		}
		log.WithField("path", cfg.Output.Preview).Info("preview saved")
	}

	if err := archive(ctx, cfg, res, log); err != nil {
		return nil, err
	}
	return res, nil
}

// generate runs the generator on its own goroutine and reports progress until it returns.
func generate(ctx context.Context, gen terrain.Generator, params terrain.Params, interval time.Duration, log logrus.FieldLogger) *world.Level {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	finished := make(chan *world.Level, 1)
	go func() {
		finished <- gen.Generate(params)
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	interrupted := ctx.Done()
	reporter := progressReporter{log: log}
	for {
		select {
		case lvl := <-finished:
			return lvl
		case <-interrupted:
			log.Warn("generation in progress, waiting for it to finish")
			interrupted = nil
		case <-ticker.C:
			stage, fraction, _ := gen.Progress().Snapshot()
			reporter.observe(stage, fraction)
		}
	}
}

// progressReporter logs each stage once and then every tenth of its progress.
type progressReporter struct {
	log    logrus.FieldLogger
	stage  string
	decile int
}

func (r *progressReporter) observe(stage string, fraction float32) {
	if stage == "" {
		return
	}
	if stage != r.stage {
		r.stage = stage
		r.decile = 0
		r.log.WithField("stage", stage).Info("generation stage")
	}
	decile := int(fraction * 10)
	if decile > r.decile {
		r.decile = decile
		r.log.WithFields(logrus.Fields{
			"stage":    stage,
			"progress": fmt.Sprintf("%d%%", decile*10),
		}).Debug("generation progress")
	}
}

// archive stores the level and records it in the catalog when those are configured.
func archive(ctx context.Context, cfg *config.Config, res *result, log logrus.FieldLogger) error {
	if cfg.Store.Dir != "" {
		if err := ctx.Err(); err != nil {
			return err
		}
		levels, err := store.Open(cfg.Store.Dir, log)
		if err != nil {
			return err
		}
		defer levels.Close()
		if err := levels.Save(cfg.Output.Name, res.Level); err != nil {
			return fmt.Errorf("archive level: %w", err)
		}
		log.WithField("dir", cfg.Store.Dir).Info("level archived")
	}

	if cfg.Store.Catalog != "" {
		if err := ctx.Err(); err != nil {
			return err
		}
		catalog, err := store.OpenCatalog(cfg.Store.Catalog)
		if err != nil {
			return err
		}
		defer catalog.Close()
		entry := store.NewEntry(cfg.Output.Name, res.Generator, res.Seed, res.Level, cfg.Output.Path)
		if err := catalog.Record(ctx, entry); err != nil {
			return err
		}
		log.WithField("digest", entry.Digest).Info("level catalogued")
	}
	return nil
}
