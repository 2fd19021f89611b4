package main

import (
	"log/slog"
	"strings"
	"sync"

	"vidsub/internal/config"
	"vidsub/internal/history"
	"vidsub/internal/logging"
	"vidsub/internal/pipeline"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the process logger. Log lines go to stderr so stdout
// stays clean for command output.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		level := cfg.Logging.Level
		if c.verboseFlag != nil && *c.verboseFlag {
			level = "debug"
		}
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:       level,
			Format:      cfg.Logging.Format,
			OutputPaths: []string{"stderr"},
		})
	})
	return c.logger, c.loggerErr
}

// newPipeline assembles a pipeline with run-history recording attached. The
// returned cleanup closes the history store. A history open failure is
// logged but does not block the operation.
func (c *commandContext) newPipeline() (*pipeline.Pipeline, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}

	var opts []pipeline.Option
	store, err := history.Open(cfg)
	if err != nil {
		logger.Warn("run history unavailable", logging.Error(err))
		store = nil
	} else {
		opts = append(opts, pipeline.WithRecorder(store))
	}

	cleanup := func() {
		if store != nil {
			_ = store.Close()
		}
	}
	return pipeline.New(cfg, logger, opts...), cleanup, nil
}

func (c *commandContext) openHistory() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return history.Open(cfg)
}
