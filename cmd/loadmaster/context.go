package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"loadmaster/internal/config"
	"loadmaster/internal/logging"
	"loadmaster/internal/session"
	"loadmaster/internal/workspace"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
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
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// log returns the process logger. Logging setup failures fall back to a
// no-op logger so a broken log directory never blocks manifest work.
func (c *commandContext) log() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg := c.configValue()
		if cfg == nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// withWorkspace opens the workspace for the duration of fn.
func (c *commandContext) withWorkspace(fn func(*workspace.Workspace) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	ws, err := workspace.Open(cfg, c.log())
	if err != nil {
		return err
	}
	defer ws.Close()
	return fn(ws)
}

// update runs fn against the workspace session under the exclusive lock and
// saves the result.
func (c *commandContext) update(ctx context.Context, fn func(*session.Session) error) error {
	return c.withWorkspace(func(ws *workspace.Workspace) error {
		return ws.Update(ctx, fn, session.WithLogger(c.log()))
	})
}

// view runs fn against a read-only copy of the workspace session.
func (c *commandContext) view(ctx context.Context, fn func(*session.Session) error) error {
	return c.withWorkspace(func(ws *workspace.Workspace) error {
		return ws.View(ctx, fn, session.WithLogger(c.log()))
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
