package config

import (
	"errors"
	"fmt"
	"net/url"

	"loadmaster/internal/manifest"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMission(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validatePublish(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateMission() error {
	if c.Mission.Pass < 1 {
		return fmt.Errorf("mission.pass must be at least 1, got %d", c.Mission.Pass)
	}
	if _, err := manifest.ParseDoor(c.Mission.Door); err != nil {
		return fmt.Errorf("mission.door: %w", err)
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.RowsPerPage < 1 {
		return errors.New("render.rows_per_page must be positive")
	}
	switch c.Render.DefaultFormat {
	case "text", "csv", "html":
		return nil
	default:
		return fmt.Errorf("render.default_format: unsupported value %q (want text, csv or html)", c.Render.DefaultFormat)
	}
}

func (c *Config) validateExport() error {
	if c.Export.RequestTimeout < 0 {
		return errors.New("export.request_timeout must be positive")
	}
	if c.Export.Concurrency < 1 {
		return errors.New("export.concurrency must be at least 1")
	}
	if c.Export.Endpoint == "" {
		return nil
	}
	parsed, err := url.Parse(c.Export.Endpoint)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("export.endpoint must be an http(s) URL, got %q", c.Export.Endpoint)
	}
	return nil
}

func (c *Config) validatePublish() error {
	switch c.Publish.Driver {
	case "fs":
		return nil
	case "s3":
		if c.Publish.S3.Bucket == "" {
			return fmt.Errorf("publish.s3.bucket must be set when publish.driver is s3 (or set %s)", publishS3BucketEnvVar)
		}
		if (c.Publish.S3.AccessKeyID == "") != (c.Publish.S3.SecretAccessKey == "") {
			return errors.New("publish.s3.access_key_id and publish.s3.secret_access_key must be set together")
		}
		return nil
	default:
		return fmt.Errorf("publish.driver: unsupported value %q (want fs or s3)", c.Publish.Driver)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
