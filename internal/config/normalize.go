package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMission()
	c.normalizeRender()
	c.normalizeExport()
	c.normalizePublish()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	c.Paths.PreviewBind = strings.TrimSpace(c.Paths.PreviewBind)
	if c.Paths.PreviewBind == "" {
		c.Paths.PreviewBind = defaultPreviewBind
	}
	return nil
}

func (c *Config) normalizeMission() {
	c.Mission.Aircraft = strings.TrimSpace(c.Mission.Aircraft)
	c.Mission.Parachute = strings.TrimSpace(c.Mission.Parachute)
	c.Mission.DropZone = strings.TrimSpace(c.Mission.DropZone)
	c.Mission.Chalk = strings.TrimSpace(c.Mission.Chalk)
	c.Mission.Door = strings.TrimSpace(c.Mission.Door)
	c.Mission.PartnerNation = strings.TrimSpace(c.Mission.PartnerNation)
	if c.Mission.Pass == 0 {
		c.Mission.Pass = 1
	}
}

func (c *Config) normalizeRender() {
	if c.Render.RowsPerPage == 0 {
		c.Render.RowsPerPage = defaultRowsPerPage
	}
	c.Render.DefaultFormat = strings.ToLower(strings.TrimSpace(c.Render.DefaultFormat))
	if c.Render.DefaultFormat == "" {
		c.Render.DefaultFormat = defaultRenderFormat
	}
}

func (c *Config) normalizeExport() {
	c.Export.Endpoint = strings.TrimSpace(c.Export.Endpoint)
	if c.Export.Endpoint == "" {
		if value, ok := os.LookupEnv(exportEndpointEnvVar); ok {
			c.Export.Endpoint = strings.TrimSpace(value)
		}
	}
	c.Export.WaveNumber = strings.TrimSpace(c.Export.WaveNumber)
	if c.Export.WaveNumber == "" {
		c.Export.WaveNumber = defaultWaveNumber
	}
	if c.Export.RequestTimeout == 0 {
		c.Export.RequestTimeout = defaultExportTimeout
	}
	if c.Export.Concurrency == 0 {
		c.Export.Concurrency = defaultExportWorkers
	}
}

func (c *Config) normalizePublish() {
	c.Publish.Driver = strings.ToLower(strings.TrimSpace(c.Publish.Driver))
	if c.Publish.Driver == "" {
		c.Publish.Driver = defaultPublishDriver
	}
	s3 := &c.Publish.S3
	s3.Bucket = strings.TrimSpace(s3.Bucket)
	if s3.Bucket == "" {
		if value, ok := os.LookupEnv(publishS3BucketEnvVar); ok {
			s3.Bucket = strings.TrimSpace(value)
		}
	}
	s3.Region = strings.TrimSpace(s3.Region)
	if s3.Region == "" {
		s3.Region = defaultS3Region
	}
	s3.Endpoint = strings.TrimSpace(s3.Endpoint)
	s3.Prefix = strings.Trim(strings.TrimSpace(s3.Prefix), "/")
	s3.AccessKeyID = strings.TrimSpace(s3.AccessKeyID)
	s3.SecretAccessKey = strings.TrimSpace(s3.SecretAccessKey)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
