package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"loadmaster/internal/manifest"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	DataDir     string `toml:"data_dir"`
	LogDir      string `toml:"log_dir"`
	OutputDir   string `toml:"output_dir"`
	PreviewBind string `toml:"preview_bind"`
}

// Mission holds the defaults a fresh workspace starts from.
type Mission struct {
	Aircraft      string `toml:"aircraft"`
	Parachute     string `toml:"parachute"`
	DropZone      string `toml:"drop_zone"`
	Chalk         string `toml:"chalk"`
	Pass          int    `toml:"pass"`
	Door          string `toml:"door"`
	PartnerNation string `toml:"partner_nation"`
}

// Render contains document rendering settings.
type Render struct {
	RowsPerPage   int    `toml:"rows_per_page"`
	DefaultFormat string `toml:"default_format"`
}

// Export contains the remote spreadsheet backend settings.
type Export struct {
	Endpoint       string `toml:"endpoint"`
	WaveNumber     string `toml:"wave_number"`
	RequestTimeout int    `toml:"request_timeout"`
	Concurrency    int    `toml:"concurrency"`
}

// S3 contains object storage settings for the s3 publish driver.
type S3 struct {
	Bucket          string `toml:"bucket"`
	Region          string `toml:"region"`
	Endpoint        string `toml:"endpoint"`
	PathStyle       bool   `toml:"path_style"`
	Prefix          string `toml:"prefix"`
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
}

// Publish selects where rendered artifacts are written.
type Publish struct {
	Driver string `toml:"driver"`
	S3     S3     `toml:"s3"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for loadmaster.
//
// Configuration sections by subsystem:
//   - Paths: workspace, logs, rendered output and preview bind address
//   - Mission: defaults for a new workspace
//   - Render: document pagination and default output format
//   - Export: remote spreadsheet backend delivery
//   - Publish: local directory or S3-compatible artifact storage
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Mission Mission `toml:"mission"`
	Render  Render  `toml:"render"`
	Export  Export  `toml:"export"`
	Publish Publish `toml:"publish"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("loadmaster.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the workspace, log and output directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir, c.Paths.OutputDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// WorkspacePath returns the SQLite workspace database location.
func (c *Config) WorkspacePath() string {
	return filepath.Join(c.Paths.DataDir, "workspace.db")
}

// LockPath returns the workspace lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "workspace.lock")
}

// ExportTimeout returns the per-request timeout for remote deliveries.
func (c *Config) ExportTimeout() time.Duration {
	return time.Duration(c.Export.RequestTimeout) * time.Second
}

// MissionDefaults builds the mission a fresh workspace starts with. The date
// defaults to the day of now.
func (c *Config) MissionDefaults(now time.Time) manifest.MissionConfiguration {
	mission := manifest.MissionConfiguration{
		DropZone:     c.Mission.DropZone,
		Date:         now.Format(manifest.DateLayout),
		PartnerJump:  c.Mission.PartnerNation != "",
		CurrentChalk: c.Mission.Chalk,
		CurrentPass:  c.Mission.Pass,
	}
	mission = mission.WithPartner(mission.PartnerJump, c.Mission.PartnerNation)
	if door, err := manifest.ParseDoor(c.Mission.Door); err == nil {
		mission.CurrentDoor = door
	}
	return mission.WithEquipment(c.Mission.Aircraft, c.Mission.Parachute).Normalize()
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
