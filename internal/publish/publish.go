package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"loadmaster/internal/config"
	"loadmaster/internal/render"
	"loadmaster/internal/services"
	"loadmaster/internal/textutil"
)

// Driver names.
const (
	DriverFS = "fs"
	DriverS3 = "s3"
)

// Sink accepts rendered artifacts and reports where each one landed.
type Sink interface {
	Driver() string
	Put(ctx context.Context, artifact render.Artifact) (string, error)
}

// NewSink builds the sink selected by publish.driver.
func NewSink(ctx context.Context, cfg *config.Config) (Sink, error) {
	switch cfg.Publish.Driver {
	case DriverFS, "":
		return NewFSSink(cfg.Paths.OutputDir), nil
	case DriverS3:
		s3cfg := cfg.Publish.S3
		return NewS3Sink(ctx, S3Options{
			Bucket:          s3cfg.Bucket,
			Region:          s3cfg.Region,
			Endpoint:        s3cfg.Endpoint,
			Prefix:          s3cfg.Prefix,
			PathStyle:       s3cfg.PathStyle,
			AccessKeyID:     s3cfg.AccessKeyID,
			SecretAccessKey: s3cfg.SecretAccessKey,
		})
	default:
		return nil, services.Wrap(services.ErrConfiguration, "publish", "driver", fmt.Sprintf("unsupported driver %q", cfg.Publish.Driver), nil)
	}
}

// FSSink writes artifacts into a directory.
type FSSink struct {
	dir string
}

// NewFSSink returns a sink rooted at dir.
func NewFSSink(dir string) *FSSink {
	return &FSSink{dir: dir}
}

func (s *FSSink) Driver() string { return DriverFS }

// Put writes the artifact through a temporary file and renames it into place
// so readers never observe a partial manifest.
func (s *FSSink) Put(ctx context.Context, artifact render.Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := textutil.SanitizeFileName(artifact.Name)
	if name == "" {
		return "", services.Wrap(services.ErrValidation, "publish", "fs", "artifact name is empty", nil)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "publish", "fs", "create output dir", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "publish", "fs", "create temp file", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(artifact.Data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", services.Wrap(services.ErrTransient, "publish", "fs", "write artifact", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", services.Wrap(services.ErrTransient, "publish", "fs", "close artifact", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return "", services.Wrap(services.ErrTransient, "publish", "fs", "chmod artifact", err)
	}

	target := filepath.Join(s.dir, name)
	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return "", services.Wrap(services.ErrTransient, "publish", "fs", "move artifact into place", err)
	}
	return target, nil
}
