package publish_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"loadmaster/internal/config"
	"loadmaster/internal/publish"
	"loadmaster/internal/render"
	"loadmaster/internal/services"
)

func sampleArtifact() render.Artifact {
	return render.Artifact{
		Name:        "08DEC2025_MANIFEST.txt",
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte("DA FORM 1306\n"),
	}
}

func TestFSSinkWritesArtifact(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink := publish.NewFSSink(dir)
	if sink.Driver() != publish.DriverFS {
		t.Fatalf("unexpected driver %q", sink.Driver())
	}

	location, err := sink.Put(context.Background(), sampleArtifact())
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if location != filepath.Join(dir, "08DEC2025_MANIFEST.txt") {
		t.Fatalf("unexpected location %q", location)
	}
	data, err := os.ReadFile(location)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != "DA FORM 1306\n" {
		t.Fatalf("unexpected contents %q", data)
	}

	// Overwrites replace the previous render.
	updated := sampleArtifact()
	updated.Data = []byte("second\n")
	if _, err := sink.Put(context.Background(), updated); err != nil {
		t.Fatalf("second Put: %v", err)
	}
	data, _ = os.ReadFile(location)
	if string(data) != "second\n" {
		t.Fatalf("expected overwrite, got %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no leftover temp files, got %d entries", len(entries))
	}
}

func TestFSSinkRejectsEmptyName(t *testing.T) {
	sink := publish.NewFSSink(t.TempDir())
	_, err := sink.Put(context.Background(), render.Artifact{Name: "  "})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

type fakeS3 struct {
	mu          sync.Mutex
	method      string
	path        string
	contentType string
	body        string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.method = r.Method
	f.path = r.URL.Path
	f.contentType = r.Header.Get("Content-Type")
	f.body = string(body)
	f.mu.Unlock()
	w.Header().Set("ETag", `"etag"`)
	w.WriteHeader(http.StatusOK)
}

func TestS3SinkUploadsWithPrefix(t *testing.T) {
	fake := &fakeS3{}
	server := httptest.NewServer(fake)
	defer server.Close()

	sink, err := publish.NewS3Sink(context.Background(), publish.S3Options{
		Bucket:          "manifests",
		Region:          "us-east-1",
		Endpoint:        server.URL,
		Prefix:          "/wave-1/",
		PathStyle:       true,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
	})
	if err != nil {
		t.Fatalf("NewS3Sink: %v", err)
	}
	if got := sink.Key("08DEC2025_MANIFEST.txt"); got != "wave-1/08DEC2025_MANIFEST.txt" {
		t.Fatalf("unexpected key %q", got)
	}

	location, err := sink.Put(context.Background(), sampleArtifact())
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if location != "s3://manifests/wave-1/08DEC2025_MANIFEST.txt" {
		t.Fatalf("unexpected location %q", location)
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if fake.method != http.MethodPut {
		t.Fatalf("expected PUT, got %s", fake.method)
	}
	if fake.path != "/manifests/wave-1/08DEC2025_MANIFEST.txt" {
		t.Fatalf("unexpected request path %q", fake.path)
	}
	if !strings.HasPrefix(fake.contentType, "text/plain") {
		t.Fatalf("unexpected content type %q", fake.contentType)
	}
	if !strings.Contains(fake.body, "DA FORM 1306") {
		t.Fatalf("unexpected body %q", fake.body)
	}
}

func TestS3SinkReportsBackendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<?xml version="1.0"?><Error><Code>AccessDenied</Code><Message>denied</Message></Error>`))
	}))
	defer server.Close()

	sink, err := publish.NewS3Sink(context.Background(), publish.S3Options{
		Bucket:          "manifests",
		Endpoint:        server.URL,
		PathStyle:       true,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
	})
	if err != nil {
		t.Fatalf("NewS3Sink: %v", err)
	}
	if _, err := sink.Put(context.Background(), sampleArtifact()); !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected external service error, got %v", err)
	}
}

func TestNewSinkSelectsDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.OutputDir = t.TempDir()
	sink, err := publish.NewSink(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("NewSink fs: %v", err)
	}
	if sink.Driver() != publish.DriverFS {
		t.Fatalf("expected fs driver, got %q", sink.Driver())
	}

	cfg.Publish.Driver = publish.DriverS3
	cfg.Publish.S3.Bucket = ""
	if _, err := publish.NewSink(context.Background(), &cfg); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for missing bucket, got %v", err)
	}

	cfg.Publish.Driver = "gcs"
	if _, err := publish.NewSink(context.Background(), &cfg); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for unknown driver, got %v", err)
	}
}
