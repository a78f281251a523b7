package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"loadmaster/internal/config"
	"loadmaster/internal/logging"
	"loadmaster/internal/manifest"
	"loadmaster/internal/metrics"
	"loadmaster/internal/services"
)

const (
	userAgent          = "Loadmaster-Go/0.1.0"
	defaultTimeout     = 30 * time.Second
	defaultConcurrency = 4
	statusSuccess      = "success"
)

// ErrNoEndpoint reports that no spreadsheet backend is configured.
var ErrNoEndpoint = errors.New("export endpoint not configured")

// Delivery is the outcome of one group.
type Delivery struct {
	Chalk    string
	Door     string
	Entries  int
	Duration time.Duration
	// Err is nil for successful deliveries.
	Err error
}

// Succeeded reports whether the backend accepted the group.
func (d Delivery) Succeeded() bool { return d.Err == nil }

// Report summarizes one export run. Deliveries follow group order.
type Report struct {
	ID         string
	Endpoint   string
	StartedAt  time.Time
	FinishedAt time.Time
	Deliveries []Delivery
}

// Failed returns the deliveries that did not succeed.
func (r Report) Failed() []Delivery {
	var failed []Delivery
	for _, delivery := range r.Deliveries {
		if !delivery.Succeeded() {
			failed = append(failed, delivery)
		}
	}
	return failed
}

// Option customizes an Exporter.
type Option func(*Exporter)

// WithHTTPClient replaces the HTTP client used for deliveries.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Exporter) {
		if client != nil {
			e.client = client
		}
	}
}

// WithClock overrides the time source used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// Exporter posts manifest groups to the spreadsheet backend.
type Exporter struct {
	endpoint    string
	waveNumber  string
	concurrency int
	client      *http.Client
	logger      *slog.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

// New builds an exporter from configuration. It returns ErrNoEndpoint when
// export.endpoint is empty.
func New(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics, opts ...Option) (*Exporter, error) {
	endpoint := strings.TrimSpace(cfg.Export.Endpoint)
	if endpoint == "" {
		return nil, services.Wrap(services.ErrConfiguration, "export", "configure", "set export.endpoint or LOADMASTER_EXPORT_ENDPOINT", ErrNoEndpoint)
	}
	timeout := cfg.ExportTimeout()
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	concurrency := cfg.Export.Concurrency
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	waveNumber := strings.TrimSpace(cfg.Export.WaveNumber)
	if waveNumber == "" {
		waveNumber = "1"
	}

	e := &Exporter{
		endpoint:    endpoint,
		waveNumber:  waveNumber,
		concurrency: concurrency,
		client:      &http.Client{Timeout: timeout},
		logger:      logging.NewComponentLogger(logger, "export"),
		metrics:     m,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Endpoint returns the backend URL.
func (e *Exporter) Endpoint() string { return e.endpoint }

// Export delivers every group and waits for all of them. The returned error
// is reserved for problems that prevent the run from starting, such as an
// unparseable mission date; per-group failures are only reported through
// Report.Failed.
func (e *Exporter) Export(ctx context.Context, composed manifest.ComposedManifest, mission manifest.MissionConfiguration) (Report, error) {
	report := Report{
		ID:        uuid.NewString(),
		Endpoint:  e.endpoint,
		StartedAt: e.now(),
	}
	ctx = services.WithExportID(ctx, report.ID)
	logger := logging.WithContext(ctx, e.logger)

	waveDate, err := manifest.WaveDate(mission.Date)
	if err != nil {
		return report, services.Wrap(services.ErrValidation, "export", "wave date", "mission date must be YYYY-MM-DD", err)
	}

	groups := Groups(composed)
	report.Deliveries = make([]Delivery, len(groups))
	logger.Info("export started",
		logging.String("endpoint", e.endpoint),
		logging.Int("groups", len(groups)),
	)

	form := buildForm(mission)
	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, group := range groups {
		body := buildBody(group, waveDate, e.waveNumber, form)
		g.Go(func() error {
			report.Deliveries[i] = e.deliver(ctx, logger, group, body)
			return nil
		})
	}
	_ = g.Wait()
	report.FinishedAt = e.now()

	failed := len(report.Failed())
	if failed > 0 {
		logging.WarnWithContext(logger, "export finished with failures", "export_partial_failure",
			logging.Int("groups", len(groups)),
			logging.Int("failed", failed),
			logging.String(logging.FieldErrorHint, "run `loadmaster export failures` and retry"),
			logging.String(logging.FieldImpact, "some chalk and door groups are missing from the spreadsheet"),
		)
	} else {
		logger.Info("export finished", logging.Int("groups", len(groups)))
	}
	return report, nil
}

func (e *Exporter) deliver(ctx context.Context, logger *slog.Logger, group Group, body requestBody) Delivery {
	started := time.Now()
	err := e.send(ctx, body)
	delivery := Delivery{
		Chalk:    group.Chalk,
		Door:     group.Door,
		Entries:  len(group.Members),
		Duration: time.Since(started),
		Err:      err,
	}
	e.metrics.RecordDelivery(group.Door, delivery.Duration, err == nil)

	attrs := []logging.Attr{
		logging.String(logging.FieldChalk, group.Chalk),
		logging.String(logging.FieldDoor, group.Door),
		logging.Int("entries", delivery.Entries),
		logging.Duration("duration", delivery.Duration),
	}
	if err != nil {
		attrs = append(attrs, logging.Error(err), logging.Bool("retryable", services.Retryable(err)))
		logging.ErrorWithContext(logger, "export delivery failed", "export_delivery_failed", attrs...)
	} else {
		logger.Debug("export delivery accepted", logging.Args(attrs...)...)
	}
	return delivery
}

func (e *Exporter) send(ctx context.Context, body requestBody) error {
	op := body.Chalk + "-" + body.Door
	payload, err := json.Marshal(body)
	if err != nil {
		return services.Wrap(services.ErrValidation, "export", op, "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "export", op, "build request", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return services.Wrap(services.ErrTimeout, "export", op, "request timed out", err)
		}
		return services.Wrap(services.ErrExternalService, "export", op, "send request", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return services.Wrap(services.ErrTransient, "export", op, "read response", err)
	}
	if resp.StatusCode >= 300 {
		return services.Wrap(services.ErrExternalService, "export", op,
			fmt.Sprintf("backend returned %d: %s", resp.StatusCode, truncate(strings.TrimSpace(string(raw)), 256)), nil)
	}

	var decoded responseBody
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return services.Wrap(services.ErrExternalService, "export", op, "decode response", err)
	}
	if decoded.Status != statusSuccess {
		detail := fmt.Sprintf("backend status %q", decoded.Status)
		if decoded.Message != "" {
			detail += ": " + decoded.Message
		}
		return services.Wrap(services.ErrExternalService, "export", op, detail, nil)
	}
	return nil
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return value[:limit] + "..."
}
