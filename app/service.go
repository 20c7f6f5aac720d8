// Package app wires configuration, the model registry, persistence, and
// metrics into the train and predict operations exposed by the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/kfarnes/mast/config"
	"github.com/kfarnes/mast/core/dataset"
	coremetrics "github.com/kfarnes/mast/core/metrics"
	"github.com/kfarnes/mast/core/model"
	"github.com/kfarnes/mast/core/serializer"
	"github.com/kfarnes/mast/infra/logger"
	inframetrics "github.com/kfarnes/mast/infra/metrics"
	"github.com/kfarnes/mast/internal/eventbus"
	_ "github.com/kfarnes/mast/models" // register builtin model types
)

// Service orchestrates model building, training, persistence, and metrics.
type Service struct {
	cfg  *config.Config
	log  logger.Logger
	sink coremetrics.Sink
	bus  eventbus.EventBus

	cancel    context.CancelFunc
	collected <-chan struct{}
}

// New creates a Service from the configuration and starts the metrics
// collector on the internal event bus.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.Configure(cfg.Logging.Level); err != nil {
		return nil, err
	}
	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	bus := eventbus.New()
	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		cfg:    cfg,
		log:    logger.New("service"),
		sink:   sink,
		bus:    bus,
		cancel: cancel,
	}
	s.collected = coremetrics.StartEventCollector(ctx, bus, sink)
	if addr := cfg.Metrics.PromAddr; addr != "" {
		go func() {
			if err := inframetrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prometheus server: %v", err)
			}
		}()
	}
	return s, nil
}

// Train loads the configured dataset, builds the configured model through
// the registry, fits it, and serializes the trained state to the output
// directory. The directory path is returned.
func (s *Service) Train(ctx context.Context) (string, error) {
	if err := s.cfg.Dataset.Validate(); err != nil {
		return "", err
	}
	ds, err := dataset.FromCSV(s.cfg.Dataset.Path, s.cfg.Dataset.Targets)
	if err != nil {
		return "", fmt.Errorf("load dataset: %w", err)
	}
	if ds.Y == nil {
		return "", fmt.Errorf("training requires target columns")
	}

	m, err := model.FromConfig(s.cfg.Model)
	if err != nil {
		return "", err
	}
	s.log.Debugw("model built", map[string]any{"type": m.Type(), "params": m.Params()})

	rows, features := ds.X.Dims()
	s.log.Infof("training %s on %d rows, %d features", m.Type(), rows, features)

	start := time.Now()
	fitErr := m.Fit(ds.X, ds.Y)
	ev := coremetrics.FitEvent{
		ModelType: m.Type(),
		Rows:      rows,
		Features:  features,
		Duration:  time.Since(start),
		Time:      time.Now(),
	}
	if fitErr != nil {
		ev.Error = fitErr.Error()
	}
	s.bus.Publish(ev)
	if fitErr != nil {
		return "", fitErr
	}

	dir := s.cfg.Output.Dir
	if err := serializer.Dump(m, dir); err != nil {
		return "", fmt.Errorf("serialize model: %w", err)
	}
	s.log.Infof("trained %s in %s, artifacts in %s", m.Type(), ev.Duration, dir)
	return dir, nil
}

// Predict rebuilds the model stored in modelDir, runs it over the configured
// dataset's features, and writes the predictions to outPath as CSV.
func (s *Service) Predict(ctx context.Context, modelDir, outPath string) error {
	if err := s.cfg.Dataset.Validate(); err != nil {
		return err
	}
	m, err := serializer.Load(modelDir)
	if err != nil {
		return err
	}
	s.log.Debugf("loaded %s from %s", m.Type(), modelDir)

	// Target columns configured for training are dropped when present, so
	// the training file and a features-only file both predict cleanly.
	ds, err := dataset.FromCSV(s.cfg.Dataset.Path, s.cfg.Dataset.Targets)
	if errors.Is(err, dataset.ErrTargetNotFound) {
		ds, err = dataset.FromCSV(s.cfg.Dataset.Path, nil)
	}
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	start := time.Now()
	out, err := m.Predict(ds.X)
	if err != nil {
		return err
	}

	n, p := out.Dims()
	columns := s.cfg.Dataset.Targets
	if len(columns) != p {
		columns = make([]string, p)
		for j := range columns {
			columns[j] = fmt.Sprintf("output_%d", j)
		}
	}
	s.bus.Publish(coremetrics.PredictionEvent{
		ModelType: m.Type(),
		Rows:      n,
		Duration:  time.Since(start),
		Outputs:   matrixRows(out),
		Columns:   columns,
		Time:      time.Now(),
	})

	if err := dataset.WriteCSV(outPath, out, columns); err != nil {
		return fmt.Errorf("write predictions: %w", err)
	}
	s.log.Infof("wrote %d predictions to %s", n, outPath)
	return nil
}

// Close stops the metrics collector after draining pending events.
func (s *Service) Close() error {
	s.bus.Close()
	<-s.collected
	s.cancel()
	return nil
}

func matrixRows(m mat.Matrix) [][]float64 {
	n, p := m.Dims()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, p)
		mat.Row(row, i, m)
		rows[i] = row
	}
	return rows
}
