package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kfarnes/mast/core/metrics"
)

// PromSink records model lifecycle events as Prometheus metrics.
type PromSink struct {
	fits        *prometheus.CounterVec
	fitDuration *prometheus.HistogramVec
	predictions *prometheus.CounterVec
	predRows    *prometheus.CounterVec
}

// NewPromSink registers the model metrics on the default Prometheus
// registerer. The metrics endpoint is served separately via StartPromServer.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	fits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "model_fit_total",
		Help: "Total number of model training runs",
	}, []string{"model_type", "failed"})
	fitDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "model_fit_duration_seconds",
		Help:    "Wall-clock duration of model training runs",
		Buckets: prometheus.DefBuckets,
	}, []string{"model_type"})
	predictions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "model_predictions_total",
		Help: "Total number of prediction calls",
	}, []string{"model_type"})
	predRows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "model_prediction_rows_total",
		Help: "Total number of rows predicted",
	}, []string{"model_type"})

	if err := reg.Register(fits); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			fits = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(fitDuration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			fitDuration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(predictions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			predictions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(predRows); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			predRows = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		fits:        fits,
		fitDuration: fitDuration,
		predictions: predictions,
		predRows:    predRows,
	}, nil
}

// RecordFit counts the training run and observes its duration.
func (s *PromSink) RecordFit(ev coremetrics.FitEvent) error {
	failed := strconv.FormatBool(ev.Error != "")
	s.fits.WithLabelValues(ev.ModelType, failed).Inc()
	if ev.Error == "" {
		s.fitDuration.WithLabelValues(ev.ModelType).Observe(ev.Duration.Seconds())
	}
	return nil
}

// RecordPrediction counts the call and the rows produced.
func (s *PromSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	s.predictions.WithLabelValues(ev.ModelType).Inc()
	s.predRows.WithLabelValues(ev.ModelType).Add(float64(ev.Rows))
	return nil
}
