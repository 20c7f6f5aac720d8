package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kfarnes/mast/core/metrics"
	"github.com/kfarnes/mast/infra/logger"
)

// InfluxSink forwards model lifecycle events and prediction output to an
// InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails, so a missing database never blocks
// training.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordFit writes one point per training run.
func (s *InfluxSink) RecordFit(ev coremetrics.FitEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("model_fit").
		AddTag("model_type", ev.ModelType).
		AddField("rows", ev.Rows).
		AddField("features", ev.Features).
		AddField("duration_seconds", ev.Duration.Seconds()).
		SetTime(ev.Time)
	if ev.Error != "" {
		p.AddField("error", ev.Error)
	}
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordPrediction forwards every produced output row under the
// "model-output" measurement, one point per row.
func (s *InfluxSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for i, row := range ev.Outputs {
		p := write.NewPointWithMeasurement("model-output").
			AddTag("model_type", ev.ModelType).
			AddField("row", i)
		for j, v := range row {
			name := "value"
			if j < len(ev.Columns) {
				name = ev.Columns[j]
			}
			p.AddField(name, v)
		}
		p.SetTime(ev.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}
