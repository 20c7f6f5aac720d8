// Package metrics defines the sink interface and event types for recording
// model training and inference. Sinks like the Prometheus and InfluxDB
// implementations in infra/metrics register themselves with the sink
// registry and are combined with NewMultiSink when several are configured.
// An event collector drains lifecycle events from the internal event bus
// into a sink.
package metrics
