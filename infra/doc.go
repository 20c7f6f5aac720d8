// Package infra holds the technical adapters: the zerolog logger backend
// and the Prometheus and InfluxDB metrics sinks. Adapters depend on the
// interfaces defined under core and never the other way around.
package infra
