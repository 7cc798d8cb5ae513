// Package telemetry holds the observability surface of mstd: Prometheus
// collectors for connections, commands, MST timings and graph size, the chi
// admin router serving /metrics, /healthz, /graph and /paths/{source}, and
// OpenTelemetry tracing setup with a stdout exporter.
package telemetry
