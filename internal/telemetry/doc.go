// Package telemetry provides OpenTelemetry initialization and helpers
// for tracing recipe extractions.
//
// Traces and logs are exported over OTLP/HTTP. When no endpoint is
// configured the global providers are left as no-ops.
package telemetry
