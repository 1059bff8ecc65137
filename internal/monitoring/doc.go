// Package monitoring provides Prometheus metrics for HTTP and tool execution.
package monitoring
