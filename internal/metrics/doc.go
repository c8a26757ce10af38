// Package metrics defines the Prometheus collectors for index builds,
// filter and search runs, and serves them over HTTP when requested.
package metrics
