// Package metrics exposes evaluation counters in the Prometheus text format.
package metrics
