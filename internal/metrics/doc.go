// Package metrics defines the Prometheus collectors exported by the
// service: HTTP request metrics, transcode queue and pipeline metrics,
// and database query metrics.
//
// Collectors are registered with the default registry via promauto at
// package load time. InitializeMetrics pre-populates label
// combinations so dashboards see zero-valued series immediately.
package metrics
