// Package metrics records platform request and cache activity.
//
// Components receive a Recorder by injection and default to NoopRecorder,
// so nothing needs nil checks. PrometheusRecorder registers its collectors
// on a caller-supplied registry.
package metrics

import "time"

// CacheMutation labels the kind of change applied to the workspace cache.
type CacheMutation string

const (
	CacheInsert CacheMutation = "insert"
	CacheRemove CacheMutation = "remove"
)

// Recorder defines observability hooks for API requests and cache mutations.
type Recorder interface {
	// ObserveRequest records one platform request. code is the HTTP status
	// code, or "error" when no response was received.
	ObserveRequest(op, code string, d time.Duration)
	IncCacheMutation(kind CacheMutation)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRequest(string, string, time.Duration) {}
func (NoopRecorder) IncCacheMutation(CacheMutation)               {}
