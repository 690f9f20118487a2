package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveRequest("workspace.create", "201", 150*time.Millisecond)
	pr.ObserveRequest("workspace.create", "201", 20*time.Millisecond)
	pr.ObserveRequest("workspace.merge", "422", 10*time.Millisecond)
	pr.IncCacheMutation(CacheInsert)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 3)

	assert.InDelta(t, 2, testutil.ToFloat64(pr.requests.WithLabelValues("workspace.create", "201")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.requests.WithLabelValues("workspace.merge", "422")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.cacheMutations.WithLabelValues("insert")), 0)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveRequest("x", "200", time.Second)
	r.IncCacheMutation(CacheRemove)
}
