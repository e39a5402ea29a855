package rest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCountsCacheActivity(t *testing.T) {
	f := newFakeFetcher()
	f.set("GET /order", `{"data":[]}`)
	f.set("PATCH /order/1", `{"data":{}}`)
	f.fail("PATCH /order/2", errors.New("boom"))
	c := newTestClient(t, f)
	m := c.Metrics()
	ctx := context.Background()

	require.NoError(t, c.Query(ctx, getOrders, NoArg, nil))
	require.NoError(t, c.Query(ctx, getOrders, NoArg, nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheMisses.WithLabelValues("getOrders")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits.WithLabelValues("getOrders")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetches.WithLabelValues("getOrders", "ok")))

	require.NoError(t, c.Mutate(ctx, updateOrder, ID("1"), nil, nil))
	require.Error(t, c.Mutate(ctx, updateOrder, ID("2"), nil, nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.invalidated.WithLabelValues("getOrders")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutations.WithLabelValues("updateOrder", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutations.WithLabelValues("updateOrder", "error")))
	// Nothing subscribed, so nothing was refetched.
	assert.Equal(t, 0.0, testutil.ToFloat64(m.refetches.WithLabelValues("getOrders")))
}

func TestCollectorCountsSharedFetches(t *testing.T) {
	f := newFakeFetcher()
	f.set("GET /order/3", `{"data":{}}`)
	f.gate = make(chan struct{})
	f.started = make(chan string, 1)
	c := newTestClient(t, f)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.Query(context.Background(), getOrder, ID("3"), nil))
		}()
	}
	<-f.started
	time.Sleep(50 * time.Millisecond)
	close(f.gate)
	wg.Wait()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Metrics().fetches.WithLabelValues("getOrder", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Metrics().sharedFetches.WithLabelValues("getOrder")))
}

func TestCollectorDescribesEveryMetric(t *testing.T) {
	c := NewMetricsCollector()
	c.cacheHits.WithLabelValues("getOrders").Inc()
	assert.Equal(t, 1, testutil.CollectAndCount(c, "printa_dashboard_rest_cache_hits_total"))
	ch := make(chan *prometheus.Desc, 16)
	c.Describe(ch)
	close(ch)
	assert.Len(t, ch, 7)
}
