package tree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRBTreeStats_NilReceiverNoop(t *testing.T) {
	var stats *rbTreeStats
	stats.RecordKeyCount(1)
	stats.IncreaseInsertedCount()
	stats.IncreaseRemovedCount()
	stats.IncreaseRotationCount(Left)
	stats.IncreaseSearchCount(true)

	// a tree without the stats option takes the same no-op path
	tree := NewRBTree[uint64]()
	require.NoError(t, tree.Insert(1))
	require.NoError(t, tree.Remove(1))
}

func TestRBTreeStats_Counters(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(mp)
	defer func() {
		require.NoError(t, mp.Shutdown(context.Background()))
	}()

	tree := NewRBTree[uint64](WithRBTreeStats[uint64]())
	for i := uint64(0); i < 10; i++ {
		require.NoError(t, tree.Insert(i))
	}
	require.NoError(t, tree.Remove(3))
	require.NotNil(t, tree.Search(5))
	require.Nil(t, tree.Search(42))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Equal(t, RBTreeStatsName, rm.ScopeMetrics[0].Scope.Name)

	sums := map[string]int64{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			sums[m.Name] = total
		}
	}
	require.Equal(t, int64(9), sums["rbtree.key.count"])
	require.Equal(t, int64(10), sums["rbtree.inserted.count"])
	require.Equal(t, int64(1), sums["rbtree.removed.count"])
	require.Equal(t, int64(2), sums["rbtree.search.count"])
	require.Positive(t, sums["rbtree.rotation.count"])
}
