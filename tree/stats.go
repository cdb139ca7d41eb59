package tree

import (
	"context"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	RBTreeStatsName = "chocolacula/rbtree"
)

// rbTreeStats publishes tree counters through OpenTelemetry. A nil
// receiver is a no-op, so the hot paths call it unconditionally.
type rbTreeStats struct {
	keyCount      metric.Int64UpDownCounter
	insertedCount metric.Int64Counter
	removedCount  metric.Int64Counter
	rotationCount metric.Int64Counter
	searchCount   metric.Int64Counter
}

func (stats *rbTreeStats) RecordKeyCount(count int64) {
	if stats == nil {
		return
	}
	stats.keyCount.Add(context.Background(), count)
}

func (stats *rbTreeStats) IncreaseInsertedCount() {
	if stats == nil {
		return
	}
	stats.insertedCount.Add(context.Background(), 1)
}

func (stats *rbTreeStats) IncreaseRemovedCount() {
	if stats == nil {
		return
	}
	stats.removedCount.Add(context.Background(), 1)
}

func (stats *rbTreeStats) IncreaseRotationCount(dir RBDirection) {
	if stats == nil {
		return
	}
	as := attribute.NewSet(
		attribute.String("rbtree.rotation.direction", dir.String()),
	)
	stats.rotationCount.Add(context.Background(), 1, metric.WithAttributeSet(as))
}

func (stats *rbTreeStats) IncreaseSearchCount(hit bool) {
	if stats == nil {
		return
	}
	as := attribute.NewSet(
		attribute.Bool("rbtree.search.hit", hit),
	)
	stats.searchCount.Add(context.Background(), 1, metric.WithAttributeSet(as))
}

func newRBTreeStats() *rbTreeStats {
	return &rbTreeStats{
		keyCount: lo.Must[metric.Int64UpDownCounter](otel.Meter(RBTreeStatsName).
			Int64UpDownCounter(
				"rbtree.key.count",
				metric.WithDescription("The number of keys held by the tree."),
			),
		),
		insertedCount: lo.Must[metric.Int64Counter](otel.Meter(RBTreeStatsName).
			Int64Counter(
				"rbtree.inserted.count",
				metric.WithDescription("The number of keys inserted into the tree."),
			),
		),
		removedCount: lo.Must[metric.Int64Counter](otel.Meter(RBTreeStatsName).
			Int64Counter(
				"rbtree.removed.count",
				metric.WithDescription("The number of keys removed from the tree."),
			),
		),
		rotationCount: lo.Must[metric.Int64Counter](otel.Meter(RBTreeStatsName).
			Int64Counter(
				"rbtree.rotation.count",
				metric.WithDescription("The number of rebalance rotations, by direction."),
			),
		),
		searchCount: lo.Must[metric.Int64Counter](otel.Meter(RBTreeStatsName).
			Int64Counter(
				"rbtree.search.count",
				metric.WithDescription("The number of key lookups, by hit or miss."),
			),
		),
	}
}
