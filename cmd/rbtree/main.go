package main

import (
	"context"
	"flag"
	"fmt"
	randv2 "math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"

	"github.com/chocolacula/rb-tree/tree"
)

var config struct {
	keys   string
	remove string
	n      int
	seed   uint64
	stats  bool
	quiet  bool
}

func main() {
	flag.StringVar(&config.keys, "keys", "3,5,1,7,13,15,4,17,9,11,2,21", "comma separated keys to insert")
	flag.StringVar(&config.remove, "remove", "7", "comma separated keys to remove afterwards")
	flag.IntVar(&config.n, "n", 0, "insert n random keys instead of -keys")
	flag.Uint64Var(&config.seed, "seed", 42, "seed of the random workload")
	flag.BoolVar(&config.stats, "stats", false, "dump OpenTelemetry counters on exit")
	flag.BoolVar(&config.quiet, "quiet", false, "skip rendering the tree")
	flag.Parse()

	logger := zap.Must(zap.NewDevelopment())
	defer func() { _ = logger.Sync() }()

	opts := make([]tree.RBTreeOpt[int64], 0, 1)
	if config.stats {
		shutdown, err := newConsoleMetricsExporter(5*time.Second, time.Second)
		if err != nil {
			logger.Fatal("metrics exporter init failed", zap.Error(err))
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("metrics exporter shutdown failed", zap.Error(err))
			}
		}()
		opts = append(opts, tree.WithRBTreeStats[int64]())
	}
	rbtree := tree.NewRBTree[int64](opts...)

	keys := parseKeys(config.keys, logger)
	if config.n > 0 {
		rng := randv2.New(randv2.NewPCG(config.seed, config.seed))
		keys = make([]int64, 0, config.n)
		for range config.n {
			keys = append(keys, rng.Int64N(int64(config.n)*10+1))
		}
	}

	inserted, rejected := 0, 0
	for _, key := range keys {
		if err := rbtree.Insert(key); err != nil {
			rejected++
			logger.Warn("insert rejected", zap.Int64("key", key), zap.Error(err))
			continue
		}
		inserted++
	}

	removed, missing := 0, 0
	for _, key := range parseKeys(config.remove, logger) {
		if err := rbtree.Remove(key); err != nil {
			missing++
			logger.Warn("remove rejected", zap.Int64("key", key), zap.Error(err))
			continue
		}
		removed++
	}

	if !config.quiet {
		fmt.Print(rbtree.Render())
	}
	if err := tree.Validate[int64](rbtree); err == nil {
		fmt.Println("RbTree is valid")
	} else {
		fmt.Println("RbTree is NOT valid")
		logger.Error("rbtree rule violation", zap.Error(err))
	}

	logger.Info("workload done",
		zap.String("inserted", humanize.Comma(int64(inserted))),
		zap.String("rejected", humanize.Comma(int64(rejected))),
		zap.String("removed", humanize.Comma(int64(removed))),
		zap.String("missing", humanize.Comma(int64(missing))),
		zap.String("size", humanize.Comma(rbtree.Len())),
	)
}

func parseKeys(csv string, logger *zap.Logger) []int64 {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	return lo.Map(strings.Split(csv, ","), func(raw string, _ int) int64 {
		key, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			logger.Fatal("not an integer key", zap.String("raw", raw), zap.Error(err))
		}
		return key
	})
}

// Serves for test/dev environment.
func newConsoleMetricsExporter(interval, timeout time.Duration, opts ...stdoutmetric.Option) (func(ctx context.Context) error, error) {
	exporter, err := stdoutmetric.New(opts...)
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(
		exporter,
		metric.WithInterval(interval),
		metric.WithTimeout(timeout),
	)))
	callback := mp.Shutdown
	otel.SetMeterProvider(mp)
	return callback, nil
}
