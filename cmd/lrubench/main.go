package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codewandler/hashlru/adapters/nats"
	promadapter "github.com/codewandler/hashlru/adapters/prometheus"
	"github.com/codewandler/hashlru/core/cache"
	"github.com/codewandler/hashlru/ports/kv"
)

// === Config ===

type config struct {
	reads       int
	capacity    int
	shards      int
	keyspace    int
	hotFraction int
	promote     bool
	metricsAddr string
	natsURL     string
	print       bool
	logLevel    slog.Level
}

func loadConfig() config {
	level := slog.LevelInfo
	if getEnvBool("DEBUG", false) {
		level = slog.LevelDebug
	}
	return config{
		reads:       getEnvInt("N", 200_000),
		capacity:    getEnvInt("CAPACITY", 256),
		shards:      getEnvInt("SHARDS", 8),
		keyspace:    getEnvInt("KEYSPACE", 10_000),
		hotFraction: getEnvInt("HOT_PERCENT", 10),
		promote:     getEnvBool("PROMOTE", false),
		metricsAddr: getEnv("METRICS_ADDR", ""),
		natsURL:     getEnv("NATS_URL", ""),
		print:       getEnvBool("PRINT", false),
		logLevel:    level,
	}
}

func getEnv(key, fallback string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	return v == "1" || strings.ToLower(v) == "true"
}

// === Main ===

func main() {
	cfg := loadConfig()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.logLevel}))
	slog.SetDefault(log)

	if err := run(ctx, log, cfg); err != nil {
		log.Error("lrubench failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, cfg config) error {
	if cfg.keyspace <= 0 {
		return fmt.Errorf("KEYSPACE must be positive, got %d", cfg.keyspace)
	}

	reg := prometheus.NewRegistry()
	m := promadapter.NewCacheMetrics(reg)

	if cfg.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.metricsAddr, Handler: mux}
		go func() {
			log.Info("metrics server starting", slog.String("addr", cfg.metricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server error", slog.Any("error", err))
			}
		}()
		defer srv.Shutdown(context.Background())
	}

	origin, closeOrigin, err := openOrigin(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open origin: %w", err)
	}
	defer closeOrigin()

	keys, err := seedOrigin(ctx, origin, cfg.keyspace)
	if err != nil {
		return fmt.Errorf("seed origin: %w", err)
	}
	log.Info("origin seeded", slog.Int("keys", len(keys)))

	c, err := cache.NewSharded(cache.ShardedOpts[string]{
		Shards:        cfg.shards,
		Capacity:      cfg.capacity,
		Seed:          "lrubench",
		PromoteOnFind: cfg.promote,
		Name:          "bench",
		Log:           log,
		Metrics:       m,
	})
	if err != nil {
		return err
	}
	defer c.Delete(nil)

	var loads atomic.Int64
	load := kv.Loader[string](origin)
	loader := cache.NewLoader[string](c, func(ctx context.Context, key string) (string, error) {
		loads.Add(1)
		return load(ctx, key)
	}, cache.LoaderOpts{Name: "bench", Log: log, Metrics: m})

	hot := min(len(keys), max(1, len(keys)*cfg.hotFraction/100))
	startAt := time.Now()
	for i := range cfg.reads {
		if ctx.Err() != nil {
			break
		}
		// 80% of reads go to the hot set
		key := keys[rand.IntN(len(keys))]
		if rand.IntN(100) < 80 {
			key = keys[rand.IntN(hot)]
		}
		if _, err := loader.Get(ctx, key); err != nil {
			return fmt.Errorf("read %d (%s): %w", i, key, err)
		}
	}
	elapsed := time.Since(startAt)

	misses := loads.Load()
	log.Info("done",
		slog.Int("reads", cfg.reads),
		slog.Int64("origin_loads", misses),
		slog.String("hit_ratio", fmt.Sprintf("%.3f", 1-float64(misses)/float64(max(1, cfg.reads)))),
		slog.Int("resident", c.Len()),
		slog.Duration("elapsed", elapsed),
		slog.Bool("promote_on_find", cfg.promote),
	)

	if cfg.print {
		return printSample(os.Stdout, keys)
	}
	return nil
}

func openOrigin(ctx context.Context, cfg config) (kv.Store, func(), error) {
	if cfg.natsURL == "" {
		return kv.NewMemStore(), func() {}, nil
	}
	store, err := nats.NewKvStore(ctx, nats.KvConfig{
		Connect: nats.ConnectURL(cfg.natsURL),
		Bucket:  "lrubench",
	})
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}

func seedOrigin(ctx context.Context, store kv.Store, n int) ([]string, error) {
	keys := make([]string, n)
	for i := range n {
		keys[i] = fmt.Sprintf("key-%d", i)
		if err := kv.Put(ctx, store, keys[i], gonanoid.Must(12)); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// printSample shows eviction order on a tiny cache.
func printSample(w io.Writer, keys []string) error {
	c, err := cache.New[string](3)
	if err != nil {
		return err
	}
	for _, key := range keys[:min(5, len(keys))] {
		c.Insert(key, gonanoid.Must(6))
	}
	c.Print(w, func(w io.Writer, key string, val string) {
		fmt.Fprintf(w, "%s -> %s\n", key, val)
	})
	return nil
}
