package nats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/codewandler/hashlru/ports/kv"
)

const defaultOpTimeout = 5 * time.Second

type KvConfig struct {
	Connect Connector
	// Bucket is the JetStream key-value bucket name. Required.
	Bucket string
	// TTL expires entries bucket-wide; zero keeps them forever.
	TTL time.Duration
	// MaxBytes caps the bucket size (default 1 MiB).
	MaxBytes int64
	// OpTimeout bounds each call whose ctx has no deadline (default 5s).
	OpTimeout time.Duration
}

// KvStore is a kv.Store backed by a JetStream key-value bucket.
type KvStore struct {
	kv        jetstream.KeyValue
	close     closeFunc
	opTimeout time.Duration
}

func NewKvStore(ctx context.Context, cfg KvConfig) (*KvStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket is required")
	}
	if cfg.Connect == nil {
		cfg.Connect = ConnectDefault()
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = 1024 * 1024
	}
	if cfg.OpTimeout == 0 {
		cfg.OpTimeout = defaultOpTimeout
	}

	nc, closeConn, err := cfg.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		closeConn()
		return nil, err
	}

	bucket, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:   cfg.Bucket,
		Storage:  jetstream.FileStorage,
		MaxBytes: cfg.MaxBytes,
		TTL:      cfg.TTL,
	})
	if err != nil {
		closeConn()
		return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
	}

	return &KvStore{kv: bucket, close: closeConn, opTimeout: cfg.OpTimeout}, nil
}

func (k *KvStore) Put(ctx context.Context, key string, entry kv.Entry) error {
	ctx, cancel := k.withTimeout(ctx)
	defer cancel()
	if _, err := k.kv.Put(ctx, key, entry.Data); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (k *KvStore) Get(ctx context.Context, key string) (kv.Entry, error) {
	ctx, cancel := k.withTimeout(ctx)
	defer cancel()
	v, err := k.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return kv.Entry{}, kv.ErrNotFound
		}
		return kv.Entry{}, fmt.Errorf("get %s: %w", key, err)
	}
	return kv.Entry{Data: v.Value()}, nil
}

func (k *KvStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := k.withTimeout(ctx)
	defer cancel()
	if err := k.kv.Delete(ctx, key); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection.
func (k *KvStore) Close() { k.close() }

func (k *KvStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, k.opTimeout)
}

var _ kv.Store = (*KvStore)(nil)
