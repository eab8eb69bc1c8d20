package natskv

import (
	"context"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/esportivo/app/modules/storage"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/nats-io/nkeys"
)

// Impl stores entries in a JetStream key-value bucket.
type Impl struct {
	kv jetstream.KeyValue
	nc *nats.Conn
}

// New wraps an existing bucket handle.
func New(kv jetstream.KeyValue) *Impl {
	return &Impl{kv: kv}
}

// Options configures Open.
type Options struct {
	URL      string
	Bucket   string
	NkeySeed string
	Name     string
}

// Open connects to NATS, creating the bucket when it does not exist yet.
func Open(ctx context.Context, opts Options) (*Impl, error) {
	natsOpts := []nats.Option{}
	if opts.Name != "" {
		natsOpts = append(natsOpts, nats.Name(opts.Name))
	}
	if opts.NkeySeed != "" {
		opt, err := nkeyOption(opts.NkeySeed)
		if err != nil {
			return nil, err
		}
		natsOpts = append(natsOpts, opt)
	}

	nc, err := nats.Connect(opts.URL, natsOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	kv, err := js.KeyValue(ctx, opts.Bucket)
	if errors.Is(err, jetstream.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:      opts.Bucket,
			Description: "esportivo session entries",
			History:     1,
		})
	}
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to open KV bucket %q: %w", opts.Bucket, err)
	}

	return &Impl{kv: kv, nc: nc}, nil
}

// nkeyOption authenticates with a user nkey seed.
func nkeyOption(seed string) (nats.Option, error) {
	kp, err := nkeys.FromSeed([]byte(seed))
	if err != nil {
		return nil, fmt.Errorf("failed to parse nkey seed: %w", err)
	}
	pub, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive nkey public key: %w", err)
	}
	return nats.Nkey(pub, kp.Sign), nil
}

// Get implements storage.Backend.
func (s *Impl) Get(ctx context.Context, key string) (string, error) {
	entry, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("failed to get %q: %w", key, err)
	}
	return string(entry.Value()), nil
}

// Set implements storage.Backend.
func (s *Impl) Set(ctx context.Context, key, value string) error {
	if _, err := s.kv.Put(ctx, key, []byte(value)); err != nil {
		return fmt.Errorf("failed to put %q: %w", key, err)
	}
	return nil
}

// Delete implements storage.Backend.
func (s *Impl) Delete(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, key); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// Close drains the connection opened by Open.
func (s *Impl) Close() error {
	if s.nc == nil {
		return nil
	}
	return s.nc.Drain()
}
