package natskv

import (
	"context"
	"errors"

	"github.com/nats-io/nats.go/jetstream"
)

// ------------------------
// Fake KeyValue
// ------------------------

type FakeKeyValue struct {
	jetstream.KeyValue // Embed to satisfy interface
	data               map[string][]byte
	trace              []string

	PutErr error
}

func NewFakeKeyValue() *FakeKeyValue {
	return &FakeKeyValue{
		data:  make(map[string][]byte),
		trace: []string{},
	}
}

func (f *FakeKeyValue) Put(ctx context.Context, key string, value []byte) (uint64, error) {
	f.trace = append(f.trace, "Put")
	if f.PutErr != nil {
		return 0, f.PutErr
	}
	f.data[key] = value
	return uint64(len(f.data)), nil
}

func (f *FakeKeyValue) Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error) {
	f.trace = append(f.trace, "Get")
	val, ok := f.data[key]
	if !ok {
		return nil, jetstream.ErrKeyNotFound
	}
	return &FakeKeyValueEntry{value: val, key: key}, nil
}

func (f *FakeKeyValue) Delete(ctx context.Context, key string, opts ...jetstream.KVDeleteOpt) error {
	f.trace = append(f.trace, "Delete")
	if _, ok := f.data[key]; !ok {
		return jetstream.ErrKeyNotFound
	}
	delete(f.data, key)
	return nil
}

type FakeKeyValueEntry struct {
	jetstream.KeyValueEntry
	value []byte
	key   string
}

func (f *FakeKeyValueEntry) Value() []byte { return f.value }
func (f *FakeKeyValueEntry) Key() string   { return f.key }

var errUnavailable = errors.New("nats: no responders available for request")
