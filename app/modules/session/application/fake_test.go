package sessionservice

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
)

// ------------------------
// Fake Store
// ------------------------

type FakeStore struct {
	mu      sync.Mutex
	entries map[string]string
	trace   []string
}

func NewFakeStore(seed map[string]string) *FakeStore {
	entries := make(map[string]string, len(seed))
	for k, v := range seed {
		entries[k] = v
	}
	return &FakeStore{entries: entries}
}

func (f *FakeStore) Get(_ context.Context, key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.entries[key]
	return v, ok
}

func (f *FakeStore) Set(_ context.Context, key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, "Set:"+key)
	f.entries[key] = value
}

func (f *FakeStore) Remove(_ context.Context, key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, "Remove:"+key)
	delete(f.entries, key)
}

// Writes returns every Set and Remove in order.
func (f *FakeStore) Writes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.trace) == 0 {
		return nil
	}
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeStore) Entries() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.entries))
	for k, v := range f.entries {
		out[k] = v
	}
	return out
}

// ------------------------
// Fake Authenticator
// ------------------------

type FakeAuthenticator struct {
	calls     int
	LoginFunc func(ctx context.Context, identifier, password string) (*LoginResult, error)
}

func (f *FakeAuthenticator) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	f.calls++
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, identifier, password)
	}
	return nil, nil
}

// ------------------------
// Fake Bearer
// ------------------------

type FakeBearer struct {
	mu    sync.Mutex
	token string
	trace []string
}

func (f *FakeBearer) SetBearer(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, "SetBearer")
	f.token = token
}

func (f *FakeBearer) ClearBearer() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, "ClearBearer")
	f.token = ""
}

func (f *FakeBearer) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

// ------------------------
// Fake Alerter
// ------------------------

type FakeAlerter struct {
	Titles   []string
	Messages []string
}

func (f *FakeAlerter) Alert(_ context.Context, title, message string) {
	f.Titles = append(f.Titles, title)
	f.Messages = append(f.Messages, message)
}

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	mu         sync.Mutex
	Topics     []string
	Payloads   [][]byte
	PublishErr error
}

func (f *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range messages {
		f.Topics = append(f.Topics, topic)
		f.Payloads = append(f.Payloads, m.Payload)
	}
	return f.PublishErr
}

func (f *FakePublisher) Close() error { return nil }

var (
	_ KVStore           = (*FakeStore)(nil)
	_ Authenticator     = (*FakeAuthenticator)(nil)
	_ BearerSetter      = (*FakeBearer)(nil)
	_ Alerter           = (*FakeAlerter)(nil)
	_ message.Publisher = (*FakePublisher)(nil)
)
