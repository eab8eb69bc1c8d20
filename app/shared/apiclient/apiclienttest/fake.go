// Package apiclienttest provides a scriptable apiclient.Requester for service
// tests.
package apiclienttest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/Black-And-White-Club/esportivo/app/shared/apiclient"
)

// Call is one recorded request.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// FakeRequester records every call and delegates to the matching Func field.
// Unset funcs succeed without touching out.
type FakeRequester struct {
	mu    sync.Mutex
	calls []Call

	GetFunc    func(ctx context.Context, path string, query url.Values, out any) error
	PostFunc   func(ctx context.Context, path string, body, out any) error
	PutFunc    func(ctx context.Context, path string, body, out any) error
	PatchFunc  func(ctx context.Context, path string, body, out any) error
	DeleteFunc func(ctx context.Context, path string, out any) error
}

func NewFakeRequester() *FakeRequester {
	return &FakeRequester{}
}

func (f *FakeRequester) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *FakeRequester) Get(ctx context.Context, path string, query url.Values, out any) error {
	f.record(Call{Method: "GET", Path: path, Query: query})
	if f.GetFunc != nil {
		return f.GetFunc(ctx, path, query, out)
	}
	return nil
}

func (f *FakeRequester) Post(ctx context.Context, path string, body, out any) error {
	f.record(Call{Method: "POST", Path: path, Body: body})
	if f.PostFunc != nil {
		return f.PostFunc(ctx, path, body, out)
	}
	return nil
}

func (f *FakeRequester) Put(ctx context.Context, path string, body, out any) error {
	f.record(Call{Method: "PUT", Path: path, Body: body})
	if f.PutFunc != nil {
		return f.PutFunc(ctx, path, body, out)
	}
	return nil
}

func (f *FakeRequester) Patch(ctx context.Context, path string, body, out any) error {
	f.record(Call{Method: "PATCH", Path: path, Body: body})
	if f.PatchFunc != nil {
		return f.PatchFunc(ctx, path, body, out)
	}
	return nil
}

func (f *FakeRequester) Delete(ctx context.Context, path string, out any) error {
	f.record(Call{Method: "DELETE", Path: path})
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, path, out)
	}
	return nil
}

// Calls returns the recorded calls in order.
func (f *FakeRequester) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Trace returns "METHOD path" for every recorded call.
func (f *FakeRequester) Trace() []string {
	calls := f.Calls()
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.Method+" "+c.Path)
	}
	return out
}

// Respond decodes the JSON fixture into out, the way the real client would.
func Respond(out any, fixture string) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(fixture), out); err != nil {
		return fmt.Errorf("bad fixture: %w", err)
	}
	return nil
}

// Routes builds a GetFunc serving fixed JSON fixtures by path. Unknown paths
// answer 404.
func Routes(fixtures map[string]string) func(ctx context.Context, path string, query url.Values, out any) error {
	return func(_ context.Context, path string, _ url.Values, out any) error {
		fixture, ok := fixtures[path]
		if !ok {
			return &apiclient.APIError{StatusCode: 404, Method: "GET", Path: path, Body: []byte(`{"message":"não encontrado"}`)}
		}
		return Respond(out, fixture)
	}
}

var _ apiclient.Requester = (*FakeRequester)(nil)
