package llm

import (
	"context"
	"sync"
)

// FakeClient returns scripted responses for offline/testing use. Responses
// are consumed in call order; once exhausted the last one repeats. A non-nil
// Err fails every call.
type FakeClient struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	ErrAt     map[int]error // per-call (0-based) error injection
	Calls     []ChatRequest
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Complete(_ context.Context, req ChatRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, req)
	if f.Err != nil {
		return "", f.Err
	}
	i := len(f.Calls) - 1
	if err, ok := f.ErrAt[i]; ok {
		return "", err
	}
	if len(f.Responses) == 0 {
		return "", nil
	}
	if i >= len(f.Responses) {
		i = len(f.Responses) - 1
	}
	return f.Responses[i], nil
}

// CallCount reports how many calls have been made so far.
func (f *FakeClient) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}
