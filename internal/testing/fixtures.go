package testing

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// FetchCall records one call to FakeTransport.Fetch.
type FetchCall struct {
	URL  string
	Dest string
}

// FakeTransport writes canned content to the destination instead of going
// to the network. By default every fetch succeeds and writes
// "content of <url>".
type FakeTransport struct {
	name      string
	available bool

	mu       sync.Mutex
	calls    []FetchCall
	contents map[string][]byte
	failures map[string]error
	partial  map[string][]byte
}

// NewFakeTransport returns an available fake named name.
func NewFakeTransport(name string) *FakeTransport {
	return &FakeTransport{
		name:      name,
		available: true,
		contents:  make(map[string][]byte),
		failures:  make(map[string]error),
		partial:   make(map[string][]byte),
	}
}

// Unavailable marks the fake as not installed.
func (f *FakeTransport) Unavailable() *FakeTransport {
	f.available = false
	return f
}

// Serve sets the bytes written for url.
func (f *FakeTransport) Serve(url string, content []byte) *FakeTransport {
	f.contents[url] = content
	return f
}

// FailOn makes fetching url return err after writing nothing.
func (f *FakeTransport) FailOn(url string, err error) *FakeTransport {
	f.failures[url] = err
	return f
}

// FailPartway makes fetching url write partial and then return err.
func (f *FakeTransport) FailPartway(url string, partial []byte, err error) *FakeTransport {
	f.partial[url] = partial
	f.failures[url] = err
	return f
}

// Name implements transport.Transport.
func (f *FakeTransport) Name() string { return f.name }

// Available implements transport.Transport.
func (f *FakeTransport) Available() bool { return f.available }

// Fetch implements transport.Transport.
func (f *FakeTransport) Fetch(_ context.Context, url, dest string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, FetchCall{URL: url, Dest: dest})

	if err, ok := f.failures[url]; ok {
		if partial, ok := f.partial[url]; ok {
			if writeErr := os.WriteFile(dest, partial, 0600); writeErr != nil {
				return writeErr
			}
		}
		return err
	}

	content, ok := f.contents[url]
	if !ok {
		content = []byte(fmt.Sprintf("content of %s", url))
	}
	return os.WriteFile(dest, content, 0600)
}

// Calls returns the recorded fetches in order.
func (f *FakeTransport) Calls() []FetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FetchCall(nil), f.calls...)
}

// CallCount returns the number of fetches so far.
func (f *FakeTransport) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
