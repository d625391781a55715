// Package testing provides test utilities, builders, and fakes shared by the
// bootstrap's unit and integration tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for configurations rooted in a temporary directory
//   - FakeTransport: Scriptable transport that records every fetch
//   - MockTransport: testify mock for expectation-style tests
//   - StaticAvailability: Fixed answer to "is this binary on PATH"
//
// Usage:
//
//	cfg := testing.NewConfigBuilder(t.TempDir()).
//	    WithTransports("curl").
//	    Build()
//
//	fake := testing.NewFakeTransport("curl").FailOn(cfg.Artifacts[1].URL, errors.New("boom"))
package testing
