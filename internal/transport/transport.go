package transport

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deep-archive/setup/internal/config"
	"github.com/deep-archive/setup/internal/provisioning"
	"github.com/deep-archive/setup/internal/util/prerequisites"
)

// Transport fetches a single remote resource to a local path.
type Transport interface {
	// Name identifies the transport in configuration and reports.
	Name() string

	// Available reports whether the transport can be used on this host.
	Available() bool

	// Fetch writes the resource at url to dest. On failure dest may be
	// left partially written.
	Fetch(ctx context.Context, url, dest string) error
}

// ErrNoTransport is wrapped by the fatal error Select returns when no
// candidate is available.
var ErrNoTransport = errors.New("no download transport available")

// Select returns the first available candidate.
func Select(candidates []Transport) (Transport, error) {
	for _, t := range candidates {
		if t != nil && t.Available() {
			return t, nil
		}
	}

	names := make([]string, 0, len(candidates))
	for _, t := range candidates {
		if t != nil {
			names = append(names, t.Name())
		}
	}
	return nil, provisioning.Fatal(provisioning.KindTransportUnavailable, "",
		fmt.Errorf("%w (tried: %s)", ErrNoTransport, strings.Join(names, ", ")))
}

type options struct {
	availability prerequisites.CommandAvailability
	runner       Runner
	objects      ObjectGetter
}

// Option configures the transports built by Candidates.
type Option func(*options)

// WithAvailability replaces the PATH lookup used by command transports.
func WithAvailability(a prerequisites.CommandAvailability) Option {
	return func(o *options) {
		o.availability = a
	}
}

// WithRunner replaces process execution for command transports.
func WithRunner(r Runner) Option {
	return func(o *options) {
		o.runner = r
	}
}

// WithObjectGetter replaces the S3 client used by the mirror transport.
func WithObjectGetter(g ObjectGetter) Option {
	return func(o *options) {
		o.objects = g
	}
}

// Candidates builds the transports named in cfg.Transports, in order.
func Candidates(ctx context.Context, cfg *config.Config, opts ...Option) ([]Transport, error) {
	o := &options{
		availability: prerequisites.SystemPath,
		runner:       ExecRunner{},
	}
	for _, opt := range opts {
		opt(o)
	}

	candidates := make([]Transport, 0, len(cfg.Transports))
	for _, name := range cfg.Transports {
		switch name {
		case config.TransportCurl:
			candidates = append(candidates, Curl(o.availability, o.runner))
		case config.TransportWget:
			candidates = append(candidates, Wget(o.availability, o.runner))
		case config.TransportS3:
			t, err := newMirror(ctx, cfg.S3Mirror, o.objects)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, t)
		default:
			return nil, fmt.Errorf("unknown transport %q", name)
		}
	}
	return candidates, nil
}
