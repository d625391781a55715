package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/deep-archive/setup/internal/config"
	"github.com/deep-archive/setup/internal/platform/s3"
)

// ErrNotInMirror is returned when the mirror bucket has no object for an
// artifact.
var ErrNotInMirror = errors.New("object not in mirror")

// ObjectGetter looks up and streams objects from a bucket.
type ObjectGetter interface {
	ObjectExists(ctx context.Context, bucket, key string) (bool, error)
	Download(ctx context.Context, bucket, key string, w io.Writer) (int64, error)
}

// Mirror fetches artifacts from an S3-compatible bucket instead of their
// public URL. The object key is derived from the destination file name.
type Mirror struct {
	cfg     config.S3Mirror
	objects ObjectGetter
}

// newS3Client is replaced in tests.
var newS3Client = func(ctx context.Context, m config.S3Mirror) (ObjectGetter, error) {
	return s3.NewClient(ctx, m.Endpoint, m.Region, m.AccessKey, m.SecretKey, m.PathStyle)
}

// NewMirror returns a mirror transport using objects for downloads.
func NewMirror(cfg config.S3Mirror, objects ObjectGetter) *Mirror {
	return &Mirror{cfg: cfg, objects: objects}
}

func newMirror(ctx context.Context, cfg config.S3Mirror, objects ObjectGetter) (*Mirror, error) {
	if objects != nil || !cfg.Enabled() {
		return NewMirror(cfg, objects), nil
	}
	client, err := newS3Client(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 mirror client: %w", err)
	}
	return NewMirror(cfg, client), nil
}

// Name implements Transport.
func (m *Mirror) Name() string { return config.TransportS3 }

// Available implements Transport. The mirror is usable once it is fully
// configured; reachability is only discovered on the first fetch.
func (m *Mirror) Available() bool {
	return m.objects != nil && m.cfg.Enabled()
}

// Key returns the object key used for dest.
func (m *Mirror) Key(dest string) string {
	return m.cfg.ObjectKey(filepath.Base(dest))
}

// Fetch implements Transport. The public url is not used. A missing object
// fails with ErrNotInMirror before dest is created.
func (m *Mirror) Fetch(ctx context.Context, _ string, dest string) error {
	key := m.Key(dest)
	location := fmt.Sprintf("s3://%s/%s", m.cfg.Bucket, key)

	exists, err := m.objects.ObjectExists(ctx, m.cfg.Bucket, key)
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", location, err)
	}
	if !exists {
		return fmt.Errorf("%s: %w", location, ErrNotInMirror)
	}

	// #nosec G304 - destination comes from configuration
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	n, err := m.objects.Download(ctx, m.cfg.Bucket, key, f)
	closeErr := f.Close()
	if err != nil {
		// Removed between lookup and download.
		if s3.IsNotFound(err) && n == 0 {
			_ = os.Remove(dest)
			return fmt.Errorf("%s: %w", location, ErrNotInMirror)
		}
		return fmt.Errorf("failed to fetch %s: %w", location, err)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to write %s: %w", dest, closeErr)
	}
	return nil
}
