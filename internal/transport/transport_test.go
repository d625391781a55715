package transport

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deep-archive/setup/internal/config"
	"github.com/deep-archive/setup/internal/provisioning"
	"github.com/deep-archive/setup/internal/util/prerequisites"
)

// onPath reports the listed binaries as installed under /usr/bin.
func onPath(names ...string) prerequisites.CommandAvailability {
	found := make(map[string]bool, len(names))
	for _, n := range names {
		found[n] = true
	}
	return prerequisites.LookPathFunc(func(name string) (string, error) {
		if found[name] {
			return "/usr/bin/" + name, nil
		}
		return "", exec.ErrNotFound
	})
}

type call struct {
	name string
	args []string
}

type recordingRunner struct {
	calls []call
	err   error
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) error {
	r.calls = append(r.calls, call{name: name, args: args})
	return r.err
}

type fakeObjects struct {
	content   []byte
	err       error
	missing   bool
	headErr   error
	bucket    string
	key       string
	downloads int
}

func (f *fakeObjects) ObjectExists(_ context.Context, bucket, key string) (bool, error) {
	f.bucket = bucket
	f.key = key
	return !f.missing, f.headErr
}

func (f *fakeObjects) Download(_ context.Context, bucket, key string, w io.Writer) (int64, error) {
	f.bucket = bucket
	f.key = key
	f.downloads++
	n, _ := w.Write(f.content)
	return int64(n), f.err
}

func enabledMirror() config.S3Mirror {
	return config.S3Mirror{
		Endpoint:  "http://127.0.0.1:9000",
		Region:    "us-east-1",
		Bucket:    "models",
		Prefix:    "/deep-archive/",
		AccessKey: "key",
		SecretKey: "secret",
	}
}

func TestCurl(t *testing.T) {
	t.Parallel()

	runner := &recordingRunner{}
	curl := Curl(onPath("curl"), runner)

	assert.Equal(t, "curl", curl.Name())
	assert.True(t, curl.Available())

	err := curl.Fetch(context.Background(), "https://example.com/m.onnx", "models/m.onnx")
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "curl", runner.calls[0].name)
	assert.Equal(t, []string{"-fL", "--silent", "--show-error", "-o", "models/m.onnx", "https://example.com/m.onnx"}, runner.calls[0].args)
	assert.Equal(t, curl.Args("https://example.com/m.onnx", "models/m.onnx"), runner.calls[0].args)
}

func TestWget(t *testing.T) {
	t.Parallel()

	runner := &recordingRunner{}
	wget := Wget(onPath("wget"), runner)

	assert.Equal(t, "wget", wget.Name())
	assert.True(t, wget.Available())

	require.NoError(t, wget.Fetch(context.Background(), "https://example.com/m.onnx", "models/m.onnx"))
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"-q", "-O", "models/m.onnx", "https://example.com/m.onnx"}, runner.calls[0].args)
}

func TestCommandTransport_Unavailable(t *testing.T) {
	t.Parallel()

	assert.False(t, Curl(onPath("wget"), &recordingRunner{}).Available())
	assert.False(t, Wget(nil, &recordingRunner{}).Available())
}

func TestCommandTransport_FetchError(t *testing.T) {
	t.Parallel()

	runner := &recordingRunner{err: errors.New("exit status 22")}
	err := Curl(onPath("curl"), runner).Fetch(context.Background(), "https://example.com/m.onnx", "m.onnx")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch https://example.com/m.onnx")
	assert.Contains(t, err.Error(), "exit status 22")
}

func TestExecRunner_ReportsFailure(t *testing.T) {
	t.Parallel()

	err := ExecRunner{}.Run(context.Background(), "deep-archive-setup-no-such-binary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deep-archive-setup-no-such-binary")
}

func TestSelect(t *testing.T) {
	t.Parallel()

	curl := Curl(onPath("wget"), &recordingRunner{})
	wget := Wget(onPath("wget"), &recordingRunner{})

	t.Run("first available wins", func(t *testing.T) {
		t.Parallel()
		both := onPath("curl", "wget")
		selected, err := Select([]Transport{Curl(both, nil), Wget(both, nil)})
		require.NoError(t, err)
		assert.Equal(t, "curl", selected.Name())
	})

	t.Run("falls back in order", func(t *testing.T) {
		t.Parallel()
		selected, err := Select([]Transport{curl, wget})
		require.NoError(t, err)
		assert.Equal(t, "wget", selected.Name())
	})

	t.Run("none available is fatal", func(t *testing.T) {
		t.Parallel()
		none := onPath()
		selected, err := Select([]Transport{Curl(none, nil), Wget(none, nil)})
		require.Error(t, err)
		assert.Nil(t, selected)

		kind, ok := provisioning.FatalKind(err)
		require.True(t, ok)
		assert.Equal(t, provisioning.KindTransportUnavailable, kind)
		assert.ErrorIs(t, err, ErrNoTransport)
		assert.Contains(t, err.Error(), "tried: curl, wget")
	})

	t.Run("empty list is fatal", func(t *testing.T) {
		t.Parallel()
		_, err := Select(nil)
		assert.True(t, provisioning.IsFatal(err))
	})
}

func TestMirror_Fetch(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "nsfw.onnx")
	objects := &fakeObjects{content: []byte("model")}
	m := NewMirror(enabledMirror(), objects)

	assert.Equal(t, "s3", m.Name())
	assert.True(t, m.Available())

	require.NoError(t, m.Fetch(context.Background(), "https://ignored.example.com/x", dest))
	assert.Equal(t, "models", objects.bucket)
	assert.Equal(t, "deep-archive/nsfw.onnx", objects.key)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, []byte("model"), data)
}

func TestMirror_FetchErrorLeavesPartialFile(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "tagger.onnx")
	objects := &fakeObjects{content: []byte("part"), err: errors.New("connection reset")}

	err := NewMirror(enabledMirror(), objects).Fetch(context.Background(), "", dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://models/deep-archive/tagger.onnx")

	data, readErr := os.ReadFile(dest)
	require.NoError(t, readErr)
	assert.Equal(t, []byte("part"), data)
}

func TestMirror_FetchMissingObject(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "nsfw.onnx")
	objects := &fakeObjects{missing: true}

	err := NewMirror(enabledMirror(), objects).Fetch(context.Background(), "", dest)
	require.ErrorIs(t, err, ErrNotInMirror)
	assert.Contains(t, err.Error(), "s3://models/deep-archive/nsfw.onnx")
	assert.Zero(t, objects.downloads)
	assert.NoFileExists(t, dest)
}

func TestMirror_FetchLookupError(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "nsfw.onnx")
	objects := &fakeObjects{headErr: errors.New("access denied")}

	err := NewMirror(enabledMirror(), objects).Fetch(context.Background(), "", dest)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotInMirror)
	assert.Contains(t, err.Error(), "failed to look up")
	assert.NoFileExists(t, dest)
}

func TestMirror_FetchObjectRemovedBeforeDownload(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "tagger.onnx")
	objects := &fakeObjects{err: &types.NoSuchKey{}}

	err := NewMirror(enabledMirror(), objects).Fetch(context.Background(), "", dest)
	require.ErrorIs(t, err, ErrNotInMirror)
	assert.NoFileExists(t, dest)
}

func TestMirror_FetchCreateError(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "missing-dir", "nsfw.onnx")
	err := NewMirror(enabledMirror(), &fakeObjects{}).Fetch(context.Background(), "", dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create")
}

func TestMirror_Available(t *testing.T) {
	t.Parallel()

	assert.False(t, NewMirror(config.S3Mirror{}, &fakeObjects{}).Available(), "not configured")
	assert.False(t, NewMirror(enabledMirror(), nil).Available(), "no client")
}

func TestCandidates(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Transports = []string{config.TransportS3, config.TransportCurl, config.TransportWget}
	cfg.S3Mirror = enabledMirror()

	candidates, err := Candidates(context.Background(), cfg,
		WithAvailability(onPath("wget")),
		WithRunner(&recordingRunner{}),
		WithObjectGetter(&fakeObjects{}),
	)
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"s3", "curl", "wget"}, names)
	assert.True(t, candidates[0].Available())
	assert.False(t, candidates[1].Available())
	assert.True(t, candidates[2].Available())
}

func TestCandidates_UnconfiguredMirrorIsUnavailable(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Transports = []string{config.TransportS3}

	candidates, err := Candidates(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.False(t, candidates[0].Available())

	_, err = Select(candidates)
	assert.True(t, provisioning.IsFatal(err))
}

func TestCandidates_BuildsS3Client(t *testing.T) {
	orig := newS3Client
	t.Cleanup(func() { newS3Client = orig })

	var got config.S3Mirror
	newS3Client = func(_ context.Context, m config.S3Mirror) (ObjectGetter, error) {
		got = m
		return &fakeObjects{}, nil
	}

	cfg := config.Default()
	cfg.Transports = []string{config.TransportS3}
	cfg.S3Mirror = enabledMirror()

	candidates, err := Candidates(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, candidates[0].Available())
	assert.Equal(t, "models", got.Bucket)
}

func TestCandidates_S3ClientError(t *testing.T) {
	orig := newS3Client
	t.Cleanup(func() { newS3Client = orig })

	newS3Client = func(context.Context, config.S3Mirror) (ObjectGetter, error) {
		return nil, errors.New("bad endpoint")
	}

	cfg := config.Default()
	cfg.Transports = []string{config.TransportS3}
	cfg.S3Mirror = enabledMirror()

	_, err := Candidates(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad endpoint")
}

func TestCandidates_UnknownTransport(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Transports = []string{"ftp"}

	_, err := Candidates(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown transport "ftp"`)
}
