package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// testClient creates a Client backed by a test HTTP server.
// The handler receives real S3 XML-protocol requests.
func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)

	client := s3.New(s3.Options{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(server.URL),
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider("test-key", "test-secret", ""),
		HTTPClient: &http.Client{
			Transport: &http.Transport{},
		},
	})

	return &Client{s3: client, region: "us-east-1"}, server
}

// xmlResponse is a helper to write S3-style XML responses.
func xmlResponse(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(body))
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		endpoint  string
		region    string
		accessKey string
		secretKey string
		pathStyle bool
	}{
		{
			name:      "virtual-hosted style",
			endpoint:  "https://fsn1.your-objectstorage.com",
			region:    "fsn1",
			accessKey: "test-access-key",
			secretKey: "test-secret-key",
		},
		{
			name:      "path style with empty credentials still succeeds at client creation",
			endpoint:  "http://127.0.0.1:9000",
			region:    "us-east-1",
			pathStyle: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, err := NewClient(context.Background(), tt.endpoint, tt.region, tt.accessKey, tt.secretKey, tt.pathStyle)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client == nil {
				t.Fatal("expected non-nil client")
			}
			if client.region != tt.region {
				t.Errorf("expected region %s, got %s", tt.region, client.region)
			}
		})
	}
}

func TestDownload_Success(t *testing.T) {
	t.Parallel()

	expectedData := []byte("onnx model bytes")
	var gotPath string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "GET" {
			gotPath = r.URL.Path
			w.Header().Set("Content-Length", fmt.Sprintf("%d", len(expectedData)))
			w.WriteHeader(200)
			_, _ = w.Write(expectedData)
			return
		}
		w.WriteHeader(404)
	})

	client, server := testClient(t, handler)
	defer server.Close()

	var buf bytes.Buffer
	n, err := client.Download(context.Background(), "models", "v1/nsfw.onnx", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != int64(len(expectedData)) {
		t.Errorf("expected %d bytes, got %d", len(expectedData), n)
	}
	if !bytes.Equal(buf.Bytes(), expectedData) {
		t.Errorf("expected %q, got %q", expectedData, buf.Bytes())
	}
	if gotPath != "/models/v1/nsfw.onnx" {
		t.Errorf("unexpected request path %q", gotPath)
	}
}

func TestDownload_Error(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		xmlResponse(w, 404, `<?xml version="1.0" encoding="UTF-8"?>
<Error>
  <Code>NoSuchKey</Code>
  <Message>The specified key does not exist.</Message>
</Error>`)
	})

	client, server := testClient(t, handler)
	defer server.Close()

	var buf bytes.Buffer
	_, err := client.Download(context.Background(), "models", "missing.onnx", &buf)
	if err == nil {
		t.Fatal("expected error but got nil")
	}
	if !strings.Contains(err.Error(), "failed to get object missing.onnx from bucket models") {
		t.Errorf("unexpected error message: %v", err)
	}
	if !IsNotFound(err) {
		t.Errorf("expected not found error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected nothing written, got %d bytes", buf.Len())
	}
}

func TestObjectExists_True(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "HEAD" {
			w.WriteHeader(200)
			return
		}
		w.WriteHeader(404)
	})

	client, server := testClient(t, handler)
	defer server.Close()

	exists, err := client.ObjectExists(context.Background(), "models", "nsfw.onnx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected object to exist")
	}
}

func TestObjectExists_False(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
	})

	client, server := testClient(t, handler)
	defer server.Close()

	exists, err := client.ObjectExists(context.Background(), "models", "nsfw.onnx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected object to not exist")
	}
}

func TestObjectExists_OtherError(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(403)
	})

	client, server := testClient(t, handler)
	defer server.Close()

	_, err := client.ObjectExists(context.Background(), "models", "nsfw.onnx")
	if err == nil {
		t.Fatal("expected error but got nil")
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "wrapped NoSuchKey", err: fmt.Errorf("outer: %w", &s3types.NoSuchKey{}), want: true},
		{name: "wrapped NoSuchBucket", err: fmt.Errorf("outer: %w", &s3types.NoSuchBucket{}), want: true},
		{name: "wrapped NotFound", err: fmt.Errorf("outer: %w", &s3types.NotFound{}), want: true},
		{name: "wrapped generic error", err: fmt.Errorf("outer: %w", fmt.Errorf("inner error")), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := isNotFoundError(tt.err)
			if got != tt.want {
				t.Errorf("isNotFoundError() = %v, want %v", got, tt.want)
			}
		})
	}
}
