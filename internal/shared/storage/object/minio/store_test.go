package minio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointHost(t *testing.T) {
	tests := map[string]string{
		"localhost:9000":          "localhost:9000",
		"http://localhost:9000":   "localhost:9000",
		"https://minio.internal/": "minio.internal",
		"  play.min.io  ":         "play.min.io",
	}
	for in, want := range tests {
		assert.Equal(t, want, endpointHost(in), "endpointHost(%q)", in)
	}
}

func TestNewRequiresBucketAndEndpoint(t *testing.T) {
	_, err := New(Options{Endpoint: "localhost:9000"})
	require.Error(t, err)

	_, err = New(Options{Bucket: "docs"})
	require.Error(t, err)

	store, err := New(Options{Endpoint: "http://localhost:9000", Bucket: "docs", AccessKey: "a", SecretKey: "b"})
	require.NoError(t, err)
	assert.Equal(t, "docs", store.bucket)
}
