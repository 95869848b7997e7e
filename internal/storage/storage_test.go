package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interviewqa/apiserver/config"
)

func TestObjectURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/images/a.png",
		ObjectURL("https://cdn.example.com/", "bucket", "images/a.png"))
	assert.Equal(t, "/bucket/images/a.png", ObjectURL("", "bucket", "images/a.png"))
}

func TestNewWithoutBackend(t *testing.T) {
	backend, err := New(context.Background(), config.StorageConfig{})
	require.NoError(t, err)
	assert.Nil(t, backend)
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New(context.Background(), config.StorageConfig{Backend: "s3"})
	assert.Error(t, err)
}

func TestNewMinioRequiresEndpoint(t *testing.T) {
	_, err := New(context.Background(), config.StorageConfig{Backend: BackendMinio})
	assert.EqualError(t, err, "minio endpoint is required")
}
