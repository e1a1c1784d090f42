package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, DefaultHTTPPort, cfg.HTTPPort)
	assert.Equal(t, 15*time.Second, cfg.CallbackDelay)
	assert.Equal(t, 75*time.Second, cfg.SleepDelay)
	assert.Equal(t, int64(50<<20), cfg.MaxBodyBytes)
	assert.False(t, cfg.BlobStore.Enabled())
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("overrides defaults from yaml", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
httpPort: 9000
callbackDelay: 5s
blobStore:
  endpoint: localhost:9000
  bucket: callbacks
  instanceId: test-instance
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.HTTPPort)
		assert.Equal(t, 5*time.Second, cfg.CallbackDelay)
		assert.True(t, cfg.BlobStore.Enabled())
		assert.Equal(t, "test-instance", cfg.BlobStore.InstanceID)

		// Unset fields keep defaults
		assert.Equal(t, DefaultSleepDelay, cfg.SleepDelay)
		assert.Equal(t, DefaultReadTimeout, cfg.ReadTimeout)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("httpPort: [not a port"), 0644))
		_, err := LoadFile(path)
		require.Error(t, err)
	})
}

func TestFromEnv(t *testing.T) {
	t.Setenv("MOCK_API_S3_AWS_ACCESS_KEY_ID", "key-id")
	t.Setenv("MOCK_API_S3_AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("MOCK_API_S3_REGION", "ap-southeast-1")
	t.Setenv("MOCK_API_S3_BUCKET_NAME", "mock-bucket")
	t.Setenv("MOCK_API_S3_ENDPOINT", "s3.example.test")
	t.Setenv("MOCK_API_INSTANCE_ID", "instance-1")

	cfg := Default()
	cfg.FromEnv()

	assert.Equal(t, "key-id", cfg.BlobStore.AccessKey)
	assert.Equal(t, "secret", cfg.BlobStore.SecretKey)
	assert.Equal(t, "ap-southeast-1", cfg.BlobStore.Region)
	assert.Equal(t, "mock-bucket", cfg.BlobStore.Bucket)
	assert.Equal(t, "s3.example.test", cfg.BlobStore.Endpoint)
	assert.Equal(t, "instance-1", cfg.BlobStore.InstanceID)
	assert.True(t, cfg.BlobStore.Enabled())
}
