package filesim

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	t.Parallel()

	t.Run("png signature", func(t *testing.T) {
		t.Parallel()
		info := Describe(Sample())
		assert.Equal(t, "image/png", info.MimeType)
		assert.Equal(t, SampleMD5, info.MD5)
		assert.Equal(t, SampleSize, info.Size)
	})

	t.Run("same bytes same info regardless of transport encoding", func(t *testing.T) {
		t.Parallel()
		raw := Sample()

		// Round-trip through base64 the way the base64 upload route does.
		encoded := base64.StdEncoding.EncodeToString(raw)
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		require.NoError(t, err)

		assert.Equal(t, Describe(raw), Describe(decoded))
	})

	t.Run("empty buffer", func(t *testing.T) {
		t.Parallel()
		info := Describe(nil)
		assert.Equal(t, 0, info.Size)
		sum := md5.Sum(nil)
		assert.Equal(t, hex.EncodeToString(sum[:]), info.MD5)
	})
}

func TestSampleConstantsMatchEmbeddedFile(t *testing.T) {
	t.Parallel()

	// The constants are fixtures, not recomputed per request. This test
	// pins them to the embedded bytes so a sample file change cannot drift
	// silently.
	info := Describe(Sample())
	assert.Equal(t, SampleMD5, info.MD5)
	assert.Equal(t, SampleSize, info.Size)
	assert.Equal(t, SampleMimeType, info.MimeType)
}

func TestSampleReturnsCopy(t *testing.T) {
	t.Parallel()

	a := Sample()
	a[0] = 0xFF
	assert.Equal(t, Describe(Sample()).MD5, SampleMD5, "mutating a returned buffer must not corrupt the embedded sample")
}

func TestFetch(t *testing.T) {
	t.Parallel()

	t.Run("returns remote bytes", func(t *testing.T) {
		t.Parallel()
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(Sample())
		}))
		defer upstream.Close()

		data, err := Fetch(context.Background(), upstream.Client(), upstream.URL+"/publicdomain.png")
		require.NoError(t, err)
		assert.Equal(t, SampleMD5, Describe(data).MD5)
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		t.Parallel()
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer upstream.Close()

		_, err := Fetch(context.Background(), upstream.Client(), upstream.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 404")
	})

	t.Run("unreachable host is an error, not a panic", func(t *testing.T) {
		t.Parallel()
		_, err := Fetch(context.Background(), nil, "http://127.0.0.1:1/unreachable")
		require.Error(t, err)
	})
}
