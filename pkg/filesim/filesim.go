// Package filesim implements the file transfer simulation: checksums and MIME
// detection over an in-memory byte buffer, however those bytes arrived.
package filesim

import (
	"context"
	"crypto/md5" //nolint:gosec // content fingerprint for test fixtures, not security
	"encoding/hex"
	"fmt"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
)

// Info describes a file buffer. The same bytes produce the same Info no
// matter which transport delivered them (base64 body, multipart part, raw
// octet stream, or a fetched URI).
type Info struct {
	MimeType string `json:"mimeType"`
	MD5      string `json:"md5"`
	Size     int    `json:"size"`
}

// Describe computes the content hash, sniffed MIME type and byte length of
// a buffer. The MIME type comes from the byte signature; any declared
// content-type on the inbound request is ignored.
func Describe(data []byte) Info {
	sum := md5.Sum(data) //nolint:gosec
	return Info{
		MimeType: mimetype.Detect(data).String(),
		MD5:      hex.EncodeToString(sum[:]),
		Size:     len(data),
	}
}

// Fetch performs one best-effort GET of a remote URI and returns the body
// bytes. There is no retry and no timeout beyond what the client carries;
// failures are returned to the caller for a 502-class response.
func Fetch(ctx context.Context, client *http.Client, uri string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", uri, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", uri, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", uri, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", uri, err)
	}
	return data, nil
}
