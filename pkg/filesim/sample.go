package filesim

import (
	_ "embed"
)

// The download direction serves a fixed local sample file. Its checksum and
// size are fixture constants asserted bit-exact by the test suite; they are
// not recomputed per request.
const (
	SampleName     = "publicdomain.png"
	SampleMimeType = "image/png"
	SampleMD5      = "fc85b4c5c8f00b72359f51244c0d64a2"
	SampleSize     = 98

	// SampleURI is the advertised remote location of the sample file for
	// the uri download variant.
	SampleURI = "https://azamstatic.blob.core.windows.net/static/publicdomain.png"
)

//go:embed sample/publicdomain.png
var sampleFile []byte

// Sample returns a copy of the embedded sample file bytes.
func Sample() []byte {
	out := make([]byte, len(sampleFile))
	copy(out, sampleFile)
	return out
}
