// Package echo builds reflected views of inbound HTTP requests.
//
// The echo contract is deliberately dumb: the caller gets back exactly what it
// sent, normalized for case-insensitive wire semantics. Header keys are always
// lowercased; the method is always uppercased; the query string is flattened
// to a single value per key.
package echo

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// Result is the reflected view of a single request.
//
// Body is carried out-of-band of the struct tags: a request that carried the
// JSON body `false` or `0` must still echo it, so presence is tracked
// explicitly instead of relying on omitempty.
type Result struct {
	Method          string
	Headers         map[string]string
	Query           map[string]string
	BodyContentType string
	Body            any
	HasBody         bool
}

// MarshalJSON emits the wire shape clients assert against.
func (r Result) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"echo-method":  r.Method,
		"echo-headers": r.Headers,
		"echo-qs":      r.Query,
	}
	if r.BodyContentType != "" {
		m["echo-body-content-type"] = r.BodyContentType
	}
	if r.HasBody {
		m["echo-body"] = r.Body
	}
	return json.Marshal(m)
}

// FromRequest reflects a request into a Result. The body is passed separately
// because the server drains it once, up front. A JSON body must already be
// well-formed; malformed JSON is rejected at the parsing boundary before the
// echo engine is invoked.
func FromRequest(r *http.Request, body []byte) Result {
	res := Result{
		Method:  strings.ToUpper(r.Method),
		Headers: LowerHeaders(r.Header),
		Query:   FlattenQuery(r.URL.Query()),
	}

	ct := r.Header.Get("Content-Type")
	if ct != "" {
		res.BodyContentType = ct
	}

	if len(body) > 0 {
		res.HasBody = true
		res.Body = decodeBody(ct, body)
	}
	return res
}

// decodeBody interprets the raw body by declared content type. JSON bodies
// are decoded to structured values; everything else is carried as a string.
func decodeBody(contentType string, body []byte) any {
	if IsJSONContentType(contentType) {
		var v any
		if err := json.Unmarshal(body, &v); err == nil {
			return v
		}
	}
	return string(body)
}

// IsJSONContentType reports whether the declared content type is JSON.
func IsJSONContentType(ct string) bool {
	mediaType := strings.TrimSpace(strings.ToLower(strings.SplitN(ct, ";", 2)[0]))
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// LowerHeaders flattens an http.Header into a map keyed by the lowercase
// header name. Multi-valued headers keep their first value.
func LowerHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		if len(values) == 0 {
			continue
		}
		out[strings.ToLower(name)] = values[0]
	}
	return out
}

// FlattenQuery flattens url.Values into a single value per key.
func FlattenQuery(q url.Values) map[string]string {
	out := make(map[string]string, len(q))
	for key, values := range q {
		if len(values) == 0 {
			continue
		}
		out[key] = values[0]
	}
	return out
}
