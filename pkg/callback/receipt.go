// Package callback implements the deferred asynchronous callback mechanism:
// an immediate receipt for the caller, then a single fire-and-forget HTTP
// POST to a caller-supplied URL after a fixed delay.
package callback

import (
	"net/http"

	"github.com/google/uuid"
)

// DefaultInitialStatus is returned to the caller when no initialStatusCode
// is supplied: the request was accepted, work continues out of band.
const DefaultInitialStatus = http.StatusAccepted

// Inputs echoes what the caller sent.
type Inputs struct {
	Headers     map[string]string `json:"headers"`
	Body        any               `json:"body"`
	CallbackURL string            `json:"callbackUrl"`
}

// Outputs carries the derived callback parameters. ActualResultStatus is
// explicitly null (not omitted) when no result status was supplied.
type Outputs struct {
	TextOutput         any     `json:"textOutput"`
	CallbackURL        string  `json:"callbackUrl"`
	ActualResultStatus *string `json:"actualResultStatus"`
}

// Receipt is the immediate acknowledgment returned before the delayed
// callback fires, and also the payload of the callback itself.
//
// Error is omitted entirely when no errorMessage was supplied; callers
// distinguish "absent" from "null".
type Receipt struct {
	ReceiptID string  `json:"receiptId"`
	Inputs    Inputs  `json:"inputs"`
	Outputs   Outputs `json:"outputs"`
	Error     string  `json:"error,omitempty"`
}

// Build constructs a receipt from the caller's request. headers are the
// lowercased request headers, body the decoded JSON body (nil when none),
// and callbackURL the already URL-decoded callback target.
//
// The receipt ID is a fresh random UUID v4 with no registry behind it;
// uniqueness is probabilistic.
func Build(headers map[string]string, body any, callbackURL string) Receipt {
	r := Receipt{
		ReceiptID: uuid.NewString(),
		Inputs: Inputs{
			Headers:     headers,
			Body:        body,
			CallbackURL: callbackURL,
		},
		Outputs: Outputs{
			CallbackURL: callbackURL,
		},
	}

	fields, _ := body.(map[string]any)
	if v, ok := fields["textInput"]; ok {
		r.Outputs.TextOutput = v
	}

	// An empty resultStatus is treated identically to an absent one:
	// no &status suffix and an explicit null actualResultStatus.
	if status, ok := fields["resultStatus"].(string); ok && status != "" {
		r.Outputs.ActualResultStatus = &status
		r.Outputs.CallbackURL = callbackURL + "&status=" + status
	}

	if msg, ok := fields["errorMessage"].(string); ok && msg != "" {
		r.Error = msg
	}

	return r
}

// InitialStatus returns the HTTP status for the immediate response:
// initialStatusCode when present and non-null, 202 otherwise.
func InitialStatus(body any) int {
	fields, _ := body.(map[string]any)
	if v, ok := fields["initialStatusCode"]; ok && v != nil {
		if f, isNum := v.(float64); isNum {
			return int(f)
		}
	}
	return DefaultInitialStatus
}
