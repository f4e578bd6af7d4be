package providers

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// VendorRecord is one transaction as the vendor sent it, undecoded. The
// normalizer turns these into canonical records; the engine never assumes
// any particular key set.
type VendorRecord = map[string]any

// FeedProvider fetches transaction records from an external bank or
// payment-gateway feed. Implementations live behind this port; the engine
// never speaks a concrete wire protocol.
type FeedProvider interface {
	// FetchTransactions returns every vendor record for the account since the
	// given instant. Failures are reported as *FetchError so the ingestion
	// policy can tell transient outages from credential problems.
	FetchTransactions(ctx context.Context, bankID, credentialHandle string, since time.Time) ([]VendorRecord, error)
}

// FetchKind classifies a feed fetch failure.
type FetchKind int

const (
	// FetchTransient covers outages, timeouts and 5xx responses; the cycle
	// is deferred to the next tick.
	FetchTransient FetchKind = iota
	// FetchAuth covers credential rejection; the connection gets deactivated.
	FetchAuth
	// FetchMalformed covers undecodable payloads or records.
	FetchMalformed
)

func (k FetchKind) String() string {
	switch k {
	case FetchTransient:
		return "TRANSIENT"
	case FetchAuth:
		return "AUTH"
	case FetchMalformed:
		return "MALFORMED"
	}
	return "UNKNOWN"
}

// FetchError is the error type every FeedProvider failure is wrapped in.
type FetchError struct {
	Kind    FetchKind
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("feed fetch %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("feed fetch %s: %s", e.Kind, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewTransientError wraps a retriable fetch failure.
func NewTransientError(message string, err error) *FetchError {
	return &FetchError{Kind: FetchTransient, Message: message, Err: err}
}

// NewAuthError wraps a credential rejection.
func NewAuthError(message string, err error) *FetchError {
	return &FetchError{Kind: FetchAuth, Message: message, Err: err}
}

// NewMalformedError wraps an undecodable payload.
func NewMalformedError(message string, err error) *FetchError {
	return &FetchError{Kind: FetchMalformed, Message: message, Err: err}
}

// FetchKindOf extracts the failure kind from an error chain. The second
// return is false when err carries no *FetchError.
func FetchKindOf(err error) (FetchKind, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}
