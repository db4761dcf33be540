package apierror

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type identifies which branch of the failure taxonomy produced a [Record].
type Type uint8

const (
	// TypeUnknown covers failures no other branch matched.
	TypeUnknown Type = iota
	// TypeNetwork covers transport failures with no server response.
	TypeNetwork
	// TypeTimeout covers client-side request timeouts.
	TypeTimeout
	// TypeAPI covers HTTP error statuses without a more specific mapping.
	TypeAPI
	// TypeValidation covers request- and payload-validation rejections.
	TypeValidation
	// TypePermission covers authentication and authorization rejections.
	TypePermission
	// TypeBusiness covers failures reported inside a success envelope.
	TypeBusiness
	// TypeSystem covers server-side faults and upstream unavailability.
	TypeSystem
)

// String returns the stable wire name of the type.
func (t Type) String() string {
	switch t {
	case TypeNetwork:
		return "network_error"
	case TypeTimeout:
		return "timeout_error"
	case TypeAPI:
		return "api_error"
	case TypeValidation:
		return "validation_error"
	case TypePermission:
		return "permission_error"
	case TypeBusiness:
		return "business_error"
	case TypeSystem:
		return "system_error"
	default:
		return "unknown_error"
	}
}

// Severity ranks how loudly a classified failure should be surfaced.
type Severity uint8

const (
	// SeverityLow is an exported severity rank; low failures are routine.
	SeverityLow Severity = iota
	// SeverityMedium is the default rank for unmatched failures.
	SeverityMedium
	// SeverityHigh marks failures the user must usually act on.
	SeverityHigh
	// SeverityCritical marks failures that require a persistent alert.
	SeverityCritical
)

// String returns the lowercase name of the severity rank.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	}
	return "unknown"
}

// Record is the structured, immutable result of classifying one failure.
// Records are produced only by [Classify] and [NewBusiness]; callers must not
// modify a Record after it has been constructed.
type Record struct {
	// ID uniquely identifies the record inside the ring log.
	ID string
	// Message is the user-facing description of the failure.
	Message string
	// Type is the taxonomy branch that matched.
	Type Type
	// Severity ranks the failure for notification sizing.
	Severity Severity
	// Code carries the HTTP status or envelope code, zero when transport-level.
	Code int
	// RawContext holds the raw response body or envelope data, if any.
	RawContext json.RawMessage
	// Timestamp is the classification time.
	Timestamp time.Time

	cause error
}

// Error implements the error interface.
func (r *Record) Error() string {
	if r.Code != 0 {
		return fmt.Sprintf("%s (%d): %s", r.Type, r.Code, r.Message)
	}
	return fmt.Sprintf("%s: %s", r.Type, r.Message)
}

// Unwrap exposes the underlying transport error, when one exists.
func (r *Record) Unwrap() error {
	return r.cause
}

// NewBusiness constructs a Record for a business-rule failure returned inside
// a 200-wrapped envelope with a non-success code. The server's message is
// carried verbatim and the record never passes through the HTTP-status
// branches of [Classify].
func NewBusiness(code int, message string, data json.RawMessage) *Record {
	if message == "" {
		message = "request rejected by server"
	}
	return &Record{
		ID:         uuid.NewString(),
		Message:    message,
		Type:       TypeBusiness,
		Severity:   SeverityMedium,
		Code:       code,
		RawContext: data,
		Timestamp:  time.Now(),
	}
}

// DefaultRetryable is the retryability predicate used when a retry policy does
// not supply its own: only network and timeout failures are retryable, every
// other type is terminal on first encounter.
func DefaultRetryable(r *Record) bool {
	if r == nil {
		return false
	}
	return r.Type == TypeNetwork || r.Type == TypeTimeout
}
