package apierror

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Classify maps a raw failure to its Record. Exactly one of err and status is
// expected to be meaningful: a non-nil err with status zero describes a
// transport failure that produced no response, while a status at or above 400
// describes an HTTP error response whose body, if any, is passed as body.
//
// The mapping is deterministic: the same (err, status) condition always yields
// the same type and severity. An already-classified error is returned as is.
func Classify(err error, status int, body []byte) *Record {
	var rec *Record
	if errors.As(err, &rec) {
		return rec
	}

	r := &Record{
		ID:         uuid.NewString(),
		Type:       TypeUnknown,
		Severity:   SeverityMedium,
		Message:    "unknown error",
		Code:       status,
		RawContext: body,
		Timestamp:  time.Now(),
		cause:      err,
	}

	switch {
	case err != nil && isTimeout(err):
		r.Type = TypeTimeout
		r.Severity = SeverityMedium
		r.Message = "request timed out, please retry later"
	case err != nil:
		r.Type = TypeNetwork
		r.Severity = SeverityHigh
		r.Message = "network connection failed, check your connection"
	case status != 0:
		r.Type, r.Severity, r.Message = classifyStatus(status)
	default:
		if err == nil && status == 0 {
			r.Message = "unknown error"
		}
	}

	return r
}

func classifyStatus(status int) (Type, Severity, string) {
	switch status {
	case http.StatusBadRequest:
		return TypeValidation, SeverityLow, "invalid request parameters"
	case http.StatusUnauthorized:
		return TypePermission, SeverityHigh, "unauthorized, please log in again"
	case http.StatusForbidden:
		return TypePermission, SeverityHigh, "permission denied"
	case http.StatusNotFound:
		return TypeAPI, SeverityMedium, "requested resource not found"
	case http.StatusUnprocessableEntity:
		return TypeValidation, SeverityLow, "request validation failed"
	case http.StatusInternalServerError:
		return TypeSystem, SeverityCritical, "internal server error"
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return TypeSystem, SeverityHigh, "service temporarily unavailable, please retry later"
	default:
		return TypeAPI, SeverityMedium, "request failed"
	}
}

// AsRecord returns err as a classified Record, classifying it first when the
// error did not originate from this package.
func AsRecord(err error) *Record {
	var rec *Record
	if errors.As(err, &rec) {
		return rec
	}
	return Classify(err, 0, nil)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
