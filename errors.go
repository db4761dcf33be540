package campusfound

import "errors"

var (
	// ErrUnsupportedRole is returned when a login or profile dispatch is asked
	// for a role outside the three known values.
	ErrUnsupportedRole = errors.New("unsupported user role")
	// ErrNotAuthenticated is returned by operations that require a live session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrLoginResponseInvalid is returned when a login succeeds at the HTTP
	// level but the envelope is missing the token or the identity blob.
	ErrLoginResponseInvalid = errors.New("login response data malformed")
	// ErrStoreRequired is returned by Build when no session store is wired.
	ErrStoreRequired = errors.New("session store is required")
	// ErrBaseURLRequired is returned by Build when no service base URL is set.
	ErrBaseURLRequired = errors.New("service base URL is required")
	// ErrAlreadyBuilt is returned when a Builder is consumed twice.
	ErrAlreadyBuilt = errors.New("builder already consumed")
)
