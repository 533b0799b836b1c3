package errors

import "github.com/cockroachdb/errors"

// Sentinel markers. Every error surfaced past a repository or service
// boundary is Mark()ed with exactly one of these so HTTPStatusFromErr and
// the gin error handler middleware know how to respond.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrVersionConflict  = errors.New("version conflict")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrRateLimited      = errors.New("rate limited")
	ErrSystem           = errors.New("system error")
	ErrInternal         = errors.New("internal error")
	ErrHTTPClient       = errors.New("upstream http request failed")
)

// Is reports whether err is marked with sentinel.
func Is(err, sentinel error) bool {
	return errors.Is(err, sentinel)
}

// HTTPStatusFromErr maps a marked error to an HTTP status code. Errors not
// marked with any known sentinel map to 500.
func HTTPStatusFromErr(err error) int {
	switch {
	case err == nil:
		return 200
	case errors.Is(err, ErrValidation):
		return 400
	case errors.Is(err, ErrUnauthorized):
		return 401
	case errors.Is(err, ErrForbidden):
		return 403
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrVersionConflict):
		return 409
	case errors.Is(err, ErrInvalidOperation):
		return 422
	case errors.Is(err, ErrRateLimited):
		return 429
	case errors.Is(err, ErrHTTPClient):
		return 502
	default:
		return 500
	}
}
