package errors

import (
	"net/http"
)

// marked tags an error with a sentinel kind without changing its message,
// so the reason shown to callers stays the one the tool produced.
type marked struct {
	cause error
	kind  error
}

func (m *marked) Error() string   { return m.cause.Error() }
func (m *marked) Unwrap() []error { return []error{m.cause, m.kind} }

// Mark attaches kind to err. Is(Mark(err, kind), kind) reports true.
func Mark(err error, kind error) error {
	if err == nil {
		return nil
	}
	if Is(err, kind) {
		return err
	}
	return &marked{cause: err, kind: kind}
}

// Invalidf builds a validation error carrying the formatted reason.
func Invalidf(format string, args ...any) error {
	return Mark(Errorf(format, args...), ErrInvalidParams)
}

// NotFoundf builds a not-found error carrying the formatted reason.
func NotFoundf(format string, args ...any) error {
	return Mark(Errorf(format, args...), ErrNotFound)
}

// StatusCode maps an error to the HTTP status the dispatcher answers with.
// Anything raised while a tool runs is a 500, even if the tool itself
// classified it as invalid input.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case Is(err, ErrToolExecution):
		return http.StatusInternalServerError
	case Is(err, ErrNotFound):
		return http.StatusNotFound
	case Is(err, ErrInvalidParams):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
