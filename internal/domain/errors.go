package domain

import "errors"

// Domain errors.
var (
	ErrUnknown             = errors.New("unknown error")
	ErrNoAddress           = errors.New("core api address is not configured")
	ErrCancelRejected      = errors.New("failed to cancel tasks")
	ErrInvalidTransport    = errors.New("invalid notification transport")
	ErrEmptyTemplateID     = errors.New("template id cannot be empty")
	ErrNoRepoURL           = errors.New("template has no repository url")
	ErrUnknownOutputFormat = errors.New("unknown output format")
	ErrEmptyAPI            = errors.New("api name cannot be empty")
	ErrConfigExists        = errors.New("config file already exists")
)

// ReportedError marks an error that has already been shown to the user.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// Reported marks err as already shown to the user. A nil err stays nil.
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &ReportedError{Err: err}
}

// IsReported returns true if err, or an error it wraps, was already shown
// to the user.
func IsReported(err error) bool {
	var r *ReportedError
	return errors.As(err, &r)
}
