package domain

// Result is the outcome of a remote call: either a value or an error.
// Callers must check IsOk before trusting Value.
type Result[T any] struct {
	value T
	err   error
}

// Ok returns a successful result.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail returns a failed result. A nil err is replaced with ErrUnknown.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = ErrUnknown
	}
	return Result[T]{err: err}
}

// IsOk returns true if the call succeeded.
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// Value returns the value. It is the zero value for failed results.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure cause, or nil.
func (r Result[T]) Err() error {
	return r.err
}

// ValueOr returns the value on success and def otherwise.
func (r Result[T]) ValueOr(def T) T {
	if r.err != nil {
		return def
	}
	return r.value
}

// Unwrap returns the value and error as a pair.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}
