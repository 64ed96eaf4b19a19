package llm

import "errors"

var (
	// ErrUnavailable indicates the model server is unreachable.
	ErrUnavailable = errors.New("model server unavailable")

	// ErrTimeout indicates the request exceeded the configured task timeout.
	ErrTimeout = errors.New("model request timed out")

	// ErrInvalidOutput indicates the model response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid model output format")

	// ErrRetryExhausted indicates all retry attempts failed.
	ErrRetryExhausted = errors.New("model retry attempts exhausted")
)
