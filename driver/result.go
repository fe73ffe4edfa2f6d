package driver

import "fmt"

// Result is a status code reported by a driver entry point.
// Zero is success, positive values are informational non-error
// outcomes, and negative values are errors.
type Result int32

// Non-error results.
const (
	// Success indicates the call completed normally.
	Success Result = 0

	// TimeoutExpired indicates a wait finished without the image
	// becoming ready. It is not an error; the caller decides whether
	// to retry or abandon the frame.
	TimeoutExpired Result = 1
)

// Error results.
const (
	// ErrorValidationFailure indicates a malformed argument struct,
	// such as a wrong type tag or an undersized output array.
	ErrorValidationFailure Result = -1

	// ErrorRuntimeFailure indicates an unrecoverable runtime fault.
	ErrorRuntimeFailure Result = -2

	// ErrorFeatureUnsupported indicates the runtime cannot satisfy
	// the requested configuration.
	ErrorFeatureUnsupported Result = -8

	// ErrorLimitReached indicates every image in the ring is already
	// acquired.
	ErrorLimitReached Result = -10

	// ErrorHandleInvalid indicates the swapchain handle does not
	// refer to a live object.
	ErrorHandleInvalid Result = -12

	// ErrorCallOrderInvalid indicates the acquire/wait/release FIFO
	// discipline was violated.
	ErrorCallOrderInvalid Result = -37
)

// IsError reports whether r is an error result.
func (r Result) IsError() bool { return r < 0 }

// String returns the conventional name of the result.
func (r Result) String() string {
	switch r {
	case Success:
		return "Success"
	case TimeoutExpired:
		return "TimeoutExpired"
	case ErrorValidationFailure:
		return "ErrorValidationFailure"
	case ErrorRuntimeFailure:
		return "ErrorRuntimeFailure"
	case ErrorFeatureUnsupported:
		return "ErrorFeatureUnsupported"
	case ErrorLimitReached:
		return "ErrorLimitReached"
	case ErrorHandleInvalid:
		return "ErrorHandleInvalid"
	case ErrorCallOrderInvalid:
		return "ErrorCallOrderInvalid"
	default:
		return fmt.Sprintf("Result(%d)", int32(r))
	}
}
