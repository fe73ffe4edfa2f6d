package driver

import "testing"

// TestResultIsError verifies the sign convention: negative results are
// errors, zero and positive results are not.
func TestResultIsError(t *testing.T) {
	tests := []struct {
		r    Result
		want bool
	}{
		{Success, false},
		{TimeoutExpired, false},
		{ErrorValidationFailure, true},
		{ErrorRuntimeFailure, true},
		{ErrorFeatureUnsupported, true},
		{ErrorLimitReached, true},
		{ErrorHandleInvalid, true},
		{ErrorCallOrderInvalid, true},
	}
	for _, tt := range tests {
		if got := tt.r.IsError(); got != tt.want {
			t.Errorf("%s.IsError() = %v, want %v", tt.r, got, tt.want)
		}
	}
}

// TestResultString verifies names for known and unknown codes.
func TestResultString(t *testing.T) {
	tests := []struct {
		r    Result
		want string
	}{
		{Success, "Success"},
		{TimeoutExpired, "TimeoutExpired"},
		{ErrorCallOrderInvalid, "ErrorCallOrderInvalid"},
		{Result(-999), "Result(-999)"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("Result(%d).String() = %q, want %q", int32(tt.r), got, tt.want)
		}
	}
}
