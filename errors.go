package xr

import (
	"errors"
	"fmt"

	"github.com/gogpu/xr/driver"
)

// Package errors.
var (
	// ErrNoDriver is returned when instance creation finds no usable
	// driver.
	ErrNoDriver = errors.New("xr: no driver available")

	// ErrSwapchainDestroyed is returned when operating on a destroyed
	// swapchain.
	ErrSwapchainDestroyed = errors.New("xr: swapchain destroyed")

	// ErrInstanceDestroyed is returned when deriving state from a
	// destroyed instance.
	ErrInstanceDestroyed = errors.New("xr: instance destroyed")

	// ErrInvalidExtent is returned when a swapchain is created with a
	// zero width or height.
	ErrInvalidExtent = errors.New("xr: invalid swapchain extent")

	// ErrImageCountChanged is returned when the driver reports a
	// different image count between the two enumeration calls.
	ErrImageCountChanged = errors.New("xr: swapchain image count changed during enumeration")
)

// Error is a driver-reported failure. It carries the driver's status
// code verbatim; xr never retries on the caller's behalf.
type Error struct {
	// Op is the operation that failed, e.g. "acquire image".
	Op string

	// Result is the status the driver reported.
	Result driver.Result
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("xr: %s: %s", e.Op, e.Result)
}

// driverError converts a driver result into an error.
// Non-error results, TimeoutExpired included, convert to nil.
func driverError(op string, r driver.Result) error {
	if !r.IsError() {
		return nil
	}
	return &Error{Op: op, Result: r}
}

// ResultOf extracts the driver status from err, if it carries one.
func ResultOf(err error) (driver.Result, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Result, true
	}
	return driver.Success, false
}
