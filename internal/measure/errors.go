package measure

import (
	"fmt"
	"time"
)

// SurfaceError represents a failure to mount or drive a measurement surface
type SurfaceError struct {
	Surface string
	Message string
	Cause   error
}

func (e *SurfaceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s surface: %s: %v", e.Surface, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s surface: %s", e.Surface, e.Message)
}

func (e *SurfaceError) Unwrap() error {
	return e.Cause
}

// NotConvergedError is returned when layout never settled before the context ended
type NotConvergedError struct {
	Window time.Duration
	Cause  error
}

func (e *NotConvergedError) Error() string {
	return fmt.Sprintf("layout did not settle within a %s window: %v", e.Window, e.Cause)
}

func (e *NotConvergedError) Unwrap() error {
	return e.Cause
}
