package fx

import (
	"errors"
	"fmt"
)

// Errors.
var (
	// ErrNilHandle is returned when an operation requires a handle and
	// receives the zero value.
	ErrNilHandle = errors.New("fx: nil handle")

	// ErrStaleHandle is returned when a handle's slot has been released
	// or reused. Double releases report this error too.
	ErrStaleHandle = errors.New("fx: stale or released handle")

	// ErrEmptyRect is returned for zero-area or inverted rectangles.
	ErrEmptyRect = errors.New("fx: empty rect")

	// ErrNilPixmap is returned when evaluation is given a nil source.
	ErrNilPixmap = errors.New("fx: nil pixmap")
)

// KindError indicates a live handle of the wrong kind, for example a
// bitmap handle passed where an effect is expected.
type KindError struct {
	Handle Handle
	Want   Kind
	Got    Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("fx: handle %#x holds %s, want %s", uint64(e.Handle), e.Got, e.Want)
}

// EnumError indicates an enum value outside the closed range.
type EnumError struct {
	Name  string
	Value int
	Max   int
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("fx: %s value %d out of range [0, %d]", e.Name, e.Value, e.Max)
}

// ParamError indicates a numeric parameter the factory rejected.
type ParamError struct {
	Op     string
	Param  string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("fx: %s: %s %v %s", e.Op, e.Param, e.Value, e.Reason)
}
