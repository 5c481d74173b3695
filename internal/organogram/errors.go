package organogram

import (
	"errors"
	"fmt"

	"github.com/Pass-The-Butter/willow/internal/types"
)

// ErrCodeInvalidInput marks journal input rejected before any store access.
const ErrCodeInvalidInput types.ErrorCode = "ORGANOGRAM_INVALID_INPUT"

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrInvalidPath      = errors.New("invalid task path")
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Segment names one level of a task path.
type Segment string

const (
	SegmentDomain    Segment = "domain"
	SegmentComponent Segment = "component"
	SegmentTask      Segment = "task"
)

// InvalidPathError reports a path that does not split into three non-empty segments.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid task path %q: %s (expected 'Domain %s Component %s Task')",
		e.Path, e.Reason, Separator, Separator)
}

func (e *InvalidPathError) Is(target error) bool {
	return target == ErrInvalidPath
}

// NotFoundError reports the first path segment that could not be resolved.
type NotFoundError struct {
	Segment Segment
	Name    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Segment, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StoreUnavailableError wraps any failure reported by the graph client.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("graph store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

func (e *StoreUnavailableError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

func storeError(op string, err error) error {
	return &StoreUnavailableError{Op: op, Err: err}
}
