package factory

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel targets for errors.Is checks.
var (
	// ErrUnknownType is matched by UnknownTypeError.
	ErrUnknownType = errors.New("unknown module type")
	// ErrDuplicateType is matched by DuplicateTypeError.
	ErrDuplicateType = errors.New("module type already registered")
)

// UnknownTypeError reports a lookup for a type name with no registered
// factory. Known carries the registered names at the time of the lookup.
type UnknownTypeError struct {
	Type  string
	Known []string
}

func (e *UnknownTypeError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown module type %q (registry is empty)", e.Type)
	}
	return fmt.Sprintf("unknown module type %q, registered types: %s", e.Type, strings.Join(e.Known, ", "))
}

func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// DuplicateTypeError reports a second registration for a type name.
type DuplicateTypeError struct {
	Type string
}

func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("module type %q already registered", e.Type)
}

func (e *DuplicateTypeError) Is(target error) bool {
	return target == ErrDuplicateType
}
