package sources

import (
	"errors"
	"fmt"
)

var (
	ErrPathNotFound          = errors.New("path not found")
	ErrCapabilityUnavailable = errors.New("capability unavailable")
	ErrMalformedContainer    = errors.New("malformed container")
)

// CapabilityError is returned by an adapter whose decoder was not compiled in.
type CapabilityError struct {
	Kind      Kind
	Component string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s archives are not supported by this build: %s is not available", e.Kind, e.Component)
}

func (e *CapabilityError) Is(target error) bool {
	return target == ErrCapabilityUnavailable
}

// ContainerError reports a recognised archive that could not be enumerated.
type ContainerError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *ContainerError) Error() string {
	return fmt.Sprintf("failed to read %s archive %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ContainerError) Unwrap() error {
	return e.Err
}

func (e *ContainerError) Is(target error) bool {
	return target == ErrMalformedContainer
}

func notFound(path string) error {
	return fmt.Errorf("%w: %s", ErrPathNotFound, path)
}
