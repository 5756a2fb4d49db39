package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// OperationType tells how a producer's output composes with the existing output of an artifact type.
// The zero value is not a valid operation.
type OperationType int

const (
	// OperationInitial registers the first producer of an artifact type.
	OperationInitial OperationType = iota + 1
	// OperationAppend adds files after the existing content.
	OperationAppend
	// OperationTransform replaces the existing content.
	OperationTransform
)

// String returns the lowercase operation name.
func (o OperationType) String() string {
	switch o {
	case OperationInitial:
		return "initial"
	case OperationAppend:
		return "append"
	case OperationTransform:
		return "transform"
	default:
		return "unsupported"
	}
}

// Validate returns ErrUnsupportedOperation for values outside the declared operations.
func (o OperationType) Validate() error {
	switch o {
	case OperationInitial, OperationAppend, OperationTransform:
		return nil
	default:
		return zerr.With(zerr.Wrap(ErrUnsupportedOperation, "invalid operation"), "operation", int(o))
	}
}

// ParseOperationType converts an operation name to an OperationType.
func ParseOperationType(s string) (OperationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "initial":
		return OperationInitial, nil
	case "append":
		return OperationAppend, nil
	case "transform", "replace":
		return OperationTransform, nil
	default:
		return 0, zerr.With(zerr.Wrap(ErrUnsupportedOperation, "cannot parse operation"), "operation", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o OperationType) MarshalText() ([]byte, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *OperationType) UnmarshalText(text []byte) error {
	op, err := ParseOperationType(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}
