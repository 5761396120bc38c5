package deployarg

import (
	"fmt"

	"github.com/rony4d/go-deploy-args/cltype"
)

// ValidationError reports raw input that does not match the declared type.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// UnsupportedTypeError reports a type that cannot be given a raw value:
// Unit, or a composite where only element types are legal.
type UnsupportedTypeError struct {
	Type cltype.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("don't support %s", e.Type)
}

// ContractViolation reports a declaration that cannot be built, such as a
// Key slot without a KeyShape.
type ContractViolation struct {
	Reason string
}

func (e *ContractViolation) Error() string {
	return "contract violation: " + e.Reason
}
