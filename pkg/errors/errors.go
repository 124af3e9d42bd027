package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrMissingTenantContext  = errors.New("missing tenant context")
	ErrMissingCallerContext  = errors.New("missing caller context")
	ErrEntityNotFound        = errors.New("entity not found")
	ErrInvalidAmortization   = errors.New("invalid amortization parameters")
	ErrInstallmentNotPayable = errors.New("installment not payable")
	ErrOperationFailed       = errors.New("operation failed")
	ErrInvalidConfiguration  = errors.New("invalid configuration")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeMissingTenantContext  = "MISSING_TENANT_CONTEXT"
	ErrCodeMissingCallerContext  = "MISSING_CALLER_CONTEXT"
	ErrCodeEntityNotFound        = "ENTITY_NOT_FOUND"
	ErrCodeInvalidAmortization   = "INVALID_AMORTIZATION_PARAMETERS"
	ErrCodeInstallmentNotPayable = "INSTALLMENT_NOT_PAYABLE"
	ErrCodeOperationFailed       = "OPERATION_FAILED"
	ErrCodeInvalidConfiguration  = "INVALID_CONFIGURATION"
)

// Wrap common errors with business context
func WrapMissingTenantContext(mutualID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeMissingTenantContext,
		fmt.Sprintf("mutual id %d is not a valid tenant identifier", mutualID),
		ErrMissingTenantContext,
	)
}

func WrapMissingCallerContext() *BusinessError {
	return NewBusinessError(
		ErrCodeMissingCallerContext,
		"caller identifier is empty",
		ErrMissingCallerContext,
	)
}

func WrapEntityNotFound(kind, id string) *BusinessError {
	return NewBusinessError(
		ErrCodeEntityNotFound,
		fmt.Sprintf("%s %s not found in the current tenant scope", kind, id),
		ErrEntityNotFound,
	)
}

func WrapInvalidAmortization(detail string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidAmortization,
		detail,
		ErrInvalidAmortization,
	)
}

func WrapInstallmentNotPayable(id, state string) *BusinessError {
	return NewBusinessError(
		ErrCodeInstallmentNotPayable,
		fmt.Sprintf("installment %s is %s and cannot receive payments", id, state),
		ErrInstallmentNotPayable,
	)
}

func WrapOperationFailed(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeOperationFailed,
		"store operation failed",
		errors.Join(ErrOperationFailed, err),
	)
}

func WrapInvalidConfiguration(detail string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidConfiguration,
		detail,
		ErrInvalidConfiguration,
	)
}
