package handler

import (
	"errors"
	"net/http"

	customError "github.com/mfiguera/credimutual/pkg/errors"
	"github.com/mfiguera/credimutual/pkg/response"
)

// writeError maps the business error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var businessErr *customError.BusinessError
	if !errors.As(err, &businessErr) {
		response.InternalServerError(w, "unexpected error", err)
		return
	}

	status := http.StatusInternalServerError
	switch businessErr.Code {
	case customError.ErrCodeMissingTenantContext, customError.ErrCodeMissingCallerContext:
		status = http.StatusUnauthorized
	case customError.ErrCodeEntityNotFound:
		status = http.StatusNotFound
	case customError.ErrCodeInstallmentNotPayable:
		status = http.StatusConflict
	case customError.ErrCodeInvalidAmortization, customError.ErrCodeInvalidConfiguration:
		status = http.StatusUnprocessableEntity
	case customError.ErrCodeOperationFailed:
		status = http.StatusInternalServerError
	}

	response.ErrorWithCode(w, status, businessErr.Code, businessErr.Message, businessErr.Err)
}
