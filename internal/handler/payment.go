package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mfiguera/credimutual/internal/domain"
	"github.com/mfiguera/credimutual/internal/service"
	"github.com/mfiguera/credimutual/pkg/response"
)

type PaymentHandler struct {
	service   *service.PaymentService
	validator *validator.Validate
}

func NewPaymentHandler(service *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service:   service,
		validator: validator.New(),
	}
}

// PayInstallment handles POST /payments
func (h *PaymentHandler) PayInstallment(w http.ResponseWriter, r *http.Request) {
	sc, ok := ScopeFrom(r)
	if !ok {
		response.Unauthorized(w, "missing tenant scope")
		return
	}

	var request domain.PayInstallmentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "invalid payment request", err)
		return
	}

	result, err := h.service.PayInstallment(r.Context(), sc, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, result)
}

// CollectInstallments handles POST /payments/collect
func (h *PaymentHandler) CollectInstallments(w http.ResponseWriter, r *http.Request) {
	sc, ok := ScopeFrom(r)
	if !ok {
		response.Unauthorized(w, "missing tenant scope")
		return
	}

	var request domain.CollectInstallmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "invalid collection request", err)
		return
	}

	result, err := h.service.CollectInstallments(r.Context(), sc, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, result)
}

// Deposit handles POST /wallet/deposits
func (h *PaymentHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	sc, ok := ScopeFrom(r)
	if !ok {
		response.Unauthorized(w, "missing tenant scope")
		return
	}

	var request domain.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "invalid deposit request", err)
		return
	}

	associate, err := h.service.Deposit(r.Context(), sc, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, associate)
}
