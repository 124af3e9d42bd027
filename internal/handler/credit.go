package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mfiguera/credimutual/internal/domain"
	"github.com/mfiguera/credimutual/internal/service"
	"github.com/mfiguera/credimutual/pkg/response"
)

type CreditHandler struct {
	service   *service.CreditService
	validator *validator.Validate
}

func NewCreditHandler(service *service.CreditService) *CreditHandler {
	return &CreditHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateCredit handles POST /credits
func (h *CreditHandler) CreateCredit(w http.ResponseWriter, r *http.Request) {
	sc, ok := ScopeFrom(r)
	if !ok {
		response.Unauthorized(w, "missing tenant scope")
		return
	}

	var request domain.CreateCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "invalid credit request", err)
		return
	}

	result, err := h.service.CreateCredit(r.Context(), sc, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, result)
}

// GetCredit handles GET /credits/{creditId}
func (h *CreditHandler) GetCredit(w http.ResponseWriter, r *http.Request) {
	sc, ok := ScopeFrom(r)
	if !ok {
		response.Unauthorized(w, "missing tenant scope")
		return
	}

	creditID, err := uuid.Parse(mux.Vars(r)["creditId"])
	if err != nil {
		response.BadRequest(w, "invalid credit id", err)
		return
	}

	result, err := h.service.GetCredit(r.Context(), sc, creditID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, result)
}

// ListByAssociate handles GET /associates/{associateId}/credits
func (h *CreditHandler) ListByAssociate(w http.ResponseWriter, r *http.Request) {
	sc, ok := ScopeFrom(r)
	if !ok {
		response.Unauthorized(w, "missing tenant scope")
		return
	}

	associateID, err := uuid.Parse(mux.Vars(r)["associateId"])
	if err != nil {
		response.BadRequest(w, "invalid associate id", err)
		return
	}

	credits, err := h.service.ListCreditsByAssociate(r.Context(), sc, associateID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, credits)
}

// AnnulCredit handles POST /credits/{creditId}/annul
func (h *CreditHandler) AnnulCredit(w http.ResponseWriter, r *http.Request) {
	sc, ok := ScopeFrom(r)
	if !ok {
		response.Unauthorized(w, "missing tenant scope")
		return
	}

	creditID, err := uuid.Parse(mux.Vars(r)["creditId"])
	if err != nil {
		response.BadRequest(w, "invalid credit id", err)
		return
	}

	result, err := h.service.AnnulCredit(r.Context(), sc, creditID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, result)
}
