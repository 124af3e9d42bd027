package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mfiguera/credimutual/internal/domain"
	"github.com/mfiguera/credimutual/internal/service"
	"github.com/mfiguera/credimutual/pkg/response"
)

type RegistryHandler struct {
	service   *service.RegistryService
	validator *validator.Validate
}

func NewRegistryHandler(service *service.RegistryService) *RegistryHandler {
	return &RegistryHandler{
		service:   service,
		validator: validator.New(),
	}
}

type createMutualRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

// CreateMutual handles POST /admin/mutuals. Administrative: mounted outside
// the identity middleware.
func (h *RegistryHandler) CreateMutual(w http.ResponseWriter, r *http.Request) {
	var request createMutualRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "invalid mutual request", err)
		return
	}

	mutual, err := h.service.CreateMutual(r.Context(), request.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, mutual)
}

// CreateAssociate handles POST /associates
func (h *RegistryHandler) CreateAssociate(w http.ResponseWriter, r *http.Request) {
	sc, ok := ScopeFrom(r)
	if !ok {
		response.Unauthorized(w, "missing tenant scope")
		return
	}

	var request domain.CreateAssociateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "invalid associate request", err)
		return
	}

	associate, err := h.service.CreateAssociate(r.Context(), sc, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, associate)
}

// ListAssociates handles GET /associates
func (h *RegistryHandler) ListAssociates(w http.ResponseWriter, r *http.Request) {
	sc, ok := ScopeFrom(r)
	if !ok {
		response.Unauthorized(w, "missing tenant scope")
		return
	}

	associates, err := h.service.ListAssociates(r.Context(), sc)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, associates)
}

// CreateProduct handles POST /products
func (h *RegistryHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	sc, ok := ScopeFrom(r)
	if !ok {
		response.Unauthorized(w, "missing tenant scope")
		return
	}

	var request domain.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "invalid product request", err)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), sc, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, product)
}

// ListProducts handles GET /products
func (h *RegistryHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	sc, ok := ScopeFrom(r)
	if !ok {
		response.Unauthorized(w, "missing tenant scope")
		return
	}

	products, err := h.service.ListProducts(r.Context(), sc)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, products)
}
