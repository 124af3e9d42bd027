package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mfiguera/credimutual/internal/service"
	"github.com/mfiguera/credimutual/pkg/response"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// CancellationReport handles GET /reports/cancellations/{period}
// where period is YYYY-MM. Export rendering belongs to the consumer; this
// endpoint only returns the partitioned rows and totals.
func (h *ReportHandler) CancellationReport(w http.ResponseWriter, r *http.Request) {
	sc, ok := ScopeFrom(r)
	if !ok {
		response.Unauthorized(w, "missing tenant scope")
		return
	}

	report, err := h.service.CancellationReport(r.Context(), sc, mux.Vars(r)["period"])
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, report)
}
