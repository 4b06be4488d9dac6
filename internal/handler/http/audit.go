package http

import (
	"net/http"
	"strconv"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/audit"
	"github.com/workpulse-hr/attendance-backend-go/internal/handler/http/response"
)

type AuditHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type AuditHandlerImpl struct {
	auditService audit.AuditService
}

func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &AuditHandlerImpl{auditService: auditService}
}

// List implements AuditHandler. The repository clamps the limit to a
// sane window when the query parameter is absent.
func (h *AuditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			response.BadRequest(w, "limit must be a positive integer", nil)
			return
		}
		limit = n
	}

	logs, err := h.auditService.List(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, audit.ToAuditLogResponses(logs))
}
