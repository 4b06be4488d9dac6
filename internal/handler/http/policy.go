package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/policy"
	"github.com/workpulse-hr/attendance-backend-go/internal/handler/http/response"
)

type PolicyHandler interface {
	GetPolicy(w http.ResponseWriter, r *http.Request)
	UpdatePolicy(w http.ResponseWriter, r *http.Request)

	CreateHoliday(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)
}

type PolicyHandlerImpl struct {
	policyService policy.PolicyService
}

func NewPolicyHandler(policyService policy.PolicyService) PolicyHandler {
	return &PolicyHandlerImpl{policyService: policyService}
}

// GetPolicy implements PolicyHandler.
func (h *PolicyHandlerImpl) GetPolicy(w http.ResponseWriter, r *http.Request) {
	p, err := h.policyService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, policy.ToPolicyResponse(p))
}

// UpdatePolicy implements PolicyHandler.
func (h *PolicyHandlerImpl) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	actorID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req policy.UpdatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	p, err := h.policyService.Update(r.Context(), actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance policy updated", policy.ToPolicyResponse(p))
}

// CreateHoliday implements PolicyHandler.
func (h *PolicyHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	actorID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req policy.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	holiday, err := h.policyService.CreateHoliday(r.Context(), actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created", policy.ToHolidayResponse(holiday))
}

// ListHolidays implements PolicyHandler.
func (h *PolicyHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.policyService.ListHolidays(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, policy.ToHolidayResponses(holidays))
}

// DeleteHoliday implements PolicyHandler.
func (h *PolicyHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	actorID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.policyService.DeleteHoliday(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted", nil)
}
