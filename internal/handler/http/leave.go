package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/leave"
	"github.com/workpulse-hr/attendance-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	CalculateDays(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)

	ListRequests(w http.ResponseWriter, r *http.Request)
	ListPendingRequests(w http.ResponseWriter, r *http.Request)
	DecideRequest(w http.ResponseWriter, r *http.Request)

	CreateType(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)

	SetQuota(w http.ResponseWriter, r *http.Request)
	AdjustQuota(w http.ResponseWriter, r *http.Request)
	DeleteQuota(w http.ResponseWriter, r *http.Request)
	ListQuotas(w http.ResponseWriter, r *http.Request)
	GetMyQuotas(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	requestService leave.RequestService
	quotaService   leave.QuotaService
	typeService    leave.LeaveTypeService
}

func NewLeaveHandler(
	requestService leave.RequestService,
	quotaService leave.QuotaService,
	typeService leave.LeaveTypeService,
) LeaveHandler {
	return &LeaveHandlerImpl{
		requestService: requestService,
		quotaService:   quotaService,
		typeService:    typeService,
	}
}

func yearFromRequest(r *http.Request) (int, bool) {
	v := r.URL.Query().Get("year")
	if v == "" {
		return time.Now().Year(), true
	}
	year, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return year, true
}

// CalculateDays implements LeaveHandler.
func (h *LeaveHandlerImpl) CalculateDays(w http.ResponseWriter, r *http.Request) {
	var req leave.CalculateDaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	total, err := h.requestService.CalculateDays(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.CalculateDaysResponse{TotalDays: total})
}

// CreateRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.requestService.Submit(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", leave.ToLeaveRequestResponse(created))
}

// GetMyRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.requestService.List(r.Context(), leave.LeaveRequestFilter{
		EmployeeID: employeeID,
		Status:     leave.LeaveRequestStatus(r.URL.Query().Get("status")),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToLeaveRequestResponses(requests))
}

// GetRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, role, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	request, err := h.requestService.Get(r.Context(), chi.URLParam(r, "id"), employeeID, role)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToLeaveRequestResponse(request))
}

// CancelRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, role, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	cancelled, err := h.requestService.Cancel(r.Context(), chi.URLParam(r, "id"), employeeID, role)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", leave.ToLeaveRequestResponse(cancelled))
}

// ListRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	year := 0
	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "year must be an integer", nil)
			return
		}
		year = n
	}

	requests, err := h.requestService.List(r.Context(), leave.LeaveRequestFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Status:     leave.LeaveRequestStatus(r.URL.Query().Get("status")),
		Year:       year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToLeaveRequestResponses(requests))
}

// ListPendingRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.List(r.Context(), leave.LeaveRequestFilter{
		Status: leave.StatusPending,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToLeaveRequestResponses(requests))
}

// DecideRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) DecideRequest(w http.ResponseWriter, r *http.Request) {
	hrID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.ApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	decided, err := h.requestService.Decide(r.Context(), chi.URLParam(r, "id"), hrID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request "+string(decided.Status), leave.ToLeaveRequestResponse(decided))
}

// CreateType implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	lt, err := h.typeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created", leave.ToLeaveTypeResponse(lt))
}

// UpdateType implements LeaveHandler.
func (h *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	lt, err := h.typeService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToLeaveTypeResponse(lt))
}

// ListTypes implements LeaveHandler.
func (h *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.typeService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		out = append(out, leave.ToLeaveTypeResponse(lt))
	}
	response.Success(w, out)
}

// DeleteType implements LeaveHandler.
func (h *LeaveHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	if err := h.typeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave type deleted", nil)
}

// SetQuota implements LeaveHandler.
func (h *LeaveHandlerImpl) SetQuota(w http.ResponseWriter, r *http.Request) {
	actorID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreateQuotaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.Year == 0 {
		req.Year = time.Now().Year()
	}

	quota, err := h.quotaService.Create(r.Context(), actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave quota assigned", leave.ToQuotaResponse(quota))
}

// AdjustQuota implements LeaveHandler.
func (h *LeaveHandlerImpl) AdjustQuota(w http.ResponseWriter, r *http.Request) {
	actorID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.UpdateQuotaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	quota, err := h.quotaService.UpdateTotal(r.Context(), actorID, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToQuotaResponse(quota))
}

// DeleteQuota implements LeaveHandler.
func (h *LeaveHandlerImpl) DeleteQuota(w http.ResponseWriter, r *http.Request) {
	if err := h.quotaService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave quota deleted", nil)
}

// ListQuotas implements LeaveHandler.
func (h *LeaveHandlerImpl) ListQuotas(w http.ResponseWriter, r *http.Request) {
	year, ok := yearFromRequest(r)
	if !ok {
		response.BadRequest(w, "year must be an integer", nil)
		return
	}

	quotas, err := h.quotaService.List(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]leave.QuotaResponse, 0, len(quotas))
	for _, q := range quotas {
		out = append(out, leave.ToQuotaResponse(q))
	}
	response.Success(w, out)
}

// GetMyQuotas implements LeaveHandler.
func (h *LeaveHandlerImpl) GetMyQuotas(w http.ResponseWriter, r *http.Request) {
	employeeID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, ok := yearFromRequest(r)
	if !ok {
		response.BadRequest(w, "year must be an integer", nil)
		return
	}

	quotas, err := h.quotaService.ListByEmployee(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]leave.QuotaResponse, 0, len(quotas))
	for _, q := range quotas {
		out = append(out, leave.ToQuotaResponse(q))
	}
	response.Success(w, out)
}
