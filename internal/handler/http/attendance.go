package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/workpulse-hr/attendance-backend-go/internal/handler/http/response"
)

// defaultLateLimit is the minimum late count before an employee shows
// up in the late summary.
const defaultLateLimit = 5

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	GetMyRecords(w http.ResponseWriter, r *http.Request)

	ListRecords(w http.ResponseWriter, r *http.Request)
	LateSummary(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

func rangeQueryFromRequest(r *http.Request) attendance.RangeQuery {
	return attendance.RangeQuery{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rec, err := h.attendanceService.CheckIn(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", attendance.ToTimeRecordResponse(rec))
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rec, err := h.attendanceService.CheckOut(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", attendance.ToTimeRecordResponse(rec))
}

// GetToday implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	employeeID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rec, err := h.attendanceService.Today(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ToTimeRecordResponse(rec))
}

// GetMyRecords implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetMyRecords(w http.ResponseWriter, r *http.Request) {
	employeeID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.ListMy(r.Context(), employeeID, rangeQueryFromRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ToTimeRecordResponses(records))
}

// ListRecords implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.ListAll(r.Context(),
		r.URL.Query().Get("employee_id"), rangeQueryFromRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ToTimeRecordResponses(records))
}

// LateSummary implements AttendanceHandler.
func (h *AttendanceHandlerImpl) LateSummary(w http.ResponseWriter, r *http.Request) {
	minLateCount := defaultLateLimit
	if v := r.URL.Query().Get("late_limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			response.BadRequest(w, "late_limit must be a positive integer", nil)
			return
		}
		minLateCount = n
	}

	rows, err := h.attendanceService.LateSummary(r.Context(), rangeQueryFromRequest(r), minLateCount)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ToLateSummaryResponses(rows))
}

// ExportCSV implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("attendance-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.attendanceService.ExportCSV(r.Context(), w, rangeQueryFromRequest(r)); err != nil {
		response.HandleError(w, err)
		return
	}
}
