/*
handlers.go - HTTP API handlers for the payroll metrics engine

PURPOSE:
  Exposes the engine via REST. Handlers own HTTP request/response, JSON
  serialization, and input validation; all computation is delegated to
  the engine and payroll packages.

ENDPOINTS:
  Employees:
    GET    /api/employees                    List employees
    POST   /api/employees                    Create/replace employee + schedule
    GET    /api/employees/{id}               Get employee with schedule

  Attendance / leave:
    POST   /api/employees/{id}/attendance    Bulk upsert raw punches
    GET    /api/employees/{id}/leaves        List leave windows
    POST   /api/employees/{id}/leaves        Add leave window

  Observances:
    GET    /api/observances                  List observances
    POST   /api/observances                  Add observance

  Computation:
    GET    /api/employees/{id}/metrics       Monthly metrics (?month=YYYY-MM)
    GET    /api/employees/{id}/payslip       Assembled payslip (?month=YYYY-MM)

  Demo:
    POST   /api/demo/seed                    Load canned demo data

ERROR HANDLING:
  Errors are JSON {error, code} with the appropriate status:
  - 400: validation errors, invalid period strings
  - 404: unknown employee
  - 500: store failures
  Dirty attendance data is NEVER a 400: bad clock strings are stored
  as-is and classify as "no punch" downstream.

VALIDATION:
  Request DTOs carry go-playground/validator tags; one shared Validate
  instance checks structure before anything hits the store. Schedule
  configuration is validated strictly (it is configuration, not import
  noise), attendance punches are not.

SEE ALSO:
  - dto.go: request/response shapes
  - server.go: router and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Service  *engine.Service
	validate *validator.Validate
}

// NewHandler creates a new handler over the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:    store,
		Service:  engine.NewService(store),
		validate: validator.New(),
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee with its resolved schedule entries.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.Store.EmployeeProfile(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*p))
}

// SaveEmployee creates or replaces an employee profile and its schedule.
func (h *Handler) SaveEmployee(w http.ResponseWriter, r *http.Request) {
	var req SaveEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	profile, err := profileFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.Store.SaveEmployee(r.Context(), *profile); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(*profile))
}

func profileFromRequest(req SaveEmployeeRequest) (*engine.EmployeeProfile, error) {
	p := &engine.EmployeeProfile{
		ID:          req.ID,
		Name:        req.Name,
		BaseSalary:  decimalFromFloat(req.BaseSalary),
		HoursPerDay: decimalFromFloat(req.HoursPerDay),
	}
	for _, r := range req.Roles {
		p.Roles = append(p.Roles, engine.Role(r))
	}
	if req.HourlyRate != nil {
		rate := decimalFromFloat(*req.HourlyRate)
		p.HourlyRate = &rate
	}

	// Schedule entries are configuration: reject bad weekdays/clocks here,
	// unlike attendance punches which tolerate anything.
	for _, e := range req.Schedule {
		wd, ok := engine.ParseWeekday(e.Weekday)
		if !ok {
			return nil, errors.New("invalid schedule weekday: " + e.Weekday)
		}
		start, ok := engine.ParseClock(e.Start)
		if !ok {
			return nil, errors.New("invalid schedule start time: " + e.Start)
		}
		end, ok := engine.ParseClock(e.End)
		if !ok {
			return nil, errors.New("invalid schedule end time: " + e.End)
		}
		p.Schedule = append(p.Schedule, engine.ScheduleEntry{
			Weekday: wd, Start: start, End: end, Origin: engine.Role(e.Origin),
		})
	}
	for _, e := range req.Supplemental {
		wd, ok := engine.ParseWeekday(e.Weekday)
		if !ok {
			return nil, errors.New("invalid supplemental weekday: " + e.Weekday)
		}
		p.Supplemental = append(p.Supplemental, engine.SupplementalHourEntry{
			Weekday: wd, Hours: decimalFromFloat(e.Hours), Origin: engine.Role(e.Origin),
		})
	}
	return p, nil
}

// =============================================================================
// ATTENDANCE / OBSERVANCE / LEAVE HANDLERS
// =============================================================================

// ImportAttendance bulk-upserts raw punches for an employee.
func (h *Handler) ImportAttendance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ImportAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	for _, rec := range req.Records {
		date, err := engine.ParseDate(rec.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date: "+rec.Date, err)
			return
		}
		err = h.Store.UpsertAttendance(r.Context(), id, engine.AttendanceRecord{
			Date:     date,
			ClockIn:  rec.ClockIn,
			ClockOut: rec.ClockOut,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save attendance", err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, map[string]int{"imported": len(req.Records)})
}

// CreateObservance adds a holiday/suspension entry.
func (h *Handler) CreateObservance(w http.ResponseWriter, r *http.Request) {
	var req ObservanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	date, _ := engine.ParseDate(req.Date) // validated above
	entry := engine.ObservanceEntry{
		Date:   date,
		Kind:   engine.ObservanceKind(req.Kind),
		Cutoff: req.Cutoff,
	}
	if err := h.Store.SaveObservance(r.Context(), entry, req.Name); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save observance", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// ListObservances returns all observance entries.
func (h *Handler) ListObservances(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Store.Observances(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list observances", err)
		return
	}

	type observanceDTO struct {
		Date   string `json:"date"`
		Kind   string `json:"kind,omitempty"`
		Cutoff string `json:"cutoff,omitempty"`
	}
	dtos := make([]observanceDTO, len(entries))
	for i, o := range entries {
		dtos[i] = observanceDTO{Date: o.Date.String(), Kind: string(o.Kind), Cutoff: o.Cutoff}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateLeave adds a leave window for an employee.
func (h *Handler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req LeaveWindowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	start, _ := engine.ParseDate(req.Start)
	window := engine.LeaveWindow{Start: start, Status: req.Status}
	if req.End != "" {
		end, _ := engine.ParseDate(req.End)
		window.End = end
	}
	if err := h.Store.SaveLeaveWindow(r.Context(), id, window); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save leave window", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// ListLeaves returns an employee's leave windows.
func (h *Handler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	windows, err := h.Store.LeaveWindows(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leave windows", err)
		return
	}

	dtos := make([]LeaveWindowRequest, len(windows))
	for i, lw := range windows {
		dtos[i] = LeaveWindowRequest{Start: lw.Start.String(), Status: lw.Status}
		if !lw.End.IsZero() {
			dtos[i].End = lw.End.String()
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// COMPUTATION HANDLERS
// =============================================================================

// GetMetrics computes the monthly metrics for an employee.
// Query params: month=YYYY-MM (required), observance_mode=full|cutoff.
func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	period, err := engine.ParsePeriod(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return
	}

	svc := *h.Service
	if r.URL.Query().Get("observance_mode") == "cutoff" {
		svc.Opts.ObservanceMode = engine.ObserveCapAtCutoff
	}

	metrics, err := svc.MonthlyMetrics(r.Context(), id, period)
	if err != nil {
		if engine.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to compute metrics", err)
		return
	}

	// Attach derived rates for presentation. A store failure here is a
	// real failure, not a missing-rates response.
	profile, err := h.Store.EmployeeProfile(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load profile", err)
		return
	}
	if profile != nil {
		rates := payroll.DeriveRates(profile, engine.ResolveSchedule(profile), nil)
		metrics.RatePerDay = rates.PerDay
		metrics.RatePerHour = rates.PerHour
	}

	writeJSON(w, http.StatusOK, toMetricsDTO(metrics))
}

// GetPayslip assembles the monthly payslip for an employee.
// Query params: month=YYYY-MM (required), philhealth=semimonthly|quarterly.
func (h *Handler) GetPayslip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	period, err := engine.ParsePeriod(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return
	}

	metrics, err := h.Service.MonthlyMetrics(r.Context(), id, period)
	if err != nil {
		if engine.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to compute metrics", err)
		return
	}

	profile, err := h.Store.EmployeeProfile(r.Context(), id)
	if err != nil || profile == nil {
		writeError(w, http.StatusInternalServerError, "Failed to load profile", err)
		return
	}

	cfg := payroll.StatutoryConfig{}
	if r.URL.Query().Get("philhealth") == "quarterly" {
		cfg.PhilHealthVariant = payroll.PhilHealthQuarterly
	}

	writeJSON(w, http.StatusOK, toPayslipDTO(payroll.BuildPayslip(profile, metrics, cfg)))
}

// =============================================================================
// DEMO SEEDING
// =============================================================================

// SeedDemo loads the canned demo employees, schedules, and punches.
func (h *Handler) SeedDemo(w http.ResponseWriter, r *http.Request) {
	if err := factory.Seed(r.Context(), h.Store); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to seed demo data", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "seeded"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Code = err.Error()
	}
	writeJSON(w, status, resp)
}
