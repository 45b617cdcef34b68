/*
handlers.go - HTTP API handlers for the premium pay engine

PURPOSE:
  Exposes the engine via REST API. Handles HTTP request/response and JSON
  serialization, and delegates to the factory (parsing), the evaluator
  (pricing) and the store (history).

ENDPOINTS:
  Calculation:
    POST   /api/calculate                 Price one shift, nothing stored
    POST   /api/calculations              Price and store one shift
    GET    /api/calculations?from=&to=    Stored calculations by shift date
    GET    /api/calculations/summary      Totals for the pay period containing ?date=
    GET    /api/calculations/{id}         One stored calculation
    DELETE /api/calculations/{id}         Remove from history

  Calendar:
    GET    /api/calendar/{date}           Day classification
    GET    /api/windows?workArea=&date=   Premium windows for a day
    GET    /api/holidays?year=            Holiday and eve tables

  Rosters:
    POST   /api/rosters/evaluate          Price a recurring shift

  Scenarios:
    GET    /api/scenarios                 Reference scenarios
    POST   /api/scenarios/{id}/run        Run one (?save=true stores it)

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Calculation not found
  - 409: Duplicate calculation id
  - 500: Internal errors (logged with the request id)

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Reference scenarios
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/warp/shift-premium/factory"
	"github.com/warp/shift-premium/generic"
	"github.com/warp/shift-premium/premium"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     premium.Store
	Evaluator *premium.Evaluator
	Factory   *factory.RequestFactory
	Logger    *slog.Logger

	// Now and NewID are replaceable in tests.
	Now   func() time.Time
	NewID func() string
}

// NewHandler creates a new handler. Omitted request fields are filled
// from prefs.
func NewHandler(store premium.Store, prefs premium.Preferences, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Store:     store,
		Evaluator: premium.NewEvaluator(nil),
		Factory:   factory.NewRequestFactory(prefs),
		Logger:    logger,
		Now:       time.Now,
		NewID:     uuid.NewString,
	}
}

// =============================================================================
// CALCULATION HANDLERS
// =============================================================================

// Calculate prices one shift without storing it.
// POST /api/calculate
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	shift, ok := h.decodeShift(w, r)
	if !ok {
		return
	}

	res, err := h.Evaluator.Evaluate(shift)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toResultDTO(res))
}

// CreateCalculation prices one shift and stores it in the history.
// POST /api/calculations
func (h *Handler) CreateCalculation(w http.ResponseWriter, r *http.Request) {
	shift, ok := h.decodeShift(w, r)
	if !ok {
		return
	}

	c, err := h.evaluateAndSave(r, shift)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.toStoredDTO(c))
}

// ListCalculations returns stored calculations by shift date.
// GET /api/calculations?from=YYYY-MM-DD&to=YYYY-MM-DD
// Both bounds default to the current calendar month.
func (h *Handler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	period := generic.PeriodFor(generic.PeriodCalendarMonth, generic.FromTime(h.Now()))

	if from := r.URL.Query().Get("from"); from != "" {
		d, err := generic.ParseDate(from)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		period.Start = d
	}
	if to := r.URL.Query().Get("to"); to != "" {
		d, err := generic.ParseDate(to)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		period.End = d
	}
	if err := period.Validate(); err != nil {
		h.fail(w, r, err)
		return
	}

	calcs, err := h.Store.ListCalculations(r.Context(), period)
	if err != nil {
		h.fail(w, r, fmt.Errorf("list calculations: %w", err))
		return
	}

	dtos := make([]StoredCalculationDTO, len(calcs))
	for i, c := range calcs {
		dtos[i] = h.toStoredDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCalculation returns one stored calculation.
// GET /api/calculations/{id}
func (h *Handler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	c, err := h.Store.GetCalculation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toStoredDTO(*c))
}

// DeleteCalculation removes a calculation from the history.
// DELETE /api/calculations/{id}
func (h *Handler) DeleteCalculation(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteCalculation(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CalculationSummary totals the stored shifts of one pay period.
// GET /api/calculations/summary?date=YYYY-MM-DD&period=calendar_month|calendar_year|iso_week
func (h *Handler) CalculationSummary(w http.ResponseWriter, r *http.Request) {
	date := generic.FromTime(h.Now())
	if s := r.URL.Query().Get("date"); s != "" {
		d, err := generic.ParseDate(s)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		date = d
	}
	pt, err := generic.ParsePeriodType(r.URL.Query().Get("period"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	period := generic.PeriodFor(pt, date)

	calcs, err := h.Store.ListCalculations(r.Context(), period)
	if err != nil {
		h.fail(w, r, fmt.Errorf("list calculations: %w", err))
		return
	}
	results := make([]premium.Result, len(calcs))
	for i, c := range calcs {
		results[i] = c.Result
	}

	dto := toSummaryDTO(premium.Summarize(results))
	dto.Period = period.String()
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// GetCalendarDay classifies one date.
// GET /api/calendar/{date}
func (h *Handler) GetCalendarDay(w http.ResponseWriter, r *http.Request) {
	date, err := generic.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCalendarDayDTO(h.Evaluator.Classifier.Classify(date)))
}

// ListWindows returns the premium windows of one area on one date.
// GET /api/windows?workArea=Store&date=2025-03-10
func (h *Handler) ListWindows(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	area := h.Factory.Prefs.Area
	if s := q.Get("workArea"); s != "" {
		a, err := premium.ParseWorkArea(s)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		area = a
	}
	date, err := generic.ParseDate(q.Get("date"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	day := h.Evaluator.Classifier.Classify(date)
	windows, err := premium.GenerateWindows(area, day)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, WindowsDTO{
		WorkArea: string(area),
		Day:      toCalendarDayDTO(day),
		Windows:  toWindowDTOs(windows),
	})
}

// ListHolidays returns the holiday and eve tables.
// GET /api/holidays?year=2025
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := premium.ScheduleYear
	if s := r.URL.Query().Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			h.fail(w, r, &generic.InvalidInputError{Field: "year", Value: s, Reason: "must be a number", Err: generic.ErrInvalidDate})
			return
		}
		year = y
	}
	c := h.Evaluator.Classifier
	writeJSON(w, http.StatusOK, toHolidaysDTO(year, c.Holidays(year), c.Eves(year)))
}

// =============================================================================
// ROSTER HANDLERS
// =============================================================================

// EvaluateRoster expands a recurring shift and prices every occurrence.
// POST /api/rosters/evaluate
func (h *Handler) EvaluateRoster(w http.ResponseWriter, r *http.Request) {
	var req RosterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	shifts, err := h.Factory.ExpandRoster(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	results, summary, err := h.Evaluator.EvaluateAll(shifts)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	dto := RosterResultDTO{Shifts: make([]RosterShiftDTO, len(results)), Summary: toSummaryDTO(summary)}
	for i, res := range results {
		dto.Shifts[i] = RosterShiftDTO{Date: shifts[i].Date.String(), Result: toResultDTO(res)}
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) decodeShift(w http.ResponseWriter, r *http.Request) (premium.Shift, bool) {
	var req CalculationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return premium.Shift{}, false
	}
	shift, err := h.Factory.FromJSON(req)
	if err != nil {
		h.fail(w, r, err)
		return premium.Shift{}, false
	}
	return shift, true
}

func (h *Handler) evaluateAndSave(r *http.Request, shift premium.Shift) (premium.Calculation, error) {
	res, err := h.Evaluator.Evaluate(shift)
	if err != nil {
		return premium.Calculation{}, err
	}
	c := premium.Calculation{
		ID:        h.NewID(),
		CreatedAt: h.Now().UTC(),
		Shift:     shift,
		Result:    res,
	}
	if err := h.Store.SaveCalculation(r.Context(), c); err != nil {
		return premium.Calculation{}, fmt.Errorf("save calculation: %w", err)
	}
	return c, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", generic.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON: %v", generic.ErrInvalidInput, err)
	}
	return nil
}

// fail maps err to a status code and writes it.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *factory.ValidationError
	var iie *generic.InvalidInputError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Code: "validation_failed", Details: verr.Fields})
	case errors.As(err, &iie):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid input", Code: "invalid_" + iie.Field, Details: err.Error()})
	case generic.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid input", err)
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Calculation not found", err)
	case generic.IsConflict(err):
		writeError(w, http.StatusConflict, "Calculation already exists", err)
	default:
		h.Logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "Internal error", nil)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
