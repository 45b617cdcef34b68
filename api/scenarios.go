/*
scenarios.go - Reference scenarios for checking and demonstrating the engine

PURPOSE:

	Provides worked examples with known results. Running one prices the
	request and reports whether gross and net match the expected figures,
	which makes the endpoint a smoke test for a deployed server.

AVAILABLE SCENARIOS:

	store-weekday-day:      Store Monday day shift, no premium
	store-sunday:           Store Sunday, full 100% window
	warehouse-monday-early: Warehouse Monday 05-08, night + morning windows
	holiday-on-saturday:    Warehouse on All Saints' Day (a Saturday)
	store-friday-night:     Store shift crossing midnight into Saturday
	christmas-eve-store:    Store on Christmas Eve, Saturday rules

USAGE VIA API:

	GET  /api/scenarios
	POST /api/scenarios/store-sunday/run
	POST /api/scenarios/store-sunday/run?save=true   also stores the result

ADDING NEW SCENARIOS:
 1. Add to the 'scenarios' slice with the full request and expected pay
 2. Add a matching case to scenarios_test.go

SEE ALSO:
  - handlers.go: Calculation handlers
  - premium/evaluator_test.go: The same figures at engine level
*/
package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/warp/shift-premium/factory"
	"github.com/warp/shift-premium/premium"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

type scenario struct {
	ID          string
	Name        string
	Description string
	Request     CalculationRequest
	Gross       string
	Net         string
}

func request(area, date, start, end string, breakMinutes int, wage, tax float64) CalculationRequest {
	return CalculationRequest{
		ShiftTemplateJSON: factory.ShiftTemplateJSON{
			WorkArea:     area,
			StartTime:    start,
			EndTime:      end,
			BreakMinutes: &breakMinutes,
			BaseWage:     &wage,
			TaxRate:      &tax,
		},
		Date: date,
	}
}

var scenarios = []scenario{
	{
		ID:          "store-weekday-day",
		Name:        "Store Weekday Day Shift",
		Description: "Monday 08:00-17:00 with a 30 minute break ends before the 18:15 evening window",
		Request:     request("Store", "2025-03-10", "08:00", "17:00", 30, 160, 30),
		Gross:       "1360",
		Net:         "952",
	},
	{
		ID:          "store-sunday",
		Name:        "Store Sunday",
		Description: "Sunday 10:00-18:00 falls entirely inside the 100% Sunday window",
		Request:     request("Store", "2025-03-09", "10:00", "18:00", 0, 200, 0),
		Gross:       "3200",
		Net:         "3200",
	},
	{
		ID:          "warehouse-monday-early",
		Name:        "Warehouse Monday Early",
		Description: "Monday 05:00-08:00: one hour night premium, one hour morning premium, one plain hour",
		Request:     request("Warehouse", "2025-03-10", "05:00", "08:00", 0, 150, 30),
		Gross:       "615",
		Net:         "430.5",
	},
	{
		ID:          "holiday-on-saturday",
		Name:        "Holiday on a Saturday",
		Description: "All Saints' Day 2025 is a Saturday; the holiday window replaces the Saturday schedule",
		Request:     request("Warehouse", "2025-11-01", "10:00", "14:00", 0, 160, 30),
		Gross:       "1280",
		Net:         "896",
	},
	{
		ID:          "store-friday-night",
		Name:        "Store Friday Night",
		Description: "Friday 22:00-02:00 stays in the night window past midnight",
		Request:     request("Store", "2025-03-14", "22:00", "02:00", 0, 100, 30),
		Gross:       "680",
		Net:         "476",
	},
	{
		ID:          "christmas-eve-store",
		Name:        "Christmas Eve in Store",
		Description: "Christmas Eve uses the Store Saturday schedule: 100% from 12:00",
		Request:     request("Store", "2025-12-24", "10:00", "15:00", 30, 160, 30),
		Gross:       "1200",
		Net:         "840",
	},
}

func findScenario(id string) (scenario, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return scenario{}, false
}

func (s scenario) toDTO() ScenarioDTO {
	return ScenarioDTO{
		ID:                  s.ID,
		Name:                s.Name,
		Description:         s.Description,
		Request:             s.Request,
		ExpectedGrossSalary: decimal.RequireFromString(s.Gross).InexactFloat64(),
		ExpectedNetSalary:   decimal.RequireFromString(s.Net).InexactFloat64(),
	}
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns available scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		dtos[i] = s.toDTO()
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RunScenario prices one scenario and compares it with the expected pay.
// POST /api/scenarios/{id}/run[?save=true]
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	s, ok := findScenario(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown scenario", nil)
		return
	}

	shift, err := h.Factory.FromJSON(s.Request)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out := ScenarioRunDTO{Scenario: s.toDTO()}
	var res premium.Result
	if save, _ := strconv.ParseBool(r.URL.Query().Get("save")); save {
		c, err := h.evaluateAndSave(r, shift)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		out.SavedID = c.ID
		res = c.Result
	} else if res, err = h.Evaluator.Evaluate(shift); err != nil {
		h.fail(w, r, err)
		return
	}

	out.Result = toResultDTO(res)
	out.Matches = res.GrossSalary.Equal(decimal.RequireFromString(s.Gross)) &&
		res.NetSalary.Equal(decimal.RequireFromString(s.Net))
	writeJSON(w, http.StatusOK, out)
}
