/*
scenarios.go - Canned calculations for demos and smoke tests

PURPOSE:

	Provides pre-built calculation requests that exercise each convention
	and the running sequencer. Running a scenario goes through the same
	path as a client request, so it is also recorded in the history.

AVAILABLE SCENARIOS:

	savings-deposit:   Calendar-month deposit, compounded on the 1st
	term-loan:         Equal-months simple interest across a 31st
	mortgage-top-up:   Running mortgage with a mid-month top-up
	month-end-anchor:  Monthly compounding anchored on the 31st
	rate-change:       Running periods with a rate change, day-31 anchor

USAGE VIA API:

	GET  /api/scenarios
	POST /api/scenarios/mortgage-top-up/run

ADDING NEW SCENARIOS:
 1. Add an entry to 'scenarios' with ID, name, description and category
 2. Give it a body built from a factory preset or literal JSON

SEE ALSO:
  - handlers.go: computeSingle, computeRunning
  - factory/presets.go: Preset request builders
*/
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warp/interest-engine/factory"
)

var errScenarioNotFound = errors.New("scenario not found")

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

type scenario struct {
	ScenarioDTO
	body string
}

const (
	categorySingle  = "single"
	categoryRunning = "running"
)

var scenarios = []scenario{
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "savings-deposit",
			Name:        "Savings Deposit",
			Description: "1500.00 at 5% from Jan 15, actual days, compounded on the 1st of each month",
			Category:    categorySingle,
		},
		body: factory.SavingsDepositJSON("2022-01-15", "2022-04-10", "1500.00", "0.05"),
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "term-loan",
			Name:        "Term Loan",
			Description: "Equal months from Feb 28 to Mar 31: the 31st is not counted",
			Category:    categorySingle,
		},
		body: factory.TermLoanJSON("2022-02-28", "2022-03-31", "1150.00", "1.0"),
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "mortgage-top-up",
			Name:        "Mortgage Top-Up",
			Description: "1000.00 topped up to 1500.00 on Jan 15; compounding stays on the 1st",
			Category:    categoryRunning,
		},
		body: factory.MortgageTopUpJSON("2022-01-01", "2022-04-01", "1000.00", "0.05",
			factory.TopUp{At: "2022-01-15", Balance: "1500.00"}),
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "month-end-anchor",
			Name:        "Month-End Anchor",
			Description: "10000.00 at 6% from Jan 31, compounded through February and 30-day months",
			Category:    categorySingle,
		},
		body: `{
  "from": "2022-01-31",
  "to": "2022-07-31",
  "balance": "10000.00",
  "rate": "0.06",
  "convention": "actual_periods",
  "compound": "monthly"
}`,
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "rate-change",
			Name:        "Rate Change",
			Description: "Three periods from Jan 31 with a top-up and a rate rise; the anchor stays on the 31st",
			Category:    categoryRunning,
		},
		body: `{
  "convention": "actual_periods",
  "compound": "monthly",
  "periods": [
    {"from": "2022-01-31", "to": "2022-02-10", "balance": "2000.00", "rate": "0.04"},
    {"from": "2022-02-10", "to": "2022-05-20", "balance": "2500.00", "rate": "0.04"},
    {"from": "2022-05-20", "to": "2022-08-31", "balance": "2500.00", "rate": "0.05"}
  ]
}`,
	},
}

// ListScenarios returns available scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		dtos[i] = s.ScenarioDTO
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RunScenario computes a scenario and records it.
// POST /api/scenarios/{id}/run
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s, ok := findScenario(id)
	if !ok {
		h.writeDomainError(w, r, "Scenario not found", fmt.Errorf("%w: %s", errScenarioNotFound, id))
		return
	}

	var (
		dto CalculationDTO
		err error
	)
	switch s.Category {
	case categoryRunning:
		dto, err = h.computeRunning(r, []byte(s.body))
	default:
		dto, err = h.computeSingle(r, []byte(s.body))
	}
	if err != nil {
		h.writeDomainError(w, r, fmt.Sprintf("Scenario %s failed", id), err)
		return
	}

	writeJSON(w, http.StatusCreated, dto)
}

func findScenario(id string) (scenario, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return scenario{}, false
}
