package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/breakeven"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/calculation"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/compare"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/payoff"
)

const dateLayout = "2006-01-02"

// Handler serves the calculation endpoints. It keeps no per-request state.
type Handler struct {
	History domain.NormHistory
	Logger  *slog.Logger
	now     func() time.Time
}

// NewHandler creates a handler over a norm history
func NewHandler(history domain.NormHistory, logger *slog.Logger) *Handler {
	if len(history) == 0 {
		history = domain.DefaultNormHistory()
	}
	return &Handler{History: history, Logger: logger, now: time.Now}
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Health returns a simple liveness status
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

type BudgetRequest struct {
	Household map[string]any `json:"household" validate:"required"`
	NormsDate string         `json:"norms_date" validate:"omitempty,datetime=2006-01-02"`
}

type PayoffRequest struct {
	Debts     []map[string]any `json:"debts" validate:"required"`
	Capacity  any              `json:"capacity"`
	NormsDate string           `json:"norms_date" validate:"omitempty,datetime=2006-01-02"`
}

type PlanRequest struct {
	Household        map[string]any   `json:"household" validate:"required"`
	Debts            []map[string]any `json:"debts"`
	CapacityOverride any              `json:"capacity_override"`
	NormsDate        string           `json:"norms_date" validate:"omitempty,datetime=2006-01-02"`
}

type CapacityRequest struct {
	Debts        []map[string]any `json:"debts" validate:"required,min=1"`
	TargetMonths int              `json:"target_months" validate:"required,gt=0"`
	Policy       string           `json:"policy" validate:"omitempty,oneof=snowball avalanche proportional"`
	NormsDate    string           `json:"norms_date" validate:"omitempty,datetime=2006-01-02"`
}

type BudgetResponse struct {
	CalculationID string                       `json:"calculation_id"`
	Result        domain.ProtectedBudgetResult `json:"result"`
}

type PayoffResponse struct {
	CalculationID string               `json:"calculation_id"`
	NormsLabel    string               `json:"norms_label"`
	Simulation    domain.SimulationSet `json:"simulation"`
}

type AllocationResponse struct {
	CalculationID string                    `json:"calculation_id"`
	NormsLabel    string                    `json:"norms_label"`
	Allocation    domain.AllocationProposal `json:"allocation"`
}

type PlanResponse struct {
	CalculationID string                 `json:"calculation_id"`
	Comparison    *compare.ComparisonSet `json:"comparison"`
	Simulation    domain.SimulationSet   `json:"simulation"`
}

type CapacityResponse struct {
	CalculationID string                       `json:"calculation_id"`
	Single        *breakeven.CapacityResult    `json:"single,omitempty"`
	Multi         *breakeven.MultiPolicyResult `json:"multi,omitempty"`
}

type NormsResponse struct {
	Current domain.NormTable   `json:"current"`
	History domain.NormHistory `json:"history"`
}

// Norms returns the table in force on ?date= (default today) and the full history
func (h *Handler) Norms(c echo.Context) error {
	table, err := h.resolve(c.QueryParam("date"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(http.StatusOK, NormsResponse{Current: table, History: h.History.Sorted()})
}

// ProtectedBudget computes the protected budget for a free-form household
func (h *Handler) ProtectedBudget(c echo.Context) error {
	var req BudgetRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	table, err := h.resolve(req.NormsDate)
	if err != nil {
		return badRequest(c, err.Error())
	}

	calc := calculation.NewCalculator(table)
	calc.SetLogger(NewSlogLogger(h.Logger))
	result := calc.Compute(domain.ParseProfile(req.Household))

	return c.JSON(http.StatusOK, BudgetResponse{CalculationID: uuid.NewString(), Result: result})
}

// Payoff simulates the three policies for a debt list and capacity
func (h *Handler) Payoff(c echo.Context) error {
	var req PayoffRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	if req.Capacity == nil {
		return badRequest(c, "capacity is required")
	}
	table, err := h.resolve(req.NormsDate)
	if err != nil {
		return badRequest(c, err.Error())
	}

	sim := h.simulator(table)
	set := sim.Simulate(domain.ParseDebts(req.Debts), domain.SafeAmount(req.Capacity))

	return c.JSON(http.StatusOK, PayoffResponse{CalculationID: uuid.NewString(), NormsLabel: table.Label, Simulation: set})
}

// Allocation proposes a single month's proportional distribution
func (h *Handler) Allocation(c echo.Context) error {
	var req PayoffRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	if req.Capacity == nil {
		return badRequest(c, "capacity is required")
	}
	table, err := h.resolve(req.NormsDate)
	if err != nil {
		return badRequest(c, err.Error())
	}

	proposal := h.simulator(table).Allocate(domain.ParseDebts(req.Debts), domain.SafeAmount(req.Capacity))

	return c.JSON(http.StatusOK, AllocationResponse{CalculationID: uuid.NewString(), NormsLabel: table.Label, Allocation: proposal})
}

// Plan runs budget, capacity, simulation and recommendations in one call
func (h *Handler) Plan(c echo.Context) error {
	var req PlanRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	table, err := h.resolve(req.NormsDate)
	if err != nil {
		return badRequest(c, err.Error())
	}

	engine := compare.NewCompareEngine(table)
	engine.SetLogger(NewSlogLogger(h.Logger))

	opts := compare.CompareOptions{}
	if req.CapacityOverride != nil {
		override := domain.SafeAmount(req.CapacityOverride)
		opts.CapacityOverride = &override
	}

	cs, err := engine.Compare(c.Request().Context(), domain.ParseProfile(req.Household), domain.ParseDebts(req.Debts), opts)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, PlanResponse{CalculationID: uuid.NewString(), Comparison: cs, Simulation: cs.Simulation})
}

// RequiredCapacity finds the monthly capacity needed to be debt-free in
// target_months, for one policy or for all of them
func (h *Handler) RequiredCapacity(c echo.Context) error {
	var req CapacityRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	table, err := h.resolve(req.NormsDate)
	if err != nil {
		return badRequest(c, err.Error())
	}

	solver := breakeven.NewDefaultSolver(h.simulator(table))
	debts := domain.ParseDebts(req.Debts)
	resp := CapacityResponse{CalculationID: uuid.NewString()}

	var solverErr *breakeven.SolverError
	if req.Policy != "" {
		resp.Single, err = solver.RequiredCapacity(c.Request().Context(), breakeven.CapacityRequest{
			Debts:        debts,
			Policy:       domain.PolicyName(req.Policy),
			TargetMonths: req.TargetMonths,
		})
	} else {
		resp.Multi, err = solver.RequiredCapacityAll(c.Request().Context(), debts, req.TargetMonths)
	}
	if errors.As(err, &solverErr) {
		return unprocessable(c, solverErr.Error())
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err))
	}
	return nil
}

func (h *Handler) simulator(table domain.NormTable) *payoff.Simulator {
	sim := payoff.NewSimulator(table.Payoff)
	sim.SetLogger(NewSlogLogger(h.Logger))
	return sim
}

func (h *Handler) resolve(date string) (domain.NormTable, error) {
	at := h.now()
	if date != "" {
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return domain.NormTable{}, errors.New("date must be formatted as 2006-01-02")
		}
		at = parsed
	}
	table, ok := h.History.At(at)
	if !ok {
		return domain.NormTable{}, errors.New("no norm tables configured")
	}
	return table, nil
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": message})
}

func unprocessable(c echo.Context, message string) error {
	return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": message})
}
