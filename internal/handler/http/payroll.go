package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/albastory/workforce-backend-go/internal/domain/payroll"
	"github.com/albastory/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
	ListByWorkplace(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// Calculate implements PayrollHandler.
func (h *PayrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var calcReq payroll.CalculateRequest

	if err := json.NewDecoder(r.Body).Decode(&calcReq); err != nil {
		slog.Error("Calculate payroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := h.payrollService.CalculateMonthly(r.Context(), calcReq)
	if err != nil {
		slog.Error("Calculate payroll service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll calculated", res)
}

// Finalize implements PayrollHandler.
func (h *PayrollHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	res, err := h.payrollService.Finalize(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Finalize payroll service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll finalized", res)
}

// ListByWorkplace implements PayrollHandler.
func (h *PayrollHandlerImpl) ListByWorkplace(w http.ResponseWriter, r *http.Request) {
	year, month, ok := periodParams(r)
	if !ok {
		response.BadRequest(w, "year and month are required", nil)
		return
	}

	res, err := h.payrollService.ListByWorkplace(r.Context(), chi.URLParam(r, "id"), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, res)
}

// ListMine implements PayrollHandler.
func (h *PayrollHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	year, month, ok := periodParams(r)
	if !ok {
		response.BadRequest(w, "year and month are required", nil)
		return
	}

	res, err := h.payrollService.ListMine(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, res)
}

func periodParams(r *http.Request) (year, month int, ok bool) {
	year, _ = strconv.Atoi(r.URL.Query().Get("year"))
	month, _ = strconv.Atoi(r.URL.Query().Get("month"))
	return year, month, year != 0 && month >= 1 && month <= 12
}
