package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/albastory/workforce-backend-go/internal/domain/employee"
	"github.com/albastory/workforce-backend-go/internal/domain/workplace"
	"github.com/albastory/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WorkplaceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
	SubmitJoinRequest(w http.ResponseWriter, r *http.Request)
	AcceptJoinRequest(w http.ResponseWriter, r *http.Request)
	ListJoinRequests(w http.ResponseWriter, r *http.Request)
	UpsertWorkInfo(w http.ResponseWriter, r *http.Request)
	GetWorkInfo(w http.ResponseWriter, r *http.Request)
}

type WorkplaceHandlerImpl struct {
	workplaceService workplace.WorkplaceService
	employeeService  employee.EmployeeService
}

func NewWorkplaceHandler(workplaceService workplace.WorkplaceService, employeeService employee.EmployeeService) WorkplaceHandler {
	return &WorkplaceHandlerImpl{
		workplaceService: workplaceService,
		employeeService:  employeeService,
	}
}

// Create implements WorkplaceHandler.
func (h *WorkplaceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq workplace.CreateWorkplaceRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create workplace decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := h.workplaceService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create workplace service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Workplace created", res)
}

// GetByID implements WorkplaceHandler.
func (h *WorkplaceHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	res, err := h.workplaceService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, res)
}

// ListEmployees implements WorkplaceHandler.
func (h *WorkplaceHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	res, err := h.workplaceService.ListEmployees(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, res)
}

// SubmitJoinRequest implements WorkplaceHandler.
func (h *WorkplaceHandlerImpl) SubmitJoinRequest(w http.ResponseWriter, r *http.Request) {
	res, err := h.workplaceService.SubmitJoinRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Submit join request service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Join request submitted", res)
}

// AcceptJoinRequest implements WorkplaceHandler.
func (h *WorkplaceHandlerImpl) AcceptJoinRequest(w http.ResponseWriter, r *http.Request) {
	res, err := h.workplaceService.AcceptJoinRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Accept join request service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Join request accepted", res)
}

// ListJoinRequests implements WorkplaceHandler.
func (h *WorkplaceHandlerImpl) ListJoinRequests(w http.ResponseWriter, r *http.Request) {
	res, err := h.workplaceService.ListJoinRequests(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, res)
}

// UpsertWorkInfo implements WorkplaceHandler.
func (h *WorkplaceHandlerImpl) UpsertWorkInfo(w http.ResponseWriter, r *http.Request) {
	var workInfoReq employee.UpsertWorkInfoRequest

	if err := json.NewDecoder(r.Body).Decode(&workInfoReq); err != nil {
		slog.Error("Upsert work info decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := h.employeeService.UpsertWorkInfo(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "userID"), workInfoReq)
	if err != nil {
		slog.Error("Upsert work info service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work info saved", res)
}

// GetWorkInfo implements WorkplaceHandler.
func (h *WorkplaceHandlerImpl) GetWorkInfo(w http.ResponseWriter, r *http.Request) {
	res, err := h.employeeService.GetWorkInfo(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "userID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, res)
}
