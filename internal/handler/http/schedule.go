package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/albastory/workforce-backend-go/internal/domain/availability"
	"github.com/albastory/workforce-backend-go/internal/domain/schedule"
	"github.com/albastory/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ScheduleHandler interface {
	SavePreference(w http.ResponseWriter, r *http.Request)
	GetMyPreference(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	ListByWorkplace(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
}

type ScheduleHandlerImpl struct {
	scheduleService     schedule.ScheduleService
	availabilityService availability.AvailabilityService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService, availabilityService availability.AvailabilityService) ScheduleHandler {
	return &ScheduleHandlerImpl{
		scheduleService:     scheduleService,
		availabilityService: availabilityService,
	}
}

// SavePreference implements ScheduleHandler.
func (h *ScheduleHandlerImpl) SavePreference(w http.ResponseWriter, r *http.Request) {
	var prefReq availability.SavePreferenceRequest

	if err := json.NewDecoder(r.Body).Decode(&prefReq); err != nil {
		slog.Error("SavePreference decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := h.availabilityService.SavePreference(r.Context(), prefReq)
	if err != nil {
		slog.Error("SavePreference service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Availability saved", res)
}

// GetMyPreference implements ScheduleHandler.
func (h *ScheduleHandlerImpl) GetMyPreference(w http.ResponseWriter, r *http.Request) {
	workplaceID := r.URL.Query().Get("workplace_id")
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	if workplaceID == "" || year == 0 || month == 0 {
		response.BadRequest(w, "workplace_id, year and month are required", nil)
		return
	}

	res, err := h.availabilityService.GetMyPreference(r.Context(), workplaceID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, res)
}

// Generate implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var generateReq schedule.GenerateRequest

	if err := json.NewDecoder(r.Body).Decode(&generateReq); err != nil {
		slog.Error("Generate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := h.scheduleService.Generate(r.Context(), generateReq)
	if err != nil {
		slog.Error("Generate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Schedule generated", res)
}

// Update implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq schedule.UpdateScheduleRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update schedule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := h.scheduleService.Update(r.Context(), chi.URLParam(r, "id"), updateReq)
	if err != nil {
		slog.Error("Update schedule service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule updated", res)
}

// Cancel implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduleService.Cancel(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("Cancel schedule service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Schedule cancelled", nil)
}

// ListByWorkplace implements ScheduleHandler.
func (h *ScheduleHandlerImpl) ListByWorkplace(w http.ResponseWriter, r *http.Request) {
	res, err := h.scheduleService.ListByWorkplace(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, res)
}

// ListMine implements ScheduleHandler.
func (h *ScheduleHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	res, err := h.scheduleService.ListMine(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, res)
}
