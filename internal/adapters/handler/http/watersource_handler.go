package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aquaguard/api/internal/core/domain"
	"github.com/aquaguard/api/internal/core/ports"
)

type WaterSourceHandler struct {
	service ports.WaterSourceService
}

func NewWaterSourceHandler(service ports.WaterSourceService) *WaterSourceHandler {
	return &WaterSourceHandler{
		service: service,
	}
}

type createWaterSourceRequest struct {
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	LastInspected time.Time `json:"last_inspected"`
}

type updateWaterSourceRequest struct {
	createWaterSourceRequest
	IsActive          bool   `json:"is_active"`
	UpdateDescription string `json:"update_description"`
}

func (h *WaterSourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createWaterSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := r.Context().Value(UserIDKey).(int64)
	if !ok {
		http.Error(w, "missing user context", http.StatusUnauthorized)
		return
	}

	source, err := h.service.Create(r.Context(), ports.CreateWaterSourceInput{
		Name:          req.Name,
		Description:   req.Description,
		Location:      req.Location,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Type:          domain.WaterSourceType(req.Type),
		Status:        domain.WaterSourceStatus(req.Status),
		CreatedByID:   userID,
		LastInspected: req.LastInspected,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, source)
}

func (h *WaterSourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid water source id", http.StatusBadRequest)
		return
	}

	source, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, source)
}

func (h *WaterSourceHandler) List(w http.ResponseWriter, r *http.Request) {
	sources, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if sources == nil {
		sources = []*domain.WaterSource{}
	}
	writeJSON(w, http.StatusOK, sources)
}

func (h *WaterSourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid water source id", http.StatusBadRequest)
		return
	}

	var req updateWaterSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err = h.service.Update(r.Context(), id, ports.UpdateWaterSourceInput{
		Name:              req.Name,
		Description:       req.Description,
		Location:          req.Location,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		Type:              domain.WaterSourceType(req.Type),
		Status:            domain.WaterSourceStatus(req.Status),
		LastInspected:     req.LastInspected,
		IsActive:          req.IsActive,
		UpdateDescription: req.UpdateDescription,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WaterSourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid water source id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WaterSourceHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrWaterSourceNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
