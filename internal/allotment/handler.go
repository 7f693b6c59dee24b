// internal/allotment/handler.go
package allotment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"growingtogether/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) HandleCreatePlot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Number string `json:"number"`
		Size   string `json:"size"`
		Notes  string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	plot, err := h.service.CreatePlot(r.Context(), req.Number, req.Size, req.Notes)
	if err != nil {
		if errors.Is(err, ErrNumberTaken) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(plot)
}

func (h *Handler) HandleListPlots(w http.ResponseWriter, r *http.Request) {
	plots, err := h.service.ListPlots(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(plots)
}

func (h *Handler) HandleGetPlot(w http.ResponseWriter, r *http.Request) {
	plot, err := h.service.GetPlot(r.Context(), chi.URLParam(r, "plotID"))
	if err != nil {
		if errors.Is(err, ErrPlotNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(plot)
}

func (h *Handler) HandleAssignHolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HolderUserID *string `json:"holder_user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	plot, err := h.service.AssignHolder(r.Context(), chi.URLParam(r, "plotID"), req.HolderUserID)
	if err != nil {
		if errors.Is(err, ErrPlotNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(plot)
}

func (h *Handler) HandleMyPlot(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	plot, err := h.service.PlotByHolder(r.Context(), actor.ID)
	if err != nil {
		if errors.Is(err, ErrPlotNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(plot)
}
