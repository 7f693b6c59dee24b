// internal/inspection/handler.go
package inspection

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"growingtogether/internal/allotment"
	"growingtogether/internal/auth"
)

type Handler struct {
	service Service
	plots   allotment.Service
}

func NewHandler(service Service, plots allotment.Service) *Handler {
	return &Handler{service: service, plots: plots}
}

func (h *Handler) HandleCreateInspection(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	var input CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Create(r.Context(), actor.ID, input)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

func (h *Handler) HandleListInspections(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	q := r.URL.Query()

	filters := Filters{
		PlotID:     q.Get("plot_id"),
		Action:     q.Get("action"),
		AssessorID: q.Get("assessor_id"),
	}
	if from := q.Get("date_from"); from != "" {
		if parsed, err := time.Parse(time.RFC3339, from); err == nil {
			filters.DateFrom = &parsed
		}
	}
	if to := q.Get("date_to"); to != "" {
		if parsed, err := time.Parse(time.RFC3339, to); err == nil {
			filters.DateTo = &parsed
		}
	}

	// Members only see shared records for the plot they hold.
	if !actor.IsAdmin() {
		plot, err := h.plots.PlotByHolder(r.Context(), actor.ID)
		if err != nil {
			if errors.Is(err, allotment.ErrPlotNotFound) {
				json.NewEncoder(w).Encode([]Inspection{})
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		filters.PlotID = plot.ID
		filters.SharedOnly = true
	}

	inspections, err := h.service.List(r.Context(), filters)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(inspections)
}

func (h *Handler) HandleMyNotices(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	notices, err := h.service.NoticesFor(r.Context(), actor.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(notices)
}

func (h *Handler) HandleAcknowledgeNotice(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	acknowledged, err := h.service.AcknowledgeNotice(r.Context(), chi.URLParam(r, "noticeID"), actor.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// A miss is reported as a no-op, deliberately not distinguishing a
	// missing notice from one addressed to someone else.
	json.NewEncoder(w).Encode(map[string]bool{"acknowledged": acknowledged})
}
