// internal/weather/handler.go
package weather

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.service.Current(r.Context()))
}
