package reservation

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	reservationmodel "github.com/xspace-labs/xspace-backend/internal/model/reservation"
	"github.com/xspace-labs/xspace-backend/pkg/utils"
)

// Handler exposes hall reservations over HTTP.
type Handler struct {
	reservations reservationmodel.Store
}

// New creates the reservation handler.
func New(reservations reservationmodel.Store) *Handler {
	return &Handler{reservations: reservations}
}

// RegisterRoutes mounts the reservation routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/reservations", h.handleList)
	r.Post("/reservations", h.handleCreate)
	r.Delete("/reservations/{id}", h.handleDelete)
}

// ReservationRequest is the booking payload.
type ReservationRequest struct {
	ClientName string `json:"clientName"`
	HallName   string `json:"hallName"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

// Bind satisfies [render.Binder].
func (rr *ReservationRequest) Bind(*http.Request) error {
	if strings.TrimSpace(rr.ClientName) == "" {
		return errors.New("clientName is required")
	}
	if strings.TrimSpace(rr.HallName) == "" {
		return errors.New("hallName is required")
	}
	if strings.TrimSpace(rr.Date) == "" {
		return errors.New("date is required")
	}
	if strings.TrimSpace(rr.Time) == "" {
		return errors.New("time is required")
	}
	return nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.reservations.List())
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req := &ReservationRequest{}
	if err := render.Bind(r, req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created := h.reservations.Create(reservationmodel.Reservation{
		ClientName: req.ClientName,
		HallName:   req.HallName,
		Date:       req.Date,
		Time:       req.Time,
	})
	utils.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !h.reservations.Delete(chi.URLParam(r, "id")) {
		utils.RespondError(w, http.StatusNotFound, "reservation not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
