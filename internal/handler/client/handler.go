package client

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	clientmodel "github.com/xspace-labs/xspace-backend/internal/model/client"
	"github.com/xspace-labs/xspace-backend/pkg/utils"
)

// Handler exposes client registration over HTTP.
type Handler struct {
	clients clientmodel.Store
}

// New creates the client handler.
func New(clients clientmodel.Store) *Handler {
	return &Handler{clients: clients}
}

// RegisterRoutes mounts the client routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/clients", h.handleList)
	r.Post("/clients", h.handleCreate)
}

// ClientRequest is the registration payload.
type ClientRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Job   string `json:"job"`
	Age   int    `json:"age"`
}

// Bind satisfies [render.Binder].
func (cr *ClientRequest) Bind(*http.Request) error {
	if strings.TrimSpace(cr.Name) == "" {
		return errors.New("name is required")
	}
	if cr.Age < 0 {
		return errors.New("age cannot be negative")
	}
	return nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.clients.List())
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req := &ClientRequest{}
	if err := render.Bind(r, req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created := h.clients.Create(clientmodel.Client{
		Name:        req.Name,
		Phone:       req.Phone,
		Job:         req.Job,
		Age:         req.Age,
		LastVisit:   time.Now().UTC(),
		IsNewClient: true,
	})
	utils.RespondJSON(w, http.StatusCreated, created)
}
