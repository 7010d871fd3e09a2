package product

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"github.com/xspace-labs/xspace-backend/internal/model/catalog"
	"github.com/xspace-labs/xspace-backend/pkg/utils"
)

// Handler exposes catalog management over HTTP.
type Handler struct {
	products catalog.Store
}

// New creates the product handler.
func New(products catalog.Store) *Handler {
	return &Handler{products: products}
}

// RegisterRoutes mounts the catalog CRUD routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.handleList)
	r.Post("/products", h.handleCreate)
	r.Put("/products/{id}", h.handleUpdate)
	r.Delete("/products/{id}", h.handleDelete)
}

// ProductRequest is the create/update payload.
type ProductRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

// Bind satisfies [render.Binder].
func (pr *ProductRequest) Bind(*http.Request) error {
	if strings.TrimSpace(pr.Name) == "" {
		return errors.New("name is required")
	}
	if pr.Price.IsNegative() {
		return errors.New("price cannot be negative")
	}
	if strings.TrimSpace(pr.Category) == "" {
		return errors.New("category is required")
	}
	return nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.products.List())
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req := &ProductRequest{}
	if err := render.Bind(r, req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created := h.products.Create(catalog.Product{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
	})
	utils.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	req := &ProductRequest{}
	if err := render.Bind(r, req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, ok := h.products.Update(chi.URLParam(r, "id"), catalog.Product{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
	})
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "product not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !h.products.Delete(chi.URLParam(r, "id")) {
		utils.RespondError(w, http.StatusNotFound, "product not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
