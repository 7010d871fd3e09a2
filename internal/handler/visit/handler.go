package visit

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	cartmodel "github.com/xspace-labs/xspace-backend/internal/model/cart"
	visitmodel "github.com/xspace-labs/xspace-backend/internal/model/visit"
	visitService "github.com/xspace-labs/xspace-backend/internal/service/visit"
	"github.com/xspace-labs/xspace-backend/pkg/utils"
)

// Handler exposes the visit lifecycle over HTTP.
type Handler struct {
	visits *visitService.Service
}

// New creates the visit handler.
func New(visits *visitService.Service) *Handler {
	return &Handler{visits: visits}
}

// RegisterRoutes mounts the visit routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/visits", h.handleList)
	r.Post("/visits", h.handleOpen)
	r.Get("/visits/active", h.handleActive)
	r.Post("/visits/{id}/products", h.handleAddProduct)
	r.Patch("/visits/{id}/products/{productID}", h.handleAdjustQuantity)
	r.Post("/visits/{id}/close", h.handleClose)
}

// OpenVisitRequest names the client starting a visit.
type OpenVisitRequest struct {
	ClientName string `json:"clientName"`
}

// Bind satisfies [render.Binder].
func (req *OpenVisitRequest) Bind(*http.Request) error {
	if strings.TrimSpace(req.ClientName) == "" {
		return errors.New("clientName is required")
	}
	return nil
}

// AddProductRequest puts a quantity of a product into the visit cart.
type AddProductRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Bind satisfies [render.Binder]. Quantity validation stays in the cart so a
// rejected add is indistinguishable from any other invalid-quantity path.
func (req *AddProductRequest) Bind(*http.Request) error {
	if strings.TrimSpace(req.ProductID) == "" {
		return errors.New("productId is required")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	return nil
}

// AdjustQuantityRequest shifts a cart line by a relative amount.
type AdjustQuantityRequest struct {
	Delta int `json:"delta"`
}

// Bind satisfies [render.Binder].
func (req *AdjustQuantityRequest) Bind(*http.Request) error {
	if req.Delta == 0 {
		return errors.New("delta must not be zero")
	}
	return nil
}

type cartResponse struct {
	Lines           []cartmodel.Line `json:"lines"`
	ProductSubtotal decimal.Decimal  `json:"productSubtotal"`
}

func linesResponse(lines []cartmodel.Line) cartResponse {
	return cartResponse{Lines: lines, ProductSubtotal: cartmodel.Subtotal(lines)}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.visits.List(r.Context()))
}

func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request) {
	req := &OpenVisitRequest{}
	if err := render.Bind(r, req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	opened, err := h.visits.Open(r.Context(), req.ClientName)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusCreated, opened)
}

func (h *Handler) handleActive(w http.ResponseWriter, r *http.Request) {
	active, ok := h.visits.Active(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "no active visit")
		return
	}

	lines, err := h.visits.Lines(r.Context(), active.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, activeVisitResponse{
		Visit:           active,
		Lines:           lines,
		ProductSubtotal: cartmodel.Subtotal(lines),
	})
}

func (h *Handler) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	req := &AddProductRequest{}
	if err := render.Bind(r, req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	lines, err := h.visits.AddProduct(r.Context(), chi.URLParam(r, "id"), req.ProductID, req.Quantity)
	if err != nil {
		respondVisitError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, linesResponse(lines))
}

func (h *Handler) handleAdjustQuantity(w http.ResponseWriter, r *http.Request) {
	req := &AdjustQuantityRequest{}
	if err := render.Bind(r, req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	lines, err := h.visits.AdjustQuantity(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "productID"), req.Delta)
	if err != nil {
		respondVisitError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, linesResponse(lines))
}

func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	closed, err := h.visits.Close(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondVisitError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, closed)
}

type activeVisitResponse struct {
	Visit           visitmodel.Visit `json:"visit"`
	Lines           []cartmodel.Line `json:"lines"`
	ProductSubtotal decimal.Decimal  `json:"productSubtotal"`
}

func respondVisitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, visitService.ErrVisitNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, visitService.ErrVisitClosed):
		utils.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, visitService.ErrUnknownProduct),
		errors.Is(err, cartmodel.ErrInvalidQuantity):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
