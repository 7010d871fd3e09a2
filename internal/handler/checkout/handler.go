package checkout

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	cartmodel "github.com/xspace-labs/xspace-backend/internal/model/cart"
	checkoutService "github.com/xspace-labs/xspace-backend/internal/service/checkout"
	"github.com/xspace-labs/xspace-backend/pkg/utils"
)

// Handler exposes the hall checkout flow over HTTP.
type Handler struct {
	checkout *checkoutService.Service
}

// New creates the checkout handler.
func New(checkout *checkoutService.Service) *Handler {
	return &Handler{checkout: checkout}
}

// RegisterRoutes mounts the hall cart and checkout routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/checkout/cart", h.handleAddToCart)
	r.Get("/checkout", h.handleCurrent)
	r.Post("/checkout", h.handleStart)
	r.Post("/checkout/finish", h.handleFinish)
}

// AddToCartRequest names the product going into the hall cart.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
}

// Bind satisfies [render.Binder].
func (req *AddToCartRequest) Bind(*http.Request) error {
	if strings.TrimSpace(req.ProductID) == "" {
		return errors.New("productId is required")
	}
	return nil
}

type cartResponse struct {
	Lines           []cartmodel.Line `json:"lines"`
	ProductSubtotal decimal.Decimal  `json:"productSubtotal"`
}

func (h *Handler) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	req := &AddToCartRequest{}
	if err := render.Bind(r, req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	lines, err := h.checkout.AddProduct(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, checkoutService.ErrUnknownProduct) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, cartResponse{Lines: lines, ProductSubtotal: cartmodel.Subtotal(lines)})
}

func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	lines, subtotal := h.checkout.Cart(r.Context())

	resp := struct {
		cartResponse
		Checkout *checkoutService.Checkout `json:"checkout"`
	}{
		cartResponse: cartResponse{Lines: lines, ProductSubtotal: subtotal},
	}

	if current, ok := h.checkout.Current(r.Context()); ok {
		resp.Checkout = &current
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	current, err := h.checkout.Start(r.Context())
	if err != nil {
		if errors.Is(err, checkoutService.ErrCheckoutActive) {
			utils.RespondError(w, http.StatusConflict, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusCreated, current)
}

func (h *Handler) handleFinish(w http.ResponseWriter, r *http.Request) {
	current, err := h.checkout.Finish(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, checkoutService.ErrNoCheckout):
			utils.RespondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, checkoutService.ErrCheckoutFinished):
			utils.RespondError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	utils.RespondJSON(w, http.StatusOK, current)
}
