package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	authService "github.com/xspace-labs/xspace-backend/internal/service/auth"
	"github.com/xspace-labs/xspace-backend/pkg/utils"
)

// Handler exposes the operator login over HTTP.
type Handler struct {
	auth *authService.Service
}

// New creates the auth handler.
func New(auth *authService.Service) *Handler {
	return &Handler{auth: auth}
}

// RegisterRoutes mounts the login routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.auth.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"token":    token,
		"username": payload.Username,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		utils.RespondError(w, http.StatusBadRequest, "missing bearer token")
		return
	}

	h.auth.Logout(r.Context(), token)
	w.WriteHeader(http.StatusNoContent)
}
