package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	authHandler "github.com/xspace-labs/xspace-backend/internal/handler/auth"
	checkoutHandler "github.com/xspace-labs/xspace-backend/internal/handler/checkout"
	clientHandler "github.com/xspace-labs/xspace-backend/internal/handler/client"
	productHandler "github.com/xspace-labs/xspace-backend/internal/handler/product"
	reservationHandler "github.com/xspace-labs/xspace-backend/internal/handler/reservation"
	visitHandler "github.com/xspace-labs/xspace-backend/internal/handler/visit"
	middlewarePkg "github.com/xspace-labs/xspace-backend/internal/middleware"
	catalogModel "github.com/xspace-labs/xspace-backend/internal/model/catalog"
	clientModel "github.com/xspace-labs/xspace-backend/internal/model/client"
	reservationModel "github.com/xspace-labs/xspace-backend/internal/model/reservation"
	authService "github.com/xspace-labs/xspace-backend/internal/service/auth"
	checkoutService "github.com/xspace-labs/xspace-backend/internal/service/checkout"
	visitService "github.com/xspace-labs/xspace-backend/internal/service/visit"
)

// NewRouter wires HTTP routes to core services. Everything except login sits
// behind the bearer token the login issues.
func NewRouter(
	authSvc *authService.Service,
	products catalogModel.Store,
	clients clientModel.Store,
	reservations reservationModel.Store,
	visitSvc *visitService.Service,
	checkoutSvc *checkoutService.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		authHandler.New(authSvc).RegisterRoutes(api)

		api.Group(func(protected chi.Router) {
			protected.Use(middlewarePkg.RequireToken(authSvc))

			productHandler.New(products).RegisterRoutes(protected)
			clientHandler.New(clients).RegisterRoutes(protected)
			reservationHandler.New(reservations).RegisterRoutes(protected)
			visitHandler.New(visitSvc).RegisterRoutes(protected)
			checkoutHandler.New(checkoutSvc).RegisterRoutes(protected)
		})
	})

	return r
}
