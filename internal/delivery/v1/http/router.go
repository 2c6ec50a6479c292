package http

import (
	"time"

	_ "github.com/DRSN-tech/cart-service/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/cart-service/internal/usecase"
	"github.com/DRSN-tech/cart-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(cartUC usecase.CartUC, refreshTimeout time.Duration) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	pages := NewPageHandler(cartUC, r.logger, refreshTimeout)
	r.router.Get("/cart", pages.cartPage)
	r.router.Get("/order-confirmation", pages.orderConfirmation)
	r.router.Post("/cart/items", pages.addItem)
	r.router.Post("/cart/commands", pages.command)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		cartHandler := NewCartHandler(cartUC, r.logger)
		registerCartRoutes(v1, cartHandler)
	})
}

func registerCartRoutes(router chi.Router, cartHandler *CartHandler) {
	router.Route("/cart", func(c chi.Router) {
		c.Get("/", cartHandler.getCart)
		c.Get("/counter", cartHandler.counter)
		c.Post("/items", cartHandler.addItem)
		c.Post("/commands", cartHandler.command)
	})
}
