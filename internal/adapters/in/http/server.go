package http

import (
	"log/slog"
	"net/http"

	"pressing/internal/core/application/usecases/commands"
	"pressing/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Server handles the HTTP API. It coordinates between HTTP handlers and
// application use cases; it never touches repositories directly.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	transitionHandler        commands.TransitionOrderStatusCommandHandler
	bulkTransitionHandler    commands.BulkTransitionOrderStatusCommandHandler
	recordPaymentHandler     commands.RecordPaymentCommandHandler
	createCatalogItemHandler commands.CreateCatalogItemCommandHandler
	updateCatalogItemHandler commands.UpdateCatalogItemCommandHandler
	deleteCatalogItemHandler commands.DeleteCatalogItemCommandHandler

	// Query handlers
	getOrderHandler            queries.GetOrderQueryHandler
	getOrderByReferenceHandler queries.GetOrderByReferenceQueryHandler
	listOrdersHandler          queries.ListOrdersQueryHandler
	listCatalogItemsHandler    queries.ListCatalogItemsQueryHandler

	logger *slog.Logger
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder         commands.CreateOrderCommandHandler
	Transition          commands.TransitionOrderStatusCommandHandler
	BulkTransition      commands.BulkTransitionOrderStatusCommandHandler
	RecordPayment       commands.RecordPaymentCommandHandler
	CreateCatalogItem   commands.CreateCatalogItemCommandHandler
	UpdateCatalogItem   commands.UpdateCatalogItemCommandHandler
	DeleteCatalogItem   commands.DeleteCatalogItemCommandHandler
	GetOrder            queries.GetOrderQueryHandler
	GetOrderByReference queries.GetOrderByReferenceQueryHandler
	ListOrders          queries.ListOrdersQueryHandler
	ListCatalogItems    queries.ListCatalogItemsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{
		createOrderHandler:         h.CreateOrder,
		transitionHandler:          h.Transition,
		bulkTransitionHandler:      h.BulkTransition,
		recordPaymentHandler:       h.RecordPayment,
		createCatalogItemHandler:   h.CreateCatalogItem,
		updateCatalogItemHandler:   h.UpdateCatalogItem,
		deleteCatalogItemHandler:   h.DeleteCatalogItem,
		getOrderHandler:            h.GetOrder,
		getOrderByReferenceHandler: h.GetOrderByReference,
		listOrdersHandler:          h.ListOrders,
		listCatalogItemsHandler:    h.ListCatalogItems,
		logger:                     logger.With("component", "http_server"),
	}
}

// RegisterRoutes mounts the health check and the authenticated API on e.
func (s *Server) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1", auth)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.POST("/orders/transitions", s.BulkTransitionOrders)
	api.GET("/orders/reference/:code", s.GetOrderByReference)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/transitions", s.TransitionOrder)
	api.POST("/orders/:id/payment", s.RecordPayment)

	api.GET("/catalog-items", s.ListCatalogItems)
	api.POST("/catalog-items", s.CreateCatalogItem)
	api.PUT("/catalog-items/:id", s.UpdateCatalogItem)
	api.DELETE("/catalog-items/:id", s.DeleteCatalogItem)
}
