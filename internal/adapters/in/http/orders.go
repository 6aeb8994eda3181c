package http

import (
	"errors"
	"fmt"
	"net/http"

	"pressing/internal/core/application/usecases/commands"
	"pressing/internal/core/application/usecases/queries"
	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// CreateOrder handles POST /api/v1/orders - places an order at the caller's pressing.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var request CreateOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return s.fail(ctx, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
	}

	clientID, err := requiredID("clientId", request.ClientID)
	if err != nil {
		return s.fail(ctx, err)
	}

	lines := make([]commands.OrderLine, len(request.Items))
	var priceErrs []error
	for i, item := range request.Items {
		price, moneyErr := requiredMoney("price", item.Price)
		if moneyErr != nil {
			priceErrs = append(priceErrs, fmt.Errorf("items[%d]: %w", i, moneyErr))
		}
		lines[i] = commands.OrderLine{Label: item.Label, Quantity: item.Quantity, UnitPrice: price}
	}

	cmd, err := commands.NewCreateOrderCommand(actor, clientID, lines)
	if err = errors.Join(errors.Join(priceErrs...), err); err != nil {
		return s.fail(ctx, err)
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.respondWithOrder(ctx, actor, orderID, http.StatusCreated)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID, err := requiredID("id", ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.respondWithOrder(ctx, actor, orderID, http.StatusOK)
}

// GetOrderByReference handles GET /api/v1/orders/reference/:code.
func (s *Server) GetOrderByReference(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderByReferenceQuery(actor, ctx.Param("code"))
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.getOrderByReferenceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(o))
}

// ListOrders handles GET /api/v1/orders?scope=&pressingId=&plantId=&status=.
func (s *Server) ListOrders(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	scope, err := queries.ParseOrderListScope(ctx.QueryParam("scope"))
	if err != nil {
		return s.fail(ctx, err)
	}
	pressingID, err := optionalID("pressingId", ctx.QueryParam("pressingId"))
	if err != nil {
		return s.fail(ctx, err)
	}
	plantID, err := optionalID("plantId", ctx.QueryParam("plantId"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var status *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, parseErr := order.ParseStatus(raw)
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		status = &parsed
	}

	query, err := queries.NewListOrdersQuery(actor, scope, pressingID, plantID, status)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrders(orders))
}

// TransitionOrder handles POST /api/v1/orders/:id/transitions and answers
// with the order as it is after the change.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID, err := requiredID("id", ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var request TransitionRequest
	if err = ctx.Bind(&request); err != nil {
		return s.fail(ctx, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
	}

	target, plantID, err := parseTransition(request.TargetStatus, request.PlantID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(actor, orderID, target, plantID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.transitionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return s.respondWithOrder(ctx, actor, orderID, http.StatusOK)
}

// BulkTransitionOrders handles POST /api/v1/orders/transitions. Either every
// listed order moves or none does; the moved orders are returned in request
// order.
func (s *Server) BulkTransitionOrders(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var request BulkTransitionRequest
	if err = ctx.Bind(&request); err != nil {
		return s.fail(ctx, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
	}

	orderIDs := make([]kernel.ID, len(request.OrderIDs))
	for i, raw := range request.OrderIDs {
		if orderIDs[i], err = requiredID("orderIds", raw); err != nil {
			return s.fail(ctx, err)
		}
	}

	target, plantID, err := parseTransition(request.TargetStatus, request.PlantID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewBulkTransitionOrderStatusCommand(actor, orderIDs, target, plantID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if _, err = s.bulkTransitionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	response := make([]Order, len(orderIDs))
	for i, orderID := range orderIDs {
		query, queryErr := queries.NewGetOrderQuery(actor, orderID)
		if queryErr != nil {
			return s.fail(ctx, queryErr)
		}
		o, queryErr := s.getOrderHandler.Handle(ctx.Request().Context(), query)
		if queryErr != nil {
			return s.fail(ctx, queryErr)
		}
		response[i] = toOrder(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// RecordPayment handles POST /api/v1/orders/:id/payment.
func (s *Server) RecordPayment(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID, err := requiredID("id", ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var request PaymentRequest
	if err = ctx.Bind(&request); err != nil {
		return s.fail(ctx, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
	}

	method, err := order.ParsePaymentMethod(request.Method)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRecordPaymentCommand(actor, orderID, method)
	if err != nil {
		return s.fail(ctx, err)
	}

	payment, err := s.recordPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Payment{
		ID:     payment.ID().String(),
		Amount: payment.Amount().Amount(),
		Method: payment.Method().String(),
		Status: payment.Status().String(),
		PaidAt: payment.PaidAt(),
	})
}

func (s *Server) respondWithOrder(ctx echo.Context, actor identity.Actor, orderID kernel.ID, code int) error {
	query, err := queries.NewGetOrderQuery(actor, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(code, toOrder(o))
}

func parseTransition(rawTarget string, rawPlantID *string) (order.Status, *kernel.ID, error) {
	if rawTarget == "" {
		return order.Unknown, nil, errs.NewValueIsRequiredError("targetStatus")
	}
	target, err := order.ParseStatus(rawTarget)
	if err != nil {
		return order.Unknown, nil, err
	}

	var plantID *kernel.ID
	if rawPlantID != nil {
		if plantID, err = optionalID("plantId", *rawPlantID); err != nil {
			return order.Unknown, nil, err
		}
	}
	return target, plantID, nil
}

func requiredMoney(name string, value *decimal.Decimal) (kernel.Money, error) {
	if value == nil {
		return kernel.Money{}, errs.NewValueIsRequiredError(name)
	}
	return kernel.NewMoney(*value)
}

func requiredID(name, value string) (kernel.ID, error) {
	if value == "" {
		return kernel.ID{}, errs.NewValueIsRequiredError(name)
	}
	id, err := kernel.ParseID(value)
	if err != nil {
		return kernel.ID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}
