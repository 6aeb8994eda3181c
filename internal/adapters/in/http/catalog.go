package http

import (
	"net/http"

	"pressing/internal/core/application/usecases/commands"
	"pressing/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListCatalogItems handles GET /api/v1/catalog-items?pressingId=.
func (s *Server) ListCatalogItems(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	pressingID, err := optionalID("pressingId", ctx.QueryParam("pressingId"))
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListCatalogItemsQuery(actor, pressingID)
	if err != nil {
		return s.fail(ctx, err)
	}

	items, err := s.listCatalogItemsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]CatalogItem, len(items))
	for i, item := range items {
		response[i] = toCatalogItem(item)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateCatalogItem handles POST /api/v1/catalog-items. Administrators name
// the pressing with ?pressingId=.
func (s *Server) CreateCatalogItem(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	pressingID, err := optionalID("pressingId", ctx.QueryParam("pressingId"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var request CatalogItemRequest
	if err = ctx.Bind(&request); err != nil {
		return s.fail(ctx, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
	}

	price, err := requiredMoney("price", request.Price)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateCatalogItemCommand(actor, pressingID, request.Label, price)
	if err != nil {
		return s.fail(ctx, err)
	}

	item, err := s.createCatalogItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, catalogItemFromDomain(item))
}

// UpdateCatalogItem handles PUT /api/v1/catalog-items/:id.
func (s *Server) UpdateCatalogItem(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	itemID, err := requiredID("id", ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var request CatalogItemRequest
	if err = ctx.Bind(&request); err != nil {
		return s.fail(ctx, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
	}

	price, err := requiredMoney("price", request.Price)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateCatalogItemCommand(actor, itemID, request.Label, price)
	if err != nil {
		return s.fail(ctx, err)
	}

	item, err := s.updateCatalogItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, catalogItemFromDomain(item))
}

// DeleteCatalogItem handles DELETE /api/v1/catalog-items/:id.
func (s *Server) DeleteCatalogItem(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	itemID, err := requiredID("id", ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeleteCatalogItemCommand(actor, itemID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.deleteCatalogItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
