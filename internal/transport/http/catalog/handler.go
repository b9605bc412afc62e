package catalog

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/ama-bakery/pos/internal/dto"
	"github.com/ama-bakery/pos/internal/presentation/http/response"
	service "github.com/ama-bakery/pos/internal/service/catalog"
)

var httpTracer = otel.Tracer("github.com/ama-bakery/pos/transport/http/catalog")

// Handler exposes read-only catalog endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a catalog Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	e.GET("/categories", h.categories)
	e.GET("/menu-items", h.menuItems)
}

func (h *Handler) categories(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "catalog.categories")
	defer span.End()

	categories, err := h.svc.Categories(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}

	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, dto.NewCategoryResponse(category))
	}
	return b.WithData(out).Build()
}

func (h *Handler) menuItems(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "catalog.menuItems")
	defer span.End()

	items, err := h.svc.MenuItems(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}

	out := make([]dto.MenuItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewMenuItemResponse(item))
	}
	return b.WithData(out).Build()
}
