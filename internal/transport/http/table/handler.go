package table

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ama-bakery/pos/internal/dto"
	"github.com/ama-bakery/pos/internal/presentation/http/response"
	service "github.com/ama-bakery/pos/internal/service/table"
	"github.com/ama-bakery/pos/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/ama-bakery/pos/transport/http/table")

// Handler exposes table endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a table Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/tables")
	g.GET("", h.list)
	g.PATCH("/:id/status", h.updateStatus)
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "tables.list")
	defer span.End()

	tables, err := h.svc.List(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}

	out := make([]dto.TableResponse, 0, len(tables))
	for _, table := range tables {
		out = append(out, dto.NewTableResponse(table))
	}
	return b.WithData(out).Build()
}

func (h *Handler) updateStatus(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.Validation("invalid id", errorbank.WithCause(err))).Build()
	}

	var payload dto.UpdateTableStatusRequest
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.Validation("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "tables.updateStatus", trace.WithAttributes(
		attribute.Int64("table.id", id),
		attribute.String("table.status", payload.Status),
	))
	defer span.End()

	table, err := h.svc.SetStatus(ctx, id, payload.Status)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.NewTableResponse(table)).Build()
}
