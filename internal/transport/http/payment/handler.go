package payment

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ama-bakery/pos/internal/dto"
	"github.com/ama-bakery/pos/internal/presentation/http/response"
	service "github.com/ama-bakery/pos/internal/service/payment"
	"github.com/ama-bakery/pos/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/ama-bakery/pos/transport/http/payment")

// Handler exposes settlement endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a payment Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/transactions")
	g.POST("", h.settle)
	g.GET("", h.list)
}

func (h *Handler) settle(c echo.Context) error {
	b := response.New(c)

	var payload dto.SettleRequest
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.Validation("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "transactions.settle", trace.WithAttributes(
		attribute.Int64("order.id", payload.Order),
		attribute.String("payment.method", payload.Method),
	))
	defer span.End()

	settlement, err := h.svc.Settle(ctx, payload)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(dto.NewTransactionResponse(settlement)).Build()
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "transactions.list")
	defer span.End()

	settlements, err := h.svc.List(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}

	out := make([]dto.TransactionResponse, 0, len(settlements))
	for _, settlement := range settlements {
		out = append(out, dto.NewTransactionResponse(settlement))
	}
	return b.WithData(out).Build()
}
