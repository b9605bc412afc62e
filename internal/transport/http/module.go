package http

import (
	"go.uber.org/fx"

	"github.com/ama-bakery/pos/internal/feed"
	catalogtransport "github.com/ama-bakery/pos/internal/transport/http/catalog"
	ordertransport "github.com/ama-bakery/pos/internal/transport/http/order"
	paymenttransport "github.com/ama-bakery/pos/internal/transport/http/payment"
	tabletransport "github.com/ama-bakery/pos/internal/transport/http/table"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	ordertransport.Module,
	paymenttransport.Module,
	tabletransport.Module,
	catalogtransport.Module,
	feed.Module,
)
