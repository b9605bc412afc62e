package app

import (
	"go.uber.org/fx"

	"github.com/ama-bakery/pos/internal/cache"
	"github.com/ama-bakery/pos/internal/config"
	"github.com/ama-bakery/pos/internal/database"
	"github.com/ama-bakery/pos/internal/logger"
	"github.com/ama-bakery/pos/internal/messaging"
	"github.com/ama-bakery/pos/internal/observability"
	repositorycatalog "github.com/ama-bakery/pos/internal/repository/catalog"
	repositoryorder "github.com/ama-bakery/pos/internal/repository/order"
	repositorytable "github.com/ama-bakery/pos/internal/repository/table"
	repositorytransaction "github.com/ama-bakery/pos/internal/repository/transaction"
	grpcserver "github.com/ama-bakery/pos/internal/server/grpc"
	httpserver "github.com/ama-bakery/pos/internal/server/http"
	servicecatalog "github.com/ama-bakery/pos/internal/service/catalog"
	"github.com/ama-bakery/pos/internal/service/consistency"
	serviceorder "github.com/ama-bakery/pos/internal/service/order"
	servicepayment "github.com/ama-bakery/pos/internal/service/payment"
	servicetable "github.com/ama-bakery/pos/internal/service/table"
	transporthttp "github.com/ama-bakery/pos/internal/transport/http"
	"github.com/ama-bakery/pos/internal/worker"
	workerorder "github.com/ama-bakery/pos/internal/worker/order"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	repositorytable.Module,
	repositorycatalog.Module,
	repositoryorder.Module,
	repositorytransaction.Module,
	consistency.Module,
	servicetable.Module,
	servicecatalog.Module,
	serviceorder.Module,
	servicepayment.Module,
)

// HTTP wires the API surface on top of the core modules. The worker engine
// runs in-process so the kitchen feed sees order events without a separate
// deployment.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	transporthttp.Module,
	grpcserver.Module,
	worker.Module,
	workerorder.Module,
)

// Worker exposes background event processing without the API surface.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerorder.Module,
)

// Module is the default application wiring.
var Module = HTTP
