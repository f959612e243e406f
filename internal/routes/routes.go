package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/internal/adminapi"
	"backoffice/internal/repositories"
	"backoffice/internal/services"
	"backoffice/pkg/config"
	"backoffice/pkg/eventbus"
	"backoffice/pkg/middleware"
	"backoffice/pkg/service"
	appwebsocket "backoffice/pkg/websocket"
)

type Loggers struct {
	Main *zap.Logger
	Auth *zap.Logger
	List *zap.Logger
	Live *zap.Logger
}

// Dependencies - всё, что создаётся в main и нужно маршрутам.
// AuditRepo может быть nil: без PostgreSQL журнал не ведётся.
type Dependencies struct {
	Client    *adminapi.Client
	Cache     repositories.CacheRepositoryInterface
	Stores    *repositories.StateStoreFactory
	AuditRepo repositories.AuditRepositoryInterface
	Bus       *eventbus.Bus
	Hub       *appwebsocket.Hub
	JWT       service.JWTService
	Config    *config.Config
}

type listDeps struct {
	lookups    services.LookupServiceInterface
	selections repositories.SelectionRepositoryInterface
	pages      repositories.PageCacheRepositoryInterface
	cfg        config.ListConfig
	logger     *zap.Logger
}

func newListPage[T services.Identifiable](def services.ListPageDefinition[T], d listDeps) *services.ListPageService[T] {
	return services.NewListPageService(def, d.lookups, d.selections, d.pages, d.cfg.SearchStateTTL, d.logger)
}

func InitRouter(e *echo.Echo, deps Dependencies, loggers *Loggers) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(deps.JWT, loggers.Auth)
	secureGroup := api.Group("", authMW.Auth)

	listCfg := deps.Config.List
	lookups := services.NewLookupService(deps.Client, deps.Cache, listCfg.LookupCacheTTL, loggers.Main)
	ld := listDeps{
		lookups:    lookups,
		selections: repositories.NewSelectionRepository(deps.Cache, listCfg.SearchStateTTL),
		pages:      repositories.NewPageCacheRepository(deps.Cache, listCfg.SearchStateTTL),
		cfg:        listCfg,
		logger:     loggers.List,
	}

	// --- СТРАНИЦЫ СПИСКОВ ---
	orders := newListPage(services.OrdersPage(deps.Client), ld)
	countries := newListPage(services.CountriesPage(deps.Client), ld)
	jobOffers := newListPage(services.JobOffersPage(deps.Client), ld)
	helpCenter := newListPage(services.HelpCenterPage(deps.Client), ld)
	taxFree := newListPage(services.TaxFreePage(deps.Client), ld)

	// --- СЕРВИСЫ ---
	orderService := services.NewOrderService(deps.Client, deps.Bus, deps.Cache, loggers.Main)
	exportService := services.NewExportService(orders, lookups, deps.Bus, listCfg.ExportMaxRows, loggers.Main)
	countryService := services.NewCountryService(deps.Client, deps.Bus, deps.Cache, loggers.Main)
	jobOfferService := services.NewJobOfferService(deps.Client, deps.Bus, deps.Cache, loggers.Main)
	helpCenterService := services.NewHelpCenterService(deps.Client, deps.Bus, deps.Cache, loggers.Main)
	taxFreeService := services.NewTaxFreeService(deps.Client, deps.Bus, deps.Cache, loggers.Main)

	// --- РОУТЕРЫ ---
	runOrderRouter(runListRouter(secureGroup, orders, deps.Stores, loggers.List), orderService, exportService, deps.Stores, loggers.Main)
	runCountryRouter(runListRouter(secureGroup, countries, deps.Stores, loggers.List), countryService, loggers.Main)
	runJobOfferRouter(runListRouter(secureGroup, jobOffers, deps.Stores, loggers.List), jobOfferService, loggers.Main)
	runHelpCenterRouter(runListRouter(secureGroup, helpCenter, deps.Stores, loggers.List), helpCenterService, loggers.Main)
	runTaxFreeRouter(runListRouter(secureGroup, taxFree, deps.Stores, loggers.List), taxFreeService, loggers.Main)

	if deps.AuditRepo != nil {
		runAuditRouter(secureGroup, services.NewAuditService(deps.AuditRepo, loggers.Main), loggers.Main)
	}

	sessions := services.NewLiveSessionService(listCfg.DebounceInterval, loggers.Live)
	livePages := []services.ListPage{orders, countries, jobOffers, helpCenter, taxFree}
	runLiveRouter(secureGroup, livePages, deps.Stores, sessions, deps.Hub, deps.Config.Server.CORSOrigins, loggers.Live)

	loggers.Main.Info("INIT_ROUTER: Создание маршрутов завершено")
}
