package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockalert-app/stockalert-backend/api/controllers"
	"github.com/stockalert-app/stockalert-backend/api/middleware"
	"github.com/stockalert-app/stockalert-backend/internal/alerts"
	"github.com/stockalert-app/stockalert-backend/internal/connectivity"
	"github.com/stockalert-app/stockalert-backend/internal/ledger"
	"github.com/stockalert-app/stockalert-backend/internal/notifications"
	"github.com/stockalert-app/stockalert-backend/internal/products"
	"github.com/stockalert-app/stockalert-backend/internal/stock"
	"github.com/stockalert-app/stockalert-backend/pkg/config"
	"github.com/stockalert-app/stockalert-backend/pkg/db"
	"github.com/stockalert-app/stockalert-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	gatherer prometheus.Gatherer,
	ledgerService ledger.Service,
	productsService products.Service,
	stockService stock.Service,
	alertsService alerts.Service,
	notificationsService notifications.Service,
	permissionDenier controllers.PermissionDenier,
	checker controllers.LowStockChecker,
	connectivitySource *connectivity.ManualSource,
	connectivityMonitor *connectivity.Monitor,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.UI.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", controllers.TransactionsCreate(ledgerService, productsService, stockService, checker, logg))
			r.Get("/", controllers.TransactionsList(ledgerService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.ProductsCreate(productsService, logg))
			r.Get("/", controllers.ProductsList(productsService, logg))
			r.Get("/{id}", controllers.ProductsGet(productsService, logg))
		})

		r.Route("/stock", func(r chi.Router) {
			r.Get("/", controllers.StockLevels(stockService, logg))
			r.Get("/low", controllers.StockLow(stockService, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.NotificationsList(notificationsService, logg))
			r.Post("/{id}/read", controllers.NotificationsMarkRead(notificationsService, logg))
			r.Post("/read-all", controllers.NotificationsMarkAllRead(notificationsService, logg))
			r.Get("/permission", controllers.NotificationsPermission(alertsService, logg))
			r.Post("/permission/request", controllers.NotificationsRequestPermission(alertsService, logg))
			r.Post("/permission/deny", controllers.NotificationsDenyPermission(permissionDenier, logg))
		})

		r.Route("/connectivity", func(r chi.Router) {
			r.Get("/", controllers.ConnectivityStatus(connectivityMonitor))
			r.Post("/", controllers.ConnectivityReport(connectivitySource, connectivityMonitor, logg))
		})

		r.Get("/shell/manifest", controllers.ShellManifest())
	})

	return r
}
