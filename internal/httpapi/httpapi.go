package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"salestrack/backend/internal/domain"
	"salestrack/backend/internal/service"
)

const bannerMessage = "Sales Tracking System API"

// Service is the subset of service.Service the handlers call.
type Service interface {
	CreateSale(ctx context.Context, req domain.SaleCreateRequest) (domain.Sale, error)
	ListSales(ctx context.Context) ([]domain.Sale, error)
	GetSale(ctx context.Context, id string) (domain.Sale, error)
	UpdateSale(ctx context.Context, id string, req domain.SaleUpdateRequest) (domain.Sale, error)
	DeleteSale(ctx context.Context, id string) error

	CreateStockItem(ctx context.Context, req domain.StockItemCreateRequest) (domain.StockItem, error)
	ListStockItems(ctx context.Context) ([]domain.StockItem, error)
	ListLowStock(ctx context.Context) ([]domain.StockItem, error)
	GetStockItem(ctx context.Context, id string) (domain.StockItem, error)
	UpdateStockItem(ctx context.Context, id string, req domain.StockItemUpdateRequest) (domain.StockItem, error)
	DeleteStockItem(ctx context.Context, id string) error

	Dashboard(ctx context.Context) (domain.DashboardStats, error)
	InventoryStats(ctx context.Context) (domain.InventoryStats, error)
	SalesChart(ctx context.Context) (domain.SalesChart, error)

	Ping(ctx context.Context) error
}

var _ Service = (*service.Service)(nil)

type Options struct {
	AllowedOrigin      string
	RequestTimeout     time.Duration
	RateLimitPerMinute int
	Production         bool
}

type API struct {
	service  Service
	logger   *zap.Logger
	validate *validator.Validate
	opts     Options
}

func New(svc Service, logger *zap.Logger, opts Options) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.AllowedOrigin == "" {
		opts.AllowedOrigin = "*"
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}

	return &API{
		service:  svc,
		logger:   logger,
		validate: newValidator(),
		opts:     opts,
	}
}

func (a *API) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		a.logRequests,
		middleware.Recoverer,
		a.secureHeaders(),
		a.withCORS,
	)
	if a.opts.RateLimitPerMinute > 0 {
		r.Use(httprate.Limit(a.opts.RateLimitPerMinute, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				writeError(w, http.StatusTooManyRequests, errTooManyRequests)
			}),
		))
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, errRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMethodNotAllowed(w)
	})

	r.Get("/healthz", a.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(a.opts.RequestTimeout))

		r.Get("/", a.handleRoot)

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", a.handleCreateSale)
			r.Get("/", a.handleListSales)
			r.Get("/{id}", a.handleGetSale)
			r.Put("/{id}", a.handleUpdateSale)
			r.Delete("/{id}", a.handleDeleteSale)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Post("/", a.handleCreateStockItem)
			r.Get("/", a.handleListStockItems)
			r.Get("/low-stock", a.handleLowStock)
			r.Get("/stats", a.handleInventoryStats)
			r.Get("/{id}", a.handleGetStockItem)
			r.Put("/{id}", a.handleUpdateStockItem)
			r.Delete("/{id}", a.handleDeleteStockItem)
		})

		r.Get("/dashboard", a.handleDashboard)
		r.Get("/sales-chart", a.handleSalesChart)
	})

	return r
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.service.Ping(ctx); err != nil {
		a.logger.Warn("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"ok":    false,
			"error": "repository unavailable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: bannerMessage})
}
