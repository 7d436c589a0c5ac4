package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"campaignpulse/internal/config"
	"campaignpulse/internal/errors"
	"campaignpulse/internal/files"
	"campaignpulse/internal/infrastructure"
	customMiddleware "campaignpulse/internal/middleware"
	"campaignpulse/internal/services"
	handlers "campaignpulse/internal/transport/http"
	ws "campaignpulse/internal/websocket"
	"campaignpulse/pkg/contracts"
)

const (
	Version = contracts.Version
	AppName = "CampaignPulse"
)

// Application is the dependency container for the dashboard server.
type Application struct {
	Config *config.Config
	Router *chi.Mux
	Server *http.Server
	Logger *slog.Logger

	Hub       *ws.Hub
	Dataset   *services.DatasetService
	Dashboard *services.DashboardService
	Export    *services.ExportService
	Health    *services.HealthService

	OTelProviders *infrastructure.OTelProviders
	metrics       *infrastructure.BusinessMetrics
	systemMetrics *infrastructure.SystemMetricsCollector
	errorHandler  *errors.ErrorHandler

	watchCancel context.CancelFunc
}

// NewApplication loads the configuration and builds the full dependency
// graph.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return NewApplicationWithConfig(cfg, logger)
}

// NewApplicationWithConfig builds the application from an already-loaded
// configuration. Tests use it to inject temp-dir configs.
func NewApplicationWithConfig(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port))

	app := &Application{
		Config: cfg,
		Logger: logger,
	}

	if cfg.Observability.Enabled {
		providers, err := infrastructure.InitializeOTel(otelConfig(cfg), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
		}
		app.OTelProviders = providers

		metrics, err := infrastructure.CreateBusinessMetrics(providers.Meter)
		if err != nil {
			logger.Warn("business metrics unavailable", slog.String("error", err.Error()))
		} else {
			app.metrics = metrics
		}

		collector, err := infrastructure.NewSystemMetricsCollector(providers.Meter, 30*time.Second)
		if err != nil {
			logger.Warn("system metrics unavailable", slog.String("error", err.Error()))
		} else {
			app.systemMetrics = collector
		}
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// otelConfig maps the observability section onto the OTel initializer.
func otelConfig(cfg *config.Config) *infrastructure.OTelConfig {
	otel := infrastructure.DefaultOTelConfig()
	if cfg.Observability.ServiceName != "" {
		otel.ServiceName = cfg.Observability.ServiceName
	}
	otel.ServiceVersion = Version
	if !cfg.Observability.TraceStdout {
		otel.TraceExporter = "none"
	}
	return otel
}

func (a *Application) initializeServices() error {
	a.errorHandler = errors.NewErrorHandler(a.Logger, a.Config.Logging.Development)

	hub := ws.NewHub(a.Logger)
	hub.Start()
	a.Hub = hub

	a.Dataset = services.NewDatasetService(
		a.Config.GetDatasetPath(),
		a.Config.Dataset.ReloadDebounce,
		a.Config.Dataset.Watch,
		a.Logger,
		services.WithDatasetHub(hub),
		services.WithDatasetMetrics(a.metrics),
	)

	a.Dashboard = services.NewDashboardService(a.Dataset, a.metrics, a.Logger)

	exportOpts := []services.ExportOption{
		services.WithExportHub(hub),
		services.WithExportMetrics(a.metrics),
	}
	if paths, err := config.GetPaths(); err == nil {
		exportOpts = append(exportOpts, services.WithExportManager(files.NewManager(paths)))
	}
	a.Export = services.NewExportService(a.Dataset, a.Dashboard, a.Config.Export.CSVBOM, a.Logger, exportOpts...)

	a.Health = services.NewHealthService(Version, contracts.BuildTime, a.Config.Paths, a.Dataset, hub, a.Logger)

	return nil
}

// setupRouter builds the chi router. The websocket and Prometheus
// endpoints stay outside the heavy middleware group: the timeout and
// compression wrappers break connection hijacking, and /metrics scrapes
// should not count against the rate limit.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	healthHandler := handlers.NewHealthHandler(a.Health, a.Logger)
	wsHandler := handlers.NewWSHandler(a.Hub, a.Config.WebSocket, a.Config.Security.AllowedOrigins, a.Logger)

	// Routes outside the heavy group still get panic recovery.
	recovery := errors.RecoveryMiddleware(a.errorHandler)

	r.With(customMiddleware.WebSocketTraceMiddleware(a.Logger), recovery).Handle("/ws", wsHandler)
	r.With(recovery).Get("/healthz", healthHandler.Liveness)

	if a.OTelProviders != nil && a.OTelProviders.PrometheusHTTP != nil {
		r.With(recovery).Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	r.Group(func(r chi.Router) {
		if a.OTelProviders != nil {
			if otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders); err != nil {
				a.Logger.Error("failed to create OpenTelemetry middleware", slog.String("error", err.Error()))
			} else {
				r.Use(otelMiddleware.Handler)
			}
		}
		if a.metrics != nil {
			r.Use(customMiddleware.BusinessMetricsMiddleware(a.metrics))
		}

		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(a.corsConfig()))
		}
		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r)
		a.setupPageRoutes(r)
	})

	r.NotFound(a.errorHandler.NotFound)
	r.MethodNotAllowed(a.errorHandler.MethodNotAllowed)

	a.Router = r
}

func (a *Application) setupAPIRoutes(r chi.Router) {
	validation := customMiddleware.NewValidationMiddleware(a.Logger, a.errorHandler)

	dashboardHandler := handlers.NewDashboardHandler(a.Dashboard, a.Logger, a.errorHandler)
	datasetHandler := handlers.NewDatasetHandler(a.Dataset, a.Logger, a.errorHandler)
	exportHandler := handlers.NewExportHandler(a.Export, validation, a.Logger, a.errorHandler)
	healthHandler := handlers.NewHealthHandler(a.Health, a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))
		r.Use(validation.ValidateRequest)

		r.Mount("/health", healthHandler.Routes())
		r.Mount("/dataset", datasetHandler.Routes())
		r.Mount("/export", exportHandler.Routes())
		r.Mount("/", dashboardHandler.Routes())
	})
}

func (a *Application) setupPageRoutes(r chi.Router) {
	pageHandler := handlers.NewPageHandler(a.Dashboard, a.Dataset, a.metrics, a.Logger, a.errorHandler)

	r.Get("/", pageHandler.Home)
	r.Get("/charts/{name}", pageHandler.Chart)
}

func (a *Application) corsConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
			"X-Requested-With",
		},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
		Logger:           a.Logger,
	}
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start loads the dataset, starts the watcher and the HTTP server. A
// missing dataset is not fatal: the API answers 422 until a file shows up
// and the watcher reloads it.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	if info, err := a.Dataset.Load(ctx); err != nil {
		a.Logger.WarnContext(ctx, "initial dataset load failed",
			slog.String("path", a.Config.GetDatasetPath()),
			slog.String("error", err.Error()))
	} else {
		a.Logger.InfoContext(ctx, "dataset loaded",
			slog.String("path", info.Path),
			slog.Int("rows", info.Rows),
			slog.Int("skipped", info.SkippedRows))
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	a.watchCancel = watchCancel
	if err := a.Dataset.StartWatching(watchCtx); err != nil {
		a.Logger.WarnContext(ctx, "dataset watcher unavailable", slog.String("error", err.Error()))
	}

	if a.systemMetrics != nil {
		go a.systemMetrics.Start(watchCtx)
	}

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	url := fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)
	a.Logger.InfoContext(ctx, "application started", slog.String("address", url))

	if a.Config.Server.OpenBrowser {
		go a.openBrowserWhenReady(ctx, url)
	}

	return nil
}

// Stop drains the server and background services within the shutdown
// timeout.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.watchCancel != nil {
		a.watchCancel()
	}
	if err := a.Dataset.Close(); err != nil {
		a.Logger.WarnContext(ctx, "dataset service close error", slog.String("error", err.Error()))
	}
	a.Hub.Stop()

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run starts the application and blocks until an interrupt, then shuts
// down gracefully.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case sig := <-sigChan:
		a.Logger.InfoContext(ctx, "received signal", slog.String("signal", sig.String()))
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}

// openBrowserWhenReady polls the liveness endpoint and opens the default
// browser once the server answers.
func (a *Application) openBrowserWhenReady(ctx context.Context, url string) {
	healthURL := url + "/healthz"

	for i := 0; i < 10; i++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		resp, err := http.Get(healthURL)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				if err := openBrowser(url); err != nil {
					a.Logger.WarnContext(ctx, "failed to open browser",
						slog.String("url", url),
						slog.String("error", err.Error()))
					fmt.Printf("\n%s is running. Open %s in your browser.\n\n", AppName, url)
				}
				return
			}
		}

		time.Sleep(500 * time.Millisecond)
	}

	a.Logger.WarnContext(ctx, "server did not become ready for browser opening", slog.String("url", url))
}

// openBrowser opens the default browser to the given URL.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
