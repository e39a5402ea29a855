package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/juju/clock"
	"github.com/juju/loggo/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/georgemunganga/printa-dashboard/internal/config"
	"github.com/georgemunganga/printa-dashboard/internal/modules/auth"
	"github.com/georgemunganga/printa-dashboard/internal/modules/catalog"
	"github.com/georgemunganga/printa-dashboard/internal/modules/container"
	"github.com/georgemunganga/printa-dashboard/internal/modules/customer"
	"github.com/georgemunganga/printa-dashboard/internal/modules/dashboard"
	"github.com/georgemunganga/printa-dashboard/internal/modules/inventory"
	"github.com/georgemunganga/printa-dashboard/internal/modules/order"
	"github.com/georgemunganga/printa-dashboard/internal/modules/payment"
	"github.com/georgemunganga/printa-dashboard/internal/modules/prospect"
	"github.com/georgemunganga/printa-dashboard/internal/modules/upload"
	"github.com/georgemunganga/printa-dashboard/internal/modules/user"
	"github.com/georgemunganga/printa-dashboard/internal/rest"
	"github.com/georgemunganga/printa-dashboard/internal/session"
)

var logger = loggo.GetLogger("printa")

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Criticalf("loading configuration: %v", err)
		os.Exit(1)
	}
	if err := loggo.ConfigureLoggers(cfg.LogLevel); err != nil {
		logger.Criticalf("configuring loggers: %v", err)
		os.Exit(1)
	}

	// ── Upstream API client ─────────────────────────────────
	sessions, err := session.NewJarStore(cfg.CookieJarPath, cfg.APIURL, clock.WallClock)
	if err != nil {
		logger.Criticalf("opening cookie jar: %v", err)
		os.Exit(1)
	}
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	requester, err := rest.NewRequester(cfg.APIURL, httpClient, session.Credentials(sessions))
	if err != nil {
		logger.Criticalf("creating requester: %v", err)
		os.Exit(1)
	}
	client, err := rest.NewClient(rest.Config{Fetcher: requester, Clock: clock.WallClock})
	if err != nil {
		logger.Criticalf("creating API client: %v", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		client.Metrics(),
	)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// ── Identity ────────────────────────────────────────────
	auth.NewHandler(auth.NewService(auth.NewRESTRepository(client), sessions)).RegisterRoutes(router)

	userService := user.NewService(user.NewRESTRepository(client))
	user.NewHandler(userService, sessions).RegisterRoutes(router)

	// ── Catalog, inventory & containers ─────────────────────
	catalogService := catalog.NewService(catalog.NewRESTRepository(client))
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	inventory.NewHandler(inventory.NewService(inventory.NewRESTRepository(client))).RegisterRoutes(router)
	container.NewHandler(container.NewService(container.NewRESTRepository(client))).RegisterRoutes(router)

	// ── Orders & customers ──────────────────────────────────
	orderService := order.NewService(order.NewRESTRepository(client), catalogService)
	order.NewHandler(orderService).RegisterRoutes(router)

	customerService := customer.NewService(customer.NewRESTRepository(client))
	customer.NewHandler(customerService).RegisterRoutes(router)

	// ── Prospects ───────────────────────────────────────────
	prospectService := prospect.NewService(prospect.NewRESTRepository(client), catalogService, userService)
	prospect.NewHandler(prospectService, sessions).RegisterRoutes(router)

	// ── Documents & payments ────────────────────────────────
	gateway, err := upload.NewImgBBGateway(cfg.ImgBBKey, cfg.ImgBBURL, httpClient)
	if err != nil {
		logger.Criticalf("creating image gateway: %v", err)
		os.Exit(1)
	}
	uploadService := upload.NewService(gateway)
	upload.NewHandler(uploadService).RegisterRoutes(router)

	paymentService := payment.NewService(payment.NewRESTRepository(client), customerService, uploadService, clock.WallClock)
	payment.NewHandler(paymentService).RegisterRoutes(router)

	// ── Dashboard ───────────────────────────────────────────
	dashboard.NewHandler(dashboard.NewService(dashboard.NewRESTRepository(client))).RegisterRoutes(router)

	// ── Start Server ─────────────────────────────────────────
	logger.Infof("Printa dashboard API starting on :%s (upstream %s)", cfg.Port, cfg.APIURL)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Criticalf("server stopped: %v", err)
		os.Exit(1)
	}
}
