package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/powersupps/storefront/internal/auth"
	"github.com/powersupps/storefront/internal/cart"
	"github.com/powersupps/storefront/internal/catalog"
	"github.com/powersupps/storefront/internal/checkout"
	"github.com/powersupps/storefront/internal/contact"
	"github.com/powersupps/storefront/internal/messaging"
	"github.com/powersupps/storefront/internal/notify"
	"github.com/powersupps/storefront/internal/orders"
	"github.com/powersupps/storefront/internal/report"
	"github.com/powersupps/storefront/internal/review"
	"github.com/powersupps/storefront/internal/session"
	"github.com/powersupps/storefront/internal/telemetry"
)

const serviceVersion = "0.1.0"

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	postgresURL := os.Getenv("POSTGRES_URL")
	if postgresURL == "" {
		logger.Error("POSTGRES_URL environment variable is required")
		os.Exit(1)
	}

	postmarkToken := os.Getenv("POSTMARK_SERVER_TOKEN")
	if postmarkToken == "" {
		logger.Error("POSTMARK_SERVER_TOKEN environment variable is required")
		os.Exit(1)
	}

	emailSender := os.Getenv("EMAIL_SENDER")
	if emailSender == "" {
		logger.Error("EMAIL_SENDER environment variable is required")
		os.Exit(1)
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = emailSender
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}

	tel, err := telemetry.Init(ctx, "storefront", serviceVersion)
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() { _ = tel.Shutdown(ctx) }()

	db, err := telemetry.OpenDB("postgres", postgresURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	var publisher checkout.EventPublisher
	if kafkaBrokers := os.Getenv("KAFKA_BROKERS"); kafkaBrokers != "" {
		producer := messaging.NewProducer(strings.Split(kafkaBrokers, ","), "order.placed")
		defer func() { _ = producer.Close() }()
		publisher = producer
	}

	mailer := notify.NewPostmark(postmarkToken, emailSender)
	bestEffort := notify.NewBestEffort(mailer, logger)

	sessions := session.NewStore()

	catalogRepo := catalog.NewRepository(db)
	ordersRepo := orders.NewRepository(db)
	usersRepo := auth.NewRepository(db)
	reviewsRepo := review.NewRepository(db)
	aggregator := report.NewAggregator(db)

	checkoutService := checkout.NewService(usersRepo, catalogRepo, ordersRepo, bestEffort, publisher, logger)

	catalogHandler := catalog.NewHandler(catalogRepo, logger)
	cartHandler := cart.NewHandler(catalogRepo, logger)
	checkoutHandler := checkout.NewHandler(checkoutService, logger)
	ordersHandler := orders.NewHandler(ordersRepo, logger)
	reviewHandler := review.NewHandler(reviewsRepo, catalogRepo, logger)
	reportHandler := report.NewHandler(aggregator, report.BarChartRenderer{}, mailer, adminEmail, logger)
	authHandler := auth.NewHandler(usersRepo, mailer, adminEmail, baseURL, logger)
	contactHandler := contact.NewHandler(mailer, adminEmail, logger)

	mux := http.NewServeMux()

	route := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, telemetry.WithHTTPRoute(h))
	}

	route("POST /register", authHandler.HandleRegister)
	route("POST /login", authHandler.HandleLogin)
	route("POST /logout", authHandler.HandleLogout)
	route("POST /recover", authHandler.HandleRecover)

	route("GET /products", catalogHandler.HandleList)
	route("GET /products/{id}", catalogHandler.HandleGet)
	route("POST /products", auth.Require(catalogHandler.HandleCreate))
	route("DELETE /products/{id}", auth.Require(catalogHandler.HandleDelete))

	route("GET /products/{id}/reviews", reviewHandler.HandleList)
	route("POST /products/{id}/reviews", auth.Require(reviewHandler.HandleSubmit))

	route("GET /cart", auth.Require(cartHandler.HandleView))
	route("POST /cart/items/{productID}", auth.Require(cartHandler.HandleAdd))
	route("POST /cart/items/{productID}/quantity", cartHandler.HandleChangeQuantity)
	route("DELETE /cart/items/{productID}", cartHandler.HandleRemove)
	route("POST /cart/clear", cartHandler.HandleClear)
	route("POST /cart/shipping", cartHandler.HandleQuote)

	route("POST /checkout", checkoutHandler.HandleCheckout)

	route("GET /orders", auth.Require(ordersHandler.HandleList))
	route("GET /orders/{id}", auth.Require(ordersHandler.HandleGet))

	route("GET /admin/report", auth.Require(reportHandler.HandleReport))
	route("GET /admin/report/chart", auth.Require(reportHandler.HandleChart))
	route("POST /admin/report/email", auth.Require(reportHandler.HandleEmailReport))

	route("POST /contact", contactHandler.HandleSubmit)

	mux.Handle("GET /metrics", tel.MetricsHandler)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := session.Middleware(sessions)(mux)

	server := &http.Server{
		Addr: ":" + port,
		Handler: otelhttp.NewHandler(handler, "storefront",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting storefront", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
