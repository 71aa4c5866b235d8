package routes

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "marketplace_billing/docs" // This will be auto-generated
	"marketplace_billing/internal/adapter/http/handlers"
	"marketplace_billing/internal/adapter/persistence/repository"
	"marketplace_billing/internal/domain/entities"
	"marketplace_billing/internal/infrastructure/database"
	"marketplace_billing/internal/infrastructure/notifications"
	"marketplace_billing/internal/infrastructure/payments"
	"marketplace_billing/internal/infrastructure/receipts"
	"marketplace_billing/internal/usecase"
	"marketplace_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.New()

const (
	defaultPort       = "8080"
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// Run will start the server
func Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes(ctx)

	port := getenvDefault("PORT", defaultPort)
	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
	srv := &http.Server{Handler: router, ReadHeaderTimeout: readHeaderTimeout}
	if err := serve(ctx, srv, ln); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

// serve runs srv on ln until ctx is done, then drains in-flight requests for
// at most shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[bootstrap] listening addr=%s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("[bootstrap] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Printf("[bootstrap] server stopped")
	return nil
}

func getRoutes(ctx context.Context) {
	ddb := database.ConnectDynamoDB(ctx)

	bookingRepo := repository.NewBookingDynamoRepository(ddb)
	receiptRepo := repository.NewReceiptDynamoRepository(ddb)

	var (
		processor     interfaces.IPaymentProcessor
		webhookParser handlers.WebhookEventParser
	)
	stripeGateway, err := payments.NewStripeGateway(os.Getenv("STRIPE_SECRET_KEY"), os.Getenv("STRIPE_WEBHOOK_SECRET"))
	if err != nil {
		log.Printf("[bootstrap] stripe gateway not configured: %v", err)
	} else {
		processor = stripeGateway
		if os.Getenv("STRIPE_WEBHOOK_SECRET") != "" {
			webhookParser = stripeGateway
		}
	}

	var mailer interfaces.IEmailSender
	sendgridMailer, err := notifications.NewSendGridMailer(notifications.SendGridConfigFromEnv())
	if err != nil {
		log.Printf("[bootstrap] email relay not configured: %v", err)
	} else {
		mailer = sendgridMailer
	}

	receiptCfg := usecase.ReceiptConfig{
		Strategy:      entities.ReceiptStrategy(strings.ToLower(getenvDefault("RECEIPT_STRATEGY", string(entities.ReceiptStrategyInvoice)))),
		SendPayerCopy: envFlag("RECEIPT_SEND_PAYER_COPY"),
	}
	receiptUseCase, err := usecase.NewReceiptUseCase(receiptCfg, processor, bookingRepo, receiptRepo, receipts.NewPDFRenderer(), mailer)
	if err != nil {
		log.Fatalf("invalid receipt configuration: %v", err)
	}
	log.Printf("[bootstrap] receipt strategy=%s payer_copy=%t", receiptCfg.Strategy, receiptCfg.SendPayerCopy)

	paymentIntentUseCase := usecase.NewPaymentIntentUseCase(processor, bookingRepo)
	bookingUseCase := usecase.NewBookingUseCase(bookingRepo)

	paymentIntentHandler := handlers.NewPaymentIntentHandler(paymentIntentUseCase)
	receiptHandler := handlers.NewReceiptHandler(receiptUseCase)
	bookingHandler := handlers.NewBookingHandler(bookingUseCase)

	var webhookHandler *handlers.StripeWebhookHandler
	if webhookParser != nil {
		webhookHandler = handlers.NewStripeWebhookHandler(webhookParser, receiptUseCase)
	} else {
		log.Printf("[bootstrap] STRIPE_WEBHOOK_SECRET not set; stripe webhook route disabled")
	}

	if envFlag("BOOKING_STREAM_ENABLED") {
		startBookingListener(ctx, ddb, receiptUseCase)
	}

	// Public routes
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, paymentIntentHandler, receiptHandler, webhookHandler)
	addBookingRoutes(v1, bookingHandler)

	api := router.Group("/api")
	addCompatibilityRoutes(api, paymentIntentHandler, receiptHandler)
}

// startBookingListener subscribes the receipt dispatcher to the bookings
// table stream for the lifetime of ctx.
func startBookingListener(ctx context.Context, ddb *dynamodb.Client, receiptUseCase usecase.IReceiptUseCase) {
	table := repository.BookingsTableName()
	streamARN, err := database.ResolveStreamARN(ctx, ddb, table)
	if err != nil {
		log.Printf("[bootstrap] booking stream disabled table=%s err=%v", table, err)
		return
	}
	streams, err := database.ConnectDynamoDBStreams(ctx)
	if err != nil {
		log.Printf("[bootstrap] booking stream client failed err=%v", err)
		return
	}

	interval, err := time.ParseDuration(getenvDefault("BOOKING_STREAM_POLL_INTERVAL", "2s"))
	if err != nil {
		log.Printf("[bootstrap] invalid BOOKING_STREAM_POLL_INTERVAL; using default err=%v", err)
		interval = 0
	}

	var source interfaces.IBookingEventSource = database.NewBookingStreamListener(streams, streamARN, repository.BookingFromItem, interval)
	go func() {
		log.Printf("[bootstrap] booking stream listener started stream_arn=%s", streamARN)
		if err := source.Subscribe(ctx, receiptUseCase.OnBookingChange); err != nil && ctx.Err() == nil {
			log.Printf("[bootstrap] booking stream listener stopped err=%v", err)
		}
	}()
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type", "Stripe-Signature"},
		MaxAge:          12 * time.Hour,
	}))
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envFlag(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
