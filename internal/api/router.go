package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agencydesk/crm-api/internal/api/handler"
	"github.com/agencydesk/crm-api/internal/api/middleware"
	"github.com/agencydesk/crm-api/internal/core/board"
	"github.com/agencydesk/crm-api/internal/core/domain"
	"github.com/agencydesk/crm-api/internal/core/ports"
	"github.com/agencydesk/crm-api/internal/core/service"
	"github.com/agencydesk/crm-api/internal/core/session"
	dbmongo "github.com/agencydesk/crm-api/internal/infrastructure/db/mongo"
	dbredis "github.com/agencydesk/crm-api/internal/infrastructure/db/redis"
)

// Deps carries the externally constructed collaborators the router wires
// into handlers.
type Deps struct {
	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	TokenTTL  time.Duration
	Notifier  ports.Notifier
	Notices   ports.NotificationRepository
	Logger    zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered and every
// protected route gated by the access policy.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("agencydesk"))

	// --- Dependencies ---
	sessions := session.NewManager(d.Logger)
	revoker := dbredis.NewRevocationList(d.Redis)

	authRepo := dbmongo.NewAuthRepository(d.DB)
	authService := service.NewAuthService(authRepo, d.JWTSecret, d.TokenTTL)

	taskRepo := dbmongo.NewTaskRepository(d.DB)
	taskService := service.NewTaskService(taskRepo, board.NewTracker(), d.Notifier, d.Logger)

	clientService := service.NewClientService(dbmongo.NewClientRepository(d.DB), d.Logger)
	ticketService := service.NewTicketService(dbmongo.NewTicketRepository(d.DB), d.Notifier, d.Logger)
	orderService := service.NewOrderService(dbmongo.NewOrderRepository(d.DB), d.Logger)
	invoiceService := service.NewInvoiceService(dbmongo.NewInvoiceRepository(d.DB), d.Logger)
	catalogueService := service.NewCatalogueService(
		dbmongo.NewOfferingRepository(d.DB), dbmongo.NewSubscriptionRepository(d.DB), d.Logger)

	authHandler := handler.NewAuthHandler(authService, sessions)
	navHandler := handler.NewNavigationHandler()
	taskHandler := handler.NewTaskHandler(taskService)
	clientHandler := handler.NewClientHandler(clientService)
	ticketHandler := handler.NewTicketHandler(ticketService)
	orderHandler := handler.NewOrderHandler(orderService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	catalogueHandler := handler.NewCatalogueHandler(catalogueService)
	landingHandler := handler.NewLandingHandler(d.Notices)

	e.Use(middleware.Session(authService, revoker, sessions))

	// Route requirement shorthands.
	anyUser := middleware.Require(domain.RequireNone)
	adminOnly := middleware.Require(domain.RequireAdmin)

	// --- Auth (no session required) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Session ---
	e.GET("/v1/session", authHandler.GetSession, anyUser)
	e.DELETE("/v1/session", authHandler.SignOut, anyUser)

	// --- Landing views ---
	e.GET("/", landingHandler.Root, anyUser)
	e.GET("/dashboard", landingHandler.Dashboard, adminOnly)
	e.GET("/portal", landingHandler.Portal, middleware.Require(domain.RequireClient))

	// --- Navigation ---
	e.GET("/v1/navigation", navHandler.List, anyUser)

	// --- Notifications ---
	e.GET("/v1/notifications", landingHandler.Notifications, anyUser)

	// --- Clients (tenants) ---
	clients := e.Group("/v1/clients", adminOnly)
	clients.POST("", clientHandler.Create)
	clients.GET("", clientHandler.List)
	clients.GET("/:id", clientHandler.Get)
	clients.PUT("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Delete)

	// --- Tasks and the board ---
	tasks := e.Group("/v1/tasks", adminOnly)
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)
	tasks.POST("/move", taskHandler.Move)

	boardGroup := e.Group("/v1/board", adminOnly)
	boardGroup.GET("", taskHandler.Board)
	boardGroup.POST("/gesture", taskHandler.DragStart)
	boardGroup.DELETE("/gesture", taskHandler.DragCancel)
	boardGroup.POST("/gesture/drop", taskHandler.DragEnd)

	// --- Tickets (any role; service scopes by tenant) ---
	tickets := e.Group("/v1/tickets", anyUser)
	tickets.POST("", ticketHandler.Raise)
	tickets.GET("", ticketHandler.List)
	tickets.GET("/:id", ticketHandler.Get)
	tickets.PUT("/:id/status", ticketHandler.SetStatus, adminOnly)

	// --- Orders ---
	orders := e.Group("/v1/orders", anyUser)
	orders.POST("", orderHandler.Create, adminOnly)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id/status", orderHandler.SetStatus, adminOnly)

	// --- Invoices ---
	invoices := e.Group("/v1/invoices", anyUser)
	invoices.POST("", invoiceHandler.Create, adminOnly)
	invoices.GET("", invoiceHandler.List)
	invoices.GET("/:id", invoiceHandler.Get)
	invoices.PUT("/:id/status", invoiceHandler.SetStatus, adminOnly)

	// --- Service catalogue and subscriptions ---
	services := e.Group("/v1/services", anyUser)
	services.GET("", catalogueHandler.ListOfferings)
	services.POST("", catalogueHandler.CreateOffering, adminOnly)

	subs := e.Group("/v1/subscriptions", anyUser)
	subs.GET("", catalogueHandler.ListSubscriptions)
	subs.POST("", catalogueHandler.Subscribe, adminOnly)
	subs.DELETE("/:id", catalogueHandler.Unsubscribe, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
