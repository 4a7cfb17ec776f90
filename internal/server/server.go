package server

import (
	"strings"

	"github.com/mhbagheri-99/e-commerce/internal/config"
	"github.com/mhbagheri-99/e-commerce/internal/handler"
	custommiddleware "github.com/mhbagheri-99/e-commerce/internal/middleware"
	"github.com/mhbagheri-99/e-commerce/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

type Server struct {
	echo            *echo.Echo
	adminAPIKey     string
	checkoutHandler *handler.CheckoutHandler
	webhookHandler  *handler.WebhookHandler
	orderHandler    *handler.OrderHandler
	adminHandler    *handler.AdminHandler
}

func NewServer(
	cfg *config.Config,
	checkoutService service.CheckoutService,
	catalogService service.CatalogService,
	fulfillmentService service.FulfillmentService,
	orderHistoryService service.OrderHistoryService,
	adminService service.AdminService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}
	e.Logger.SetLevel(logLevel(cfg.Log.Level))

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		adminAPIKey:     cfg.Admin.APIKey,
		checkoutHandler: handler.NewCheckoutHandler(checkoutService, catalogService),
		webhookHandler:  handler.NewWebhookHandler(fulfillmentService),
		orderHandler:    handler.NewOrderHandler(orderHistoryService),
		adminHandler:    handler.NewAdminHandler(adminService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- storefront --------
	api.GET("/products", s.checkoutHandler.ListProducts)
	api.GET("/products/:id", s.checkoutHandler.GetProduct)
	api.GET("/products/:id/coupon", s.checkoutHandler.PreviewCoupon)
	api.POST("/products/:id/purchase", s.checkoutHandler.Purchase)
	api.GET("/purchase-success", s.checkoutHandler.PurchaseSuccess)
	api.POST("/orders/email-history", s.orderHandler.EmailOrderHistory)

	// -------- provider webhooks --------
	s.echo.POST("/webhooks/payment", s.webhookHandler.HandlePaymentWebhook)

	// -------- admin back office --------
	admin := s.echo.Group("/admin", custommiddleware.AdminKey(s.adminAPIKey))
	admin.POST("/products", s.adminHandler.CreateProduct)
	admin.GET("/products", s.adminHandler.ListProducts)
	admin.PUT("/products/:id", s.adminHandler.UpdateProduct)
	admin.PATCH("/products/:id/availability", s.adminHandler.SetProductAvailability)
	admin.DELETE("/products/:id", s.adminHandler.DeleteProduct)

	admin.POST("/coupons", s.adminHandler.CreateCoupon)
	admin.GET("/coupons", s.adminHandler.ListCoupons)
	admin.PATCH("/coupons/:id/active", s.adminHandler.SetCouponActive)
	admin.DELETE("/coupons/:id", s.adminHandler.DeleteCoupon)

	admin.GET("/customers", s.adminHandler.ListCustomers)
	admin.DELETE("/customers/:id", s.adminHandler.DeleteCustomer)
}

func logLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
