// Package v1 wires API v1 routes, middleware and handlers.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"stockd/internal/domain/auth"
	"stockd/internal/domain/documents/grn"
	"stockd/internal/domain/documents/invoice"
	"stockd/internal/domain/forecast"
	"stockd/internal/domain/logistics/dropship"
	"stockd/internal/domain/logistics/transfer"
	"stockd/internal/domain/orders/purchase"
	"stockd/internal/domain/orders/sales"
	"stockd/internal/domain/registers/stock"
	"stockd/internal/infrastructure/http/v1/handlers"
	"stockd/internal/infrastructure/http/v1/middleware"
	"stockd/internal/infrastructure/storage/postgres"
	"stockd/pkg/logger"

	"stockd/internal/domain/catalogs/product"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Pool *pgxpool.Pool
	Log  *logger.Logger

	Auth     *auth.Service
	Products *product.Service
	Stocks   *stock.Service

	PurchaseOrders *purchase.Service
	SalesOrders    *sales.Service

	Notes    *grn.Service
	Invoices *invoice.Service

	Transfers     *transfer.Service
	DropShipments *dropship.Service
	Forecasts     *forecast.Service

	Audit *postgres.AuditService
}

// NewRouter builds the gin engine with all v1 routes registered.
func NewRouter(s Services) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Trace())
	r.Use(middleware.Logger(s.Log))
	r.Use(middleware.ErrorHandler())

	health := handlers.NewHealthHandler(s.Pool)
	r.GET("/health/live", health.Live)
	r.GET("/health/ready", health.Ready)

	authHandler := handlers.NewAuthHandler(s.Auth)

	api := r.Group("/api/v1")
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(s.Auth))

	protected.POST("/auth/register", middleware.RequireAdmin(), authHandler.Register)

	registerCRUD(protected, "/products", "product",
		handlers.NewProductHandler(s.Products))
	registerCRUD(protected, "/stocks", "stock",
		handlers.NewStockHandler(s.Stocks))
	registerCRUD(protected, "/purchase-orders", "purchase_order",
		handlers.NewPurchaseOrderHandler(s.PurchaseOrders))
	registerCRUD(protected, "/sales-orders", "sales_order",
		handlers.NewSalesOrderHandler(s.SalesOrders))
	registerCRUD(protected, "/goods-received-notes", "goods_received_note",
		handlers.NewGRNHandler(s.Notes))

	invoices := handlers.NewInvoiceHandler(s.Invoices)
	registerCRUD(protected, "/sales-invoices", "sales_invoice", invoices)
	protected.POST("/sales-invoices/:id/retry",
		middleware.RequirePermission("sales_invoice:update"), invoices.Retry)

	transfers := handlers.NewTransferHandler(s.Transfers)
	protected.POST("/stock-transfers",
		middleware.RequirePermission("stock_transfer:create"), transfers.Create)
	protected.GET("/stock-transfers",
		middleware.RequirePermission("stock_transfer:read"), transfers.List)
	protected.GET("/stock-transfers/:id",
		middleware.RequirePermission("stock_transfer:read"), transfers.Get)
	protected.DELETE("/stock-transfers/:id",
		middleware.RequirePermission("stock_transfer:delete"), transfers.Delete)

	shipments := handlers.NewDropShipmentHandler(s.DropShipments)
	registerCRUD(protected, "/drop-shipments", "drop_shipment", shipments)
	protected.POST("/drop-shipments/:id/ship",
		middleware.RequirePermission("drop_shipment:update"), shipments.MarkShipped)

	registerCRUD(protected, "/demand-forecasts", "demand_forecast",
		handlers.NewForecastHandler(s.Forecasts))

	audit := handlers.NewAuditHandler(s.Audit)
	protected.GET("/audit/:entity_type/:id", middleware.RequireAdmin(), audit.History)

	return r
}

// crudHandler is what every full resource handler exposes.
type crudHandler interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	List(c *gin.Context)
}

func registerCRUD(g *gin.RouterGroup, path, resource string, h crudHandler) {
	g.POST(path, middleware.RequirePermission(resource+":create"), h.Create)
	g.GET(path, middleware.RequirePermission(resource+":read"), h.List)
	g.GET(path+"/:id", middleware.RequirePermission(resource+":read"), h.Get)
	g.PUT(path+"/:id", middleware.RequirePermission(resource+":update"), h.Update)
	g.DELETE(path+"/:id", middleware.RequirePermission(resource+":delete"), h.Delete)
}
