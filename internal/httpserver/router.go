package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Diego999991/ecommerce-api/internal/domain"
	authsvc "github.com/Diego999991/ecommerce-api/internal/service/auth"
	productsvc "github.com/Diego999991/ecommerce-api/internal/service/product"
)

// Deps bundles the services the handlers depend on. Each is a narrow
// interface so tests can substitute stubs.
type Deps struct {
	AuthSvc     AuthService
	ProductSvc  ProductService
	CartSvc     CartService
	CheckoutSvc CheckoutService
	OrderSvc    OrderService
}

type AuthService interface {
	Register(ctx context.Context, in authsvc.RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
}

type ProductService interface {
	List(ctx context.Context, category, search string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in productsvc.CreateInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in productsvc.UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type CartService interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.CartLine, error)
	UpdateItem(ctx context.Context, userID, lineID string, quantity int) (*domain.CartLine, error)
	RemoveItem(ctx context.Context, userID, lineID string) error
	Clear(ctx context.Context, userID string) error
}

type CheckoutService interface {
	Checkout(ctx context.Context, userID string) (*domain.Order, error)
}

type OrderService interface {
	Get(ctx context.Context, userID, orderID string) (*domain.Order, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context, status string) ([]domain.Order, error)
	SetStatus(ctx context.Context, orderID, status string) (*domain.Order, error)
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", registerHandler(deps.AuthSvc, logger))
	auth.POST("/login", loginHandler(deps.AuthSvc, logger))
	auth.GET("/profile", authMiddleware(deps.AuthSvc), profileHandler(deps.AuthSvc, logger))

	products := api.Group("/products")
	products.GET("", listProductsHandler(deps.ProductSvc, logger))
	products.GET("/:id", getProductHandler(deps.ProductSvc, logger))
	products.POST("", authMiddleware(deps.AuthSvc), adminMiddleware(), createProductHandler(deps.ProductSvc, logger))
	products.PUT("/:id", authMiddleware(deps.AuthSvc), adminMiddleware(), updateProductHandler(deps.ProductSvc, logger))
	products.DELETE("/:id", authMiddleware(deps.AuthSvc), adminMiddleware(), deleteProductHandler(deps.ProductSvc, logger))

	carts := api.Group("/cart", authMiddleware(deps.AuthSvc))
	carts.GET("", getCartHandler(deps.CartSvc, logger))
	carts.POST("/items", addCartItemHandler(deps.CartSvc, logger))
	carts.PUT("/items/:id", updateCartItemHandler(deps.CartSvc, logger))
	carts.DELETE("/items/:id", removeCartItemHandler(deps.CartSvc, logger))
	carts.DELETE("", clearCartHandler(deps.CartSvc, logger))

	orders := api.Group("/orders", authMiddleware(deps.AuthSvc))
	orders.POST("", checkoutHandler(deps.CheckoutSvc, logger))
	orders.GET("/my-orders", listUserOrdersHandler(deps.OrderSvc, logger))
	orders.GET("/:id", getOrderHandler(deps.OrderSvc, logger))
	orders.GET("", adminMiddleware(), listAllOrdersHandler(deps.OrderSvc, logger))
	orders.PATCH("/:id/status", adminMiddleware(), setOrderStatusHandler(deps.OrderSvc, logger))

	return router, nil
}
