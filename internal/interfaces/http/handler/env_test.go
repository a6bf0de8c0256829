package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	cartapp "github.com/storefront/backend/internal/application/cart"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/application/identity"
	reportapp "github.com/storefront/backend/internal/application/report"
	"github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/domain/catalog"
	domainidentity "github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testPassword = "Passw0rd123"

// testEnv is the storefront API over an in-memory SQLite database
type testEnv struct {
	t         *testing.T
	db        *gorm.DB
	router    *gin.Engine
	jwt       *auth.JWTService
	blacklist *auth.InMemoryTokenBlacklist
}

type envOptions struct {
	images catalogapp.ImageStorage
}

type envOption func(*envOptions)

// withImages turns on product images backed by store
func withImages(store catalogapp.ImageStorage) envOption {
	return func(o *envOptions) { o.images = store }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	var o envOptions
	for _, opt := range opts {
		opt(&o)
	}
	database, err := persistence.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), nil)
	require.NoError(t, err)
	sqlDB, err := database.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.DB.AutoMigrate(models.AllModels()...))
	db := database.DB

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "handler-test-secret-0123456789abcdef",
		RefreshSecret:          "handler-test-refresh-0123456789abcdef",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "storefront-test",
		MaxRefreshCount:        5,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	productRepo := persistence.NewGormProductRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	cartRepo := persistence.NewGormCartRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	txScope := persistence.NewGormTransactionScope(db)

	cartService := cartapp.NewCartService(cartRepo, productRepo, nil)
	orderService := trade.NewOrderService(orderRepo, txScope, nil)
	checkoutService := trade.NewCheckoutService(txScope, nil,
		trade.WithIdempotency(cache.NewInMemoryIdempotencyStore(), time.Hour))

	catalogHandler := NewCatalogHandler(catalogapp.NewStorefrontService(productRepo, categoryRepo, nil, nil))
	cartHandler := NewCartHandler(cartService)
	authHandler := NewAuthHandler(identity.NewAuthService(userRepo, jwtService, blacklist, identity.DefaultAuthServiceConfig(), nil))
	accountHandler := NewAccountHandler(identity.NewUserService(userRepo, nil))
	checkoutHandler := NewCheckoutHandler(cartService, checkoutService)
	orderHandler := NewOrderHandler(orderService)
	productHandler := NewProductHandler(catalogapp.NewProductService(productRepo, categoryRepo, o.images, nil))
	categoryHandler := NewCategoryHandler(catalogapp.NewCategoryService(categoryRepo))
	adminCartHandler := NewAdminCartHandler(cartService)
	adminOrderHandler := NewAdminOrderHandler(orderService)
	importHandler := NewProductImportHandler(catalogapp.NewProductImportService(productRepo, categoryRepo, nil))
	reportHandler := NewReportHandler(reportapp.NewReportService(persistence.NewGormSalesReportRepository(db), nil))

	requireAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
	})

	r := gin.New()
	r.Use(middleware.RequestID())
	api := r.Group("/api/v1", middleware.CartSession(middleware.DefaultCartSessionConfig()))

	api.GET("/catalog/products", catalogHandler.ListProducts)
	api.GET("/catalog/products/:slug", catalogHandler.GetProduct)
	api.GET("/catalog/categories", catalogHandler.ListCategories)
	api.GET("/catalog/categories/:slug/products", catalogHandler.ListByCategory)
	api.GET("/catalog/search", catalogHandler.Search)

	api.GET("/cart", cartHandler.View)
	api.GET("/cart/count", cartHandler.Count)
	api.POST("/cart/items/:slug", cartHandler.Add)
	api.POST("/cart/items/:slug/decrease", cartHandler.Decrease)
	api.DELETE("/cart/items/:slug", cartHandler.Remove)

	api.POST("/auth/register", accountHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.RefreshToken)

	authed := api.Group("", requireAuth)
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/account", accountHandler.MyAccount)
	authed.PUT("/account", accountHandler.EditProfile)
	authed.POST("/account/password", authHandler.ChangePassword)
	authed.POST("/checkout", checkoutHandler.Checkout)
	authed.GET("/orders", orderHandler.MyOrders)
	authed.GET("/orders/:number", orderHandler.OrderDetail)
	authed.GET("/orders/:number/complete", orderHandler.OrderComplete)

	admin := api.Group("/admin", requireAuth, middleware.RequireStaff())
	admin.GET("/products", productHandler.List)
	admin.POST("/products", productHandler.Create)
	admin.POST("/products/import", importHandler.Import)
	admin.GET("/products/:id", productHandler.GetByID)
	admin.PUT("/products/:id", productHandler.Update)
	admin.DELETE("/products/:id", productHandler.Delete)
	admin.POST("/products/:id/image/upload-url", productHandler.RequestImageUpload)
	admin.PUT("/products/:id/image", productHandler.AttachImage)
	admin.DELETE("/products/:id/image", productHandler.RemoveImage)
	admin.GET("/categories", categoryHandler.List)
	admin.POST("/categories", categoryHandler.Create)
	admin.PUT("/categories/:id", categoryHandler.Update)
	admin.DELETE("/categories/:id", categoryHandler.Delete)
	admin.GET("/carts", adminCartHandler.List)
	admin.PATCH("/cart-items/:id", adminCartHandler.SetItemActive)
	admin.GET("/orders", adminOrderHandler.List)
	admin.GET("/orders/:id", adminOrderHandler.GetByID)
	admin.POST("/orders/:id/accept", adminOrderHandler.Accept)
	admin.POST("/orders/:id/cancel", adminOrderHandler.Cancel)
	admin.POST("/orders/cancel-and-restock", adminOrderHandler.CancelAndRestock)
	admin.GET("/reports/sales/summary", reportHandler.GetSalesSummary)
	admin.GET("/reports/sales/daily", reportHandler.GetDailySales)
	admin.GET("/reports/sales/top-products", reportHandler.GetTopProducts)

	return &testEnv{t: t, db: db, router: r, jwt: jwtService, blacklist: blacklist}
}

func (e *testEnv) createCategory(name string) *catalog.Category {
	e.t.Helper()
	c, err := catalog.NewCategory(name, "", "")
	require.NoError(e.t, err)
	require.NoError(e.t, persistence.NewGormCategoryRepository(e.db).Save(context.Background(), c))
	return c
}

func (e *testEnv) createProduct(name, price string, stock int, category *catalog.Category) *catalog.Product {
	e.t.Helper()
	p, err := catalog.NewProduct(name, "", decimal.RequireFromString(price))
	require.NoError(e.t, err)
	require.NoError(e.t, p.SetStock(stock))
	if category != nil {
		p.SetCategory(&category.ID)
	}
	require.NoError(e.t, persistence.NewGormProductRepository(e.db).Save(context.Background(), p))
	return p
}

func (e *testEnv) reloadProduct(id uuid.UUID) *catalog.Product {
	e.t.Helper()
	p, err := persistence.NewGormProductRepository(e.db).FindByID(context.Background(), id)
	require.NoError(e.t, err)
	return p
}

func (e *testEnv) createUser(username string, staff bool) *domainidentity.User {
	e.t.Helper()
	u, err := domainidentity.NewUser(username, username+"@example.com", testPassword)
	require.NoError(e.t, err)
	if staff {
		u.GrantStaff()
	}
	require.NoError(e.t, persistence.NewGormUserRepository(e.db).Create(context.Background(), u))
	return u
}

// client is a browser: it keeps the cart cookie and an optional bearer token
type client struct {
	env     *testEnv
	session string
	token   string
}

func (e *testEnv) guest() *client {
	return &client{env: e}
}

func (e *testEnv) as(u *domainidentity.User) *client {
	e.t.Helper()
	pair, err := e.jwt.GenerateTokenPair(auth.GenerateTokenInput{UserID: u.ID, Username: u.Username, IsStaff: u.IsStaff})
	require.NoError(e.t, err)
	return &client{env: e, token: pair.AccessToken}
}

func (c *client) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	c.env.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.env.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: middleware.DefaultCartSessionConfig().CookieName, Value: c.session})
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	c.env.router.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.DefaultCartSessionConfig().CookieName {
			c.session = ck.Value
		}
	}
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) APIResponse[T] {
	t.Helper()
	var resp APIResponse[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decode[json.RawMessage](t, w)
	require.NotNil(t, resp.Error, w.Body.String())
	return resp.Error.Code
}

func persistenceSave(e *testEnv, p *catalog.Product) error {
	return persistence.NewGormProductRepository(e.db).Save(context.Background(), p)
}

func persistenceDecrement(e *testEnv, p *catalog.Product, quantity int) error {
	return persistence.NewGormProductRepository(e.db).DecrementStock(context.Background(), p.ID, quantity)
}
