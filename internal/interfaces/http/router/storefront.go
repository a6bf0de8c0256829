package router

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/handler"
)

// Handlers bundles the handlers behind the storefront API
type Handlers struct {
	Catalog     *handler.CatalogHandler
	Cart        *handler.CartHandler
	Auth        *handler.AuthHandler
	Account     *handler.AccountHandler
	Checkout    *handler.CheckoutHandler
	Orders      *handler.OrderHandler
	System      *handler.SystemHandler
	Products    *handler.ProductHandler
	Categories  *handler.CategoryHandler
	AdminCarts  *handler.AdminCartHandler
	AdminOrders *handler.AdminOrderHandler
	Import      *handler.ProductImportHandler
	Reports     *handler.ReportHandler
}

// Guards are the middleware chains protecting customer and staff routes
type Guards struct {
	// Authenticated rejects requests without a valid access token
	Authenticated []gin.HandlerFunc
	// Staff runs after Authenticated on the admin routes
	Staff []gin.HandlerFunc
	// Credentials limits the routes that accept a password or refresh token
	Credentials []gin.HandlerFunc
}

func (g Guards) staff() []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(g.Authenticated)+len(g.Staff))
	chain = append(chain, g.Authenticated...)
	return append(chain, g.Staff...)
}

func with(chain []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(chain)+1)
	out = append(out, chain...)
	return append(out, h)
}

// StorefrontRoutes builds the route groups of the public, customer and admin API
func StorefrontRoutes(h Handlers, g Guards) []*DomainGroup {
	catalog := NewDomainGroup("catalog", "/catalog").
		GET("/products", h.Catalog.ListProducts).
		GET("/products/:slug", h.Catalog.GetProduct).
		GET("/categories", h.Catalog.ListCategories).
		GET("/categories/:slug/products", h.Catalog.ListByCategory).
		GET("/search", h.Catalog.Search)

	cart := NewDomainGroup("cart", "/cart").
		GET("", h.Cart.View).
		GET("/count", h.Cart.Count).
		POST("/items/:slug", h.Cart.Add).
		POST("/items/:slug/decrease", h.Cart.Decrease).
		DELETE("/items/:slug", h.Cart.Remove)

	auth := NewDomainGroup("auth", "/auth").
		POST("/register", with(g.Credentials, h.Account.Register)...).
		POST("/login", with(g.Credentials, h.Auth.Login)...).
		POST("/refresh", with(g.Credentials, h.Auth.RefreshToken)...).
		POST("/logout", with(g.Authenticated, h.Auth.Logout)...)

	account := NewDomainGroup("account", "/account").Use(g.Authenticated...).
		GET("", h.Account.MyAccount).
		PUT("", h.Account.EditProfile).
		POST("/password", with(g.Credentials, h.Auth.ChangePassword)...)

	checkout := NewDomainGroup("checkout", "/checkout").Use(g.Authenticated...).
		POST("", h.Checkout.Checkout)

	orders := NewDomainGroup("orders", "/orders").Use(g.Authenticated...).
		GET("", h.Orders.MyOrders).
		GET("/:number", h.Orders.OrderDetail).
		GET("/:number/complete", h.Orders.OrderComplete)

	system := NewDomainGroup("system", "/system").
		GET("/info", h.System.GetSystemInfo)

	admin := NewDomainGroup("admin", "/admin").Use(g.staff()...)
	admin.Group("products", "/products").
		GET("", h.Products.List).
		POST("", h.Products.Create).
		POST("/import", h.Import.Import).
		GET("/:id", h.Products.GetByID).
		PUT("/:id", h.Products.Update).
		DELETE("/:id", h.Products.Delete).
		POST("/:id/image/upload-url", h.Products.RequestImageUpload).
		PUT("/:id/image", h.Products.AttachImage).
		DELETE("/:id/image", h.Products.RemoveImage)
	admin.Group("categories", "/categories").
		GET("", h.Categories.List).
		POST("", h.Categories.Create).
		GET("/:id", h.Categories.GetByID).
		PUT("/:id", h.Categories.Update).
		DELETE("/:id", h.Categories.Delete)
	admin.Group("carts", "/carts").
		GET("", h.AdminCarts.List)
	admin.Group("cart-items", "/cart-items").
		PATCH("/:id", h.AdminCarts.SetItemActive)
	admin.Group("orders", "/orders").
		GET("", h.AdminOrders.List).
		POST("/cancel-and-restock", h.AdminOrders.CancelAndRestock).
		GET("/:id", h.AdminOrders.GetByID).
		POST("/:id/accept", h.AdminOrders.Accept).
		POST("/:id/complete", h.AdminOrders.Complete).
		POST("/:id/refund", h.AdminOrders.Refund).
		POST("/:id/cancel", h.AdminOrders.Cancel)
	admin.Group("reports", "/reports/sales").
		GET("/summary", h.Reports.GetSalesSummary).
		GET("/daily", h.Reports.GetDailySales).
		GET("/top-products", h.Reports.GetTopProducts)

	return []*DomainGroup{catalog, cart, auth, account, checkout, orders, system, admin}
}
