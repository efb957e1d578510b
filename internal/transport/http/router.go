package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/vpetrakov/webshop/internal/auth"
	"github.com/vpetrakov/webshop/internal/handlers"
)

type Deps struct {
	Tokens         *auth.TokenService
	PageHandler    *handlers.PageHandler
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	CartHandler    *handlers.CartHandler
	SearchHandler  *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.GET("/", d.PageHandler.Index, d.Tokens.LoadIdentity)

	e.GET("/register", d.AuthHandler.RegisterForm)
	e.POST("/register", d.AuthHandler.Register)
	e.GET("/login", d.AuthHandler.LoginForm)
	e.POST("/login", d.AuthHandler.Login)
	e.GET("/logout", d.AuthHandler.Logout, d.Tokens.RequireAuthenticated)

	e.GET("/products", d.ProductHandler.GetProducts)
	e.GET("/products/:id", d.ProductHandler.GetProduct)
	if d.SearchHandler != nil {
		e.GET("/search", d.SearchHandler.Search)
	}

	admin := []echo.MiddlewareFunc{d.Tokens.RequireAdmin}
	e.GET("/add_product", d.ProductHandler.AddProductForm, admin...)
	e.POST("/add_product", d.ProductHandler.CreateProduct, admin...)
	e.GET("/edit_product/:id", d.ProductHandler.EditProductForm, admin...)
	e.POST("/edit_product/:id", d.ProductHandler.UpdateProduct, admin...)
	e.POST("/delete_product/:id", d.ProductHandler.DeleteProduct, admin...)

	authed := []echo.MiddlewareFunc{d.Tokens.RequireAuthenticated}
	e.GET("/cart", d.CartHandler.GetCart, authed...)
	e.POST("/add_to_cart/:id", d.CartHandler.AddToCart, authed...)
	e.POST("/remove_from_cart/:id", d.CartHandler.RemoveFromCart, authed...)
	e.POST("/checkout", d.CartHandler.Checkout, authed...)
}
