package router

import (
	"github.com/gin-gonic/gin"

	"github.com/kishorkishor/storefront-backend/config"
	"github.com/kishorkishor/storefront-backend/internal/app/controller"
	"github.com/kishorkishor/storefront-backend/internal/middleware"
)

type Router struct {
	productController  *controller.ProductController
	cartController     *controller.CartController
	wishlistController *controller.WishlistController
	badgeController    *controller.BadgeController
	sessionMiddleware  *middleware.SessionMiddleware
	config             *config.Config
}

func NewRouter(
	productController *controller.ProductController,
	cartController *controller.CartController,
	wishlistController *controller.WishlistController,
	badgeController *controller.BadgeController,
	sessionMiddleware *middleware.SessionMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		productController:  productController,
		cartController:     cartController,
		wishlistController: wishlistController,
		badgeController:    badgeController,
		sessionMiddleware:  sessionMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Storefront API is running",
		})
	})

	session := r.sessionMiddleware.Resolve()

	router.GET("/ws/badges", session, r.badgeController.Connect)

	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/slug/:slug", r.productController.GetProductBySlug)
			products.GET("/:id", r.productController.GetProduct)
		}

		cart := v1.Group("/cart", session)
		{
			cart.GET("", r.cartController.GetCart)
			cart.DELETE("", r.cartController.ClearCart)
			cart.GET("/count", r.cartController.GetCartCount)
			cart.GET("/total", r.cartController.GetCartTotal)
			cart.POST("/items", r.cartController.AddToCart)
			cart.PUT("/items/:product_id", r.cartController.UpdateCartItem)
			cart.DELETE("/items/:product_id", r.cartController.RemoveFromCart)
		}

		wishlist := v1.Group("/wishlist", session)
		{
			wishlist.GET("", r.wishlistController.GetWishlist)
			wishlist.DELETE("", r.wishlistController.ClearWishlist)
			wishlist.GET("/count", r.wishlistController.GetWishlistCount)
			wishlist.GET("/contains/:product_id", r.wishlistController.CheckWishlist)
			wishlist.POST("/items", r.wishlistController.AddToWishlist)
			wishlist.POST("/toggle", r.wishlistController.ToggleWishlist)
			wishlist.DELETE("/items/:product_id", r.wishlistController.RemoveFromWishlist)
		}

		admin := v1.Group("/admin")
		{
			admin.GET("/products", r.productController.ListAllProducts)
			admin.GET("/products/export", r.productController.ExportProducts)
			admin.POST("/products", r.productController.CreateProduct)
			admin.PUT("/products/:id", r.productController.UpdateProduct)
			admin.DELETE("/products/:id", r.productController.DeleteProduct)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
