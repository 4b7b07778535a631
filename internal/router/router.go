package router

import (
	"github.com/gin-gonic/gin"

	"github.com/neonstore/neonstore-backend/config"
	"github.com/neonstore/neonstore-backend/internal/app/controller"
	"github.com/neonstore/neonstore-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	productController  *controller.ProductController
	cartController     *controller.CartController
	orderController    *controller.OrderController
	wishlistController *controller.WishlistController
	addressController  *controller.AddressController
	uploadController   *controller.UploadController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	wishlistController *controller.WishlistController,
	addressController *controller.AddressController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		productController:  productController,
		cartController:     cartController,
		orderController:    orderController,
		wishlistController: wishlistController,
		addressController:  addressController,
		uploadController:   uploadController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "NEONSTORE API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetProfile)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetAllProducts)
			products.GET("/:id", r.productController.GetProductByID)

			products.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.productController.CreateProduct,
			)
			products.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.productController.UpdateProduct,
			)
			products.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.productController.DeleteProduct,
			)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/:id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("", r.orderController.GetOrders)
			orders.GET("/:id", r.orderController.GetOrderByID)
			orders.POST("", r.orderController.Checkout)

			orders.PUT("/:id/status",
				r.authMiddleware.RequireRole("admin"),
				r.orderController.UpdateOrderStatus,
			)
		}

		wishlist := v1.Group("/wishlist")
		wishlist.Use(r.authMiddleware.Authenticate())
		{
			wishlist.GET("", r.wishlistController.GetWishlist)
			wishlist.GET("/:product_id", r.wishlistController.CheckWishlist)
			wishlist.POST("/toggle", r.wishlistController.ToggleWishlist)
			wishlist.DELETE("/:product_id", r.wishlistController.RemoveFromWishlist)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			upload.POST("/product-image", r.uploadController.PresignProductImage)
		}

		addresses := v1.Group("/addresses")
		addresses.Use(r.authMiddleware.Authenticate())
		{
			addresses.GET("", r.addressController.ListAddresses)
			addresses.POST("", r.addressController.CreateAddress)
			addresses.PUT("/:id", r.addressController.UpdateAddress)
			addresses.DELETE("/:id", r.addressController.DeleteAddress)
			addresses.PUT("/:id/default", r.addressController.SetDefaultAddress)
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
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
