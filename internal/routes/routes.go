package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bazario_back_end/internal/config"
	"bazario_back_end/internal/handlers"
	"bazario_back_end/internal/middleware"
)

// Handlers regroupe les handlers de chaque surface de ressource.
type Handlers struct {
	Shop         *handlers.ShopHandler
	User         *handlers.UserHandler
	Product      *handlers.ProductHandler
	Coupon       *handlers.CouponHandler
	Payment      *handlers.PaymentHandler
	Order        *handlers.OrderHandler
	Conversation *handlers.ConversationHandler
	Message      *handlers.MessageHandler
}

// Register branche la table de routage /api/v2, le CORS avec credentials et
// le service des fichiers statiques.
func Register(r *gin.Engine, cfg *config.Config, auth *middleware.Auth, h Handlers) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.ErrorHandler())

	r.Static("/uploads", cfg.UploadsDir)

	api := r.Group("/api/v2")

	seller := api.Group("/seller")
	{
		seller.POST("/create-shop", h.Shop.CreateShop)
		seller.POST("/activation", h.Shop.Activation)
		seller.POST("/login-seller", h.Shop.LoginSeller)
		seller.GET("/getSeller", auth.IsSeller(), h.Shop.GetSeller)
		seller.GET("/logout", h.Shop.Logout)
		seller.GET("/get-shop-info/:id", h.Shop.GetShopInfo)
		seller.PUT("/update-shop-avatar", auth.IsSeller(), h.Shop.UpdateShopAvatar)
		seller.PUT("/update-seller-info", auth.IsSeller(), h.Shop.UpdateSellerInfo)
	}

	user := api.Group("/user")
	{
		user.POST("/create-user", h.User.CreateUser)
		user.POST("/activation", h.User.Activation)
		user.POST("/login-user", h.User.LoginUser)
		user.GET("/getuser", auth.IsAuthenticated(), h.User.GetUser)
		user.GET("/logout", h.User.Logout)
	}

	product := api.Group("/product")
	{
		product.POST("/create-product", h.Product.CreateProduct)
		product.GET("/get-all-products-shop/:id", h.Product.GetAllProductsShop)
		product.GET("/get-all-products", h.Product.GetAllProducts)
		product.DELETE("/delete-shop-product/:id", h.Product.DeleteProduct)
		product.PUT("/create-new-review", auth.IsAuthenticated(), h.Product.CreateReview)
	}

	coupon := api.Group("/coupon")
	{
		coupon.POST("/create-coupon-code", auth.IsSeller(), h.Coupon.CreateCoupon)
		coupon.GET("/get-coupon/:id", auth.IsSeller(), h.Coupon.GetCoupons)
		coupon.DELETE("/delete-coupon/:id", auth.IsSeller(), h.Coupon.DeleteCoupon)
		coupon.GET("/get-coupon-value/:name", h.Coupon.GetCouponValue)
	}

	payment := api.Group("/payment")
	{
		payment.POST("/process", h.Payment.Process)
		payment.GET("/stripeapikey", h.Payment.StripeAPIKey)
	}

	order := api.Group("/order")
	{
		order.POST("/create-order", h.Order.CreateOrder)
		order.GET("/get-all-orders/:userId", h.Order.GetAllOrders)
		order.GET("/get-seller-all-orders/:shopId", h.Order.GetSellerAllOrders)
	}

	conversation := api.Group("/conversation")
	{
		conversation.POST("/create-new-conversation", h.Conversation.CreateConversation)
		conversation.GET("/get-all-conversation-seller/:id", auth.IsSeller(), h.Conversation.GetSellerConversations)
		conversation.GET("/get-all-conversation-user/:id", auth.IsAuthenticated(), h.Conversation.GetUserConversations)
		conversation.PUT("/update-last-message/:id", h.Conversation.UpdateLastMessage)
	}

	message := api.Group("/message")
	{
		message.POST("/create-new-message", h.Message.CreateMessage)
		message.GET("/get-all-messages/:id", h.Message.GetAllMessages)
	}
}
