package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"bazario_back_end/internal/auth"
	"bazario_back_end/internal/cache"
	"bazario_back_end/internal/config"
	"bazario_back_end/internal/database"
	"bazario_back_end/internal/handlers"
	"bazario_back_end/internal/middleware"
	"bazario_back_end/internal/repository/mongodb"
	"bazario_back_end/internal/routes"
	"bazario_back_end/internal/services"
	"bazario_back_end/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Configuration invalide : ", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("❌ Échec connexion MongoDB : ", err)
	}
	if err := database.EnsureIndexes(db); err != nil {
		log.Fatal("❌ Échec création des index : ", err)
	}

	redisCache := cache.Connect(cfg)

	uploader, err := services.NewMinioUploader(cfg)
	if err != nil {
		log.Fatal("❌ Échec connexion MinIO : ", err)
	}

	mailer := utils.NewSMTPMailer(cfg)
	payments := services.NewPaymentService(cfg)
	tokens := auth.NewTokenManager(cfg)

	shops := mongodb.NewShopStore(db)
	users := mongodb.NewUserStore(db)
	products := mongodb.NewProductStore(db)
	orders := mongodb.NewOrderStore(db)
	coupons := mongodb.NewCouponStore(db)
	conversations := mongodb.NewConversationStore(db)
	messages := mongodb.NewMessageStore(db)

	authMiddleware := middleware.NewAuth(tokens, users, shops)

	r := gin.Default()
	routes.Register(r, cfg, authMiddleware, routes.Handlers{
		Shop:         handlers.NewShopHandler(cfg, tokens, shops, uploader, mailer, redisCache),
		User:         handlers.NewUserHandler(cfg, tokens, users, uploader, mailer),
		Product:      handlers.NewProductHandler(products, shops, orders, uploader, redisCache),
		Coupon:       handlers.NewCouponHandler(coupons),
		Payment:      handlers.NewPaymentHandler(payments),
		Order:        handlers.NewOrderHandler(orders),
		Conversation: handlers.NewConversationHandler(conversations),
		Message:      handlers.NewMessageHandler(messages),
	})

	log.Println("🚀 Serveur Bazario lancé sur le port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("❌ Arrêt du serveur : ", err)
	}
}
