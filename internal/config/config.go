package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config regroupe toute la configuration du serveur, chargée une seule fois
// au démarrage puis passée explicitement aux collaborateurs. Aucune lecture
// d'environnement ne doit se faire ailleurs que dans ce package.
type Config struct {
	Port      string
	ClientURL string

	// MongoDB
	MongoURI string
	MongoDB  string

	// Secrets JWT — un par type de principal, plus les flux d'activation
	UserJWTSecret        string
	SellerJWTSecret      string
	ActivationSecret     string
	ShopActivationSecret string

	// Durées de vie des tokens
	AuthTokenTTL       time.Duration
	ActivationTokenTTL time.Duration

	// MinIO
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// Redis (optionnel — le serveur tourne sans)
	RedisAddr     string
	RedisPassword string

	// SMTP
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// Stripe
	StripeSecretKey      string
	StripePublishableKey string

	// Fichiers statiques
	UploadsDir string

	CookieSecure bool
}

// Load lit le fichier .env s'il existe puis construit la configuration.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		ClientURL: getEnv("CLIENT_URL", "http://localhost:5173"),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "bazario"),

		UserJWTSecret:        os.Getenv("USER_JWT_SECRET"),
		SellerJWTSecret:      os.Getenv("SELLER_JWT_SECRET"),
		ActivationSecret:     os.Getenv("ACTIVATION_SECRET"),
		ShopActivationSecret: os.Getenv("SHOP_ACTIVATION_SECRET"),

		AuthTokenTTL:       7 * 24 * time.Hour,
		ActivationTokenTTL: 15 * time.Minute,

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "bazario"),
		MinioUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SMTPHost:     getEnv("SMTP_HOST", "ssl0.ovh.net"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@bazario.shop"),

		StripeSecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		StripePublishableKey: os.Getenv("STRIPE_API_KEY"),

		UploadsDir: getEnv("UPLOADS_DIR", "uploads"),

		CookieSecure: getEnv("NODE_ENV", "") == "PRODUCTION",
	}

	if ttl := os.Getenv("AUTH_TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("AUTH_TOKEN_TTL invalide: %w", err)
		}
		cfg.AuthTokenTTL = d
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate refuse de démarrer sans les secrets indispensables.
func (c *Config) validate() error {
	missing := []string{}
	if c.UserJWTSecret == "" {
		missing = append(missing, "USER_JWT_SECRET")
	}
	if c.SellerJWTSecret == "" {
		missing = append(missing, "SELLER_JWT_SECRET")
	}
	if c.ActivationSecret == "" {
		missing = append(missing, "ACTIVATION_SECRET")
	}
	if c.ShopActivationSecret == "" {
		missing = append(missing, "SHOP_ACTIVATION_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("variables d'environnement manquantes: %v", missing)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
