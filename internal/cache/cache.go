// Package cache fournit un cache Redis JSON en lecture pour le catalogue et
// les profils boutique. Le cache est strictement optionnel : toutes les
// méthodes acceptent un récepteur nil et se comportent comme un miss.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"bazario_back_end/internal/config"
)

const (
	ProductCacheTTL = 10 * time.Minute
	ShopCacheTTL    = 5 * time.Minute

	AllProductsKey = "products:all"
)

// ShopProductsKey — clé du catalogue d'une boutique.
func ShopProductsKey(shopID string) string {
	return "products:shop:" + shopID
}

// ShopInfoKey — clé du profil public d'une boutique.
func ShopInfoKey(shopID string) string {
	return "shop:" + shopID
}

type Cache struct {
	rdb *redis.Client
}

// Connect ouvre la connexion Redis. Retourne nil si aucun Redis n'est
// configuré — le serveur tourne alors sans cache.
func Connect(cfg *config.Config) *Cache {
	if cfg.RedisAddr == "" {
		log.Println("⚠️ Redis non configuré — cache désactivé")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Println("⚠️ Redis injoignable — cache désactivé :", err)
		return nil
	}

	log.Println("✅ Connecté à Redis :", cfg.RedisAddr)
	return &Cache{rdb: rdb}
}

// GetJSON lit et désérialise une clé. false ⇒ miss (ou cache désactivé).
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false
	}
	return true
}

// SetJSON sérialise et stocke une valeur. Les échecs sont silencieux : le
// cache ne doit jamais faire échouer une requête.
func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("⚠️ Échec écriture cache %s: %v", key, err)
	}
}

// Invalidate supprime une ou plusieurs clés.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("⚠️ Échec invalidation cache %v: %v", keys, err)
	}
}
