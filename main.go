package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	orderControllers "github.com/dzstore/storefront-api/controllers/order"

	"github.com/dzstore/storefront-api/cache"
	"github.com/dzstore/storefront-api/logger"
	"github.com/dzstore/storefront-api/models"
	"github.com/dzstore/storefront-api/routes"
	"github.com/dzstore/storefront-api/store"
)

func main() {
	_ = godotenv.Load()

	logger.Initialize(os.Getenv("APP_ENV"))
	defer logger.Sync()

	db := initDatabase()

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductVariant{},
		&models.Stock{},
		&models.Cart{},
		&models.CartItem{},
		&models.Wilaya{},
		&models.Order{},
		&models.OrderItem{},
		&models.Trending{},
		&models.CarouselSlide{},
	); err != nil {
		logger.Log.Fatal("automigrate failed", zap.Error(err))
	}

	rev := newRevalidator()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	sessions := store.NewManager()
	feed := orderControllers.NewFeed()
	routes.Setup(r, db, rev, sessions, feed)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Log.Info("starting server", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Log.Fatal("server exited", zap.Error(err))
	}
}

func initDatabase() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			envOr("POSTGRES_HOST", "localhost"),
			os.Getenv("POSTGRES_USER"),
			os.Getenv("POSTGRES_PASSWORD"),
			os.Getenv("POSTGRES_DB"),
			envOr("POSTGRES_PORT", "5432"),
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Log.Fatal("database connection failed", zap.Error(err))
	}
	return db
}

// newRevalidator builds the cache-invalidation collaborator. Without a
// REDIS_URL the signal degrades to a no-op.
func newRevalidator() cache.Revalidator {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return cache.Noop{}
	}
	client, err := cache.NewRedisClient(redisURL)
	if err != nil {
		logger.Log.Warn("redis unavailable, revalidation disabled", zap.Error(err))
		return cache.Noop{}
	}
	return cache.NewRedisRevalidator(client)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
