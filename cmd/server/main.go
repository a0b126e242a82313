package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"user_service/internal/app/config"
	"user_service/internal/app/di"
	"user_service/internal/app/router"
	infradb "user_service/internal/platform/db"
	infraredis "user_service/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// db
	db := infradb.OpenDB()

	// Redis (optional: the service degrades to store-only reads without it)
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Feature wiring
	usersH := di.NewUserHandler(db, rdb, cfg.JWTSecret, cfg.TokenTTL)

	router := router.NewRouter(usersH)

	if err := router.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
