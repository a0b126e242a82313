package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"user_service/internal/feature/users/adapters"
	userhandler "user_service/internal/feature/users/transport/handler"
	"user_service/internal/feature/users/usecase"
	"user_service/internal/platform/cache"
	jwtmw "user_service/internal/platform/jwt"
)

// NewUserHandler wires the users feature: GORM record store, Redis cache
// gateway and JWT issuer behind the workflow usecase. rdb may be nil, in
// which case every read goes straight to the store.
func NewUserHandler(db *gorm.DB, rdb *redis.Client, jwtSecret string, tokenTTL time.Duration) *userhandler.UserHandler {
	users := adapters.NewUserMySQL(db)
	userCache := cache.NewRedisCache(rdb, "")
	tokens := jwtmw.NewGenerator(jwtSecret, tokenTTL)

	uc := usecase.NewUserUsecase(users, userCache, tokens)
	return userhandler.NewUserHandler(uc)
}
