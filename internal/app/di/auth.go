package di

import (
	"os"

	"gorm.io/gorm"

	authadapters "product_backend/internal/feature/auth/adapters"
	authhandler "product_backend/internal/feature/auth/transport/handler"
	authusecase "product_backend/internal/feature/auth/usecase"
	"product_backend/internal/platform/config"
	jwtmw "product_backend/internal/platform/jwt"
)

// NewAuthHandler creates the auth handler with a GORM-backed user repository
// and an HMAC JWT issuer configured from JWT_SECRET.
func NewAuthHandler(cfg *config.Config, db *gorm.DB) *authhandler.AuthHandler {
	users := authadapters.NewUserGorm(db)
	issuer := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), cfg.JWTExpiration)
	return authhandler.NewAuthHandler(authusecase.NewAuthUsecase(users, issuer))
}
