package di

import (
	"os"
	"time"

	"gorm.io/gorm"

	authadapters "portfolio_backend/internal/feature/auth/adapters"
	authhandler "portfolio_backend/internal/feature/auth/transport/handler"
	authusecase "portfolio_backend/internal/feature/auth/usecase"
	jwtmw "portfolio_backend/internal/platform/jwt"
)

// tokenLifetime is how long an issued JWT stays valid.
const tokenLifetime = 24 * time.Hour

// NewAuthHandler wires the user repository and JWT generator into the auth
// handler.
func NewAuthHandler(db *gorm.DB) *authhandler.AuthHandler {
	users := authadapters.NewUserRepository(db)
	generator := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), tokenLifetime)
	return authhandler.NewAuthHandler(authusecase.NewAuthUsecase(users, generator))
}
