// Package server implements the development stub of the restaurant REST
// API: the endpoints the mobile client consumes, seeded with fixed menu
// data and a test account, backed by a local sqlite file.
package server

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dev-7msolution/restaurante-mobile/config"
	"github.com/dev-7msolution/restaurante-mobile/logger"
	"github.com/dev-7msolution/restaurante-mobile/server/controllers"
	"github.com/dev-7msolution/restaurante-mobile/server/database"
	"github.com/dev-7msolution/restaurante-mobile/server/middleware"
	"github.com/dev-7msolution/restaurante-mobile/server/services"
)

// NewRouter builds the gin engine with all routes and middleware wired.
func NewRouter(cfg config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	users := database.NewUserRepository(db)
	orderRepo := database.NewOrderRepository(db)
	tokens := services.NewTokenService(cfg.JWTSecret)

	auth := controllers.NewAuthController(users, tokens)
	menu := controllers.NewMenuController()
	orders := controllers.NewOrderController(orderRepo)
	misc := controllers.NewMiscController()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RateLimit())

	registerRoutes(r, auth, menu, orders, misc, tokens)
	return r
}
