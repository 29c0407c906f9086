package server

import (
	"github.com/gin-gonic/gin"

	"github.com/dev-7msolution/restaurante-mobile/server/controllers"
	"github.com/dev-7msolution/restaurante-mobile/server/middleware"
	"github.com/dev-7msolution/restaurante-mobile/server/services"
)

func registerRoutes(r *gin.Engine, auth *controllers.AuthController, menu *controllers.MenuController, orders *controllers.OrderController, misc *controllers.MiscController, tokens *services.TokenService) {
	r.GET("/health", misc.Health)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/refresh", auth.Refresh)
		authGroup.POST("/forgot-password", auth.ForgotPassword)
		authGroup.POST("/reset-password", auth.ResetPassword)
		authGroup.POST("/check-email", auth.CheckEmail)
		authGroup.POST("/send-verification", auth.SendVerificationCode)
		authGroup.POST("/verify-code", auth.VerifyCode)
	}

	authRequired := r.Group("/", middleware.RequireAuth(tokens))
	{
		authRequired.GET("/auth/me", auth.Me)
		authRequired.PATCH("/auth/profile", auth.UpdateProfile)
		authRequired.POST("/auth/change-password", auth.ChangePassword)
		authRequired.POST("/auth/logout", auth.Logout)

		authRequired.POST("/orders", orders.Create)
		authRequired.GET("/orders", orders.List)
		authRequired.GET("/orders/:id", orders.Get)
		authRequired.PATCH("/orders/:id/status", orders.UpdateStatus)
		authRequired.POST("/orders/:id/cancel", orders.Cancel)

		authRequired.GET("/favorites", misc.ListFavorites)
		authRequired.POST("/favorites", misc.AddFavorite)
		authRequired.DELETE("/favorites/:id", misc.RemoveFavorite)

		authRequired.GET("/reviews/:itemId", misc.ListReviews)
		authRequired.POST("/reviews", misc.CreateReview)

		authRequired.GET("/addresses", misc.ListAddresses)
		authRequired.POST("/addresses", misc.CreateAddress)
		authRequired.PATCH("/addresses/:id", misc.UpdateAddress)
		authRequired.DELETE("/addresses/:id", misc.DeleteAddress)

		authRequired.GET("/notifications", misc.ListNotifications)
		authRequired.PATCH("/notifications/:id/read", misc.MarkNotificationRead)
		authRequired.PATCH("/notifications/read-all", misc.MarkAllNotificationsRead)
	}

	// The menu is public: browsing does not require a session.
	r.GET("/menu", menu.List)
	r.GET("/menu/search", menu.Search)
	r.GET("/menu/:id", menu.Get)
}
