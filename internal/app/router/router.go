// Package router wires the HTTP handlers into the Gin engine.
package router

import (
	"github.com/gin-gonic/gin"

	authhandler "draft_backend/internal/feature/auth/transport/handler"
	drafthandler "draft_backend/internal/feature/draft/transport/handler"
	userhandler "draft_backend/internal/feature/users/transport/handler"
	"draft_backend/internal/platform/http/handler"
	jwtmw "draft_backend/internal/platform/jwt"
)

// New builds the Gin engine with all application routes. Everything except
// the health probe and the auth endpoints requires a valid bearer token.
func New(jwtSecret string, authH *authhandler.AuthHandler, draftH *drafthandler.DraftHandler,
	userH *userhandler.UserHandler) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authH.Register)
		authRoutes.POST("/login", authH.Login)
		authRoutes.POST("/refresh", authH.Refresh)
		authRoutes.POST("/logout", authH.Logout)
	}

	protected := r.Group("/")
	protected.Use(jwtmw.AuthRequired(jwtSecret))
	{
		drafts := protected.Group("/drafts")
		{
			drafts.POST("", draftH.Create)
			drafts.GET("", draftH.List)
			drafts.GET("/:id", draftH.Get)
			drafts.POST("/:id/execute", draftH.Execute)
			drafts.POST("/:id/cancel", draftH.Cancel)
			drafts.GET("/status/:status", draftH.ListByStatus)
			drafts.GET("/participant/:userId", draftH.ListByParticipant)
			drafts.GET("/winner/:userId", draftH.ListByWinner)
		}

		users := protected.Group("/users")
		{
			users.GET("", userH.List)
			users.GET("/:id", userH.Get)
			users.PUT("/:id", userH.Update)
			users.DELETE("/:id", userH.Delete)
			users.GET("/search", userH.Search)
			users.GET("/age", userH.ListByAge)
		}
	}

	return r
}
