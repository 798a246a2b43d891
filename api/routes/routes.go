package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/luckydraw/draw-backend/internal/config"
	"github.com/luckydraw/draw-backend/internal/handlers"
	"github.com/luckydraw/draw-backend/internal/middleware"
)

// HandlerDependencies bundles the handlers the router wires up.
type HandlerDependencies struct {
	AuthHandler   *handlers.AuthHandler
	DrawHandler   *handlers.DrawHandler
	RosterHandler *handlers.RosterHandler
	PrizeHandler  *handlers.PrizeHandler
}

// SetupRouter sets up the router.
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})
		public.POST("/auth/login", deps.AuthHandler.Login)

		// Read-only views used by the displayed results page.
		public.GET("/draws/winners", deps.DrawHandler.GetWinners)
		public.GET("/draws/available", deps.DrawHandler.GetAvailablePrizes)
	}

	// Protected operator routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.POST("/auth/register", deps.AuthHandler.Register)

		draws := protected.Group("/draws")
		{
			draws.POST("/prize/:prizeId", deps.DrawHandler.DrawPrize)
			draws.POST("/all", deps.DrawHandler.DrawAll)
			draws.GET("/state", deps.DrawHandler.GetState)
			draws.GET("/winners/export", deps.DrawHandler.ExportWinners)
			draws.POST("/reset", deps.DrawHandler.Reset)
		}

		participants := protected.Group("/participants")
		{
			participants.GET("", deps.RosterHandler.GetRoster)
			participants.PUT("", deps.RosterHandler.ReplaceRoster)
			participants.POST("/import", deps.RosterHandler.ImportRosterCSV)
			participants.GET("/excluded", deps.RosterHandler.GetExcluded)
			participants.PUT("/excluded", deps.RosterHandler.ReplaceExcluded)
		}

		prizes := protected.Group("/prizes")
		{
			prizes.GET("", deps.PrizeHandler.GetPrizes)
			prizes.PUT("", deps.PrizeHandler.ReplacePrizes)
		}
	}

	return router
}
