package router

import (
	"github.com/gin-gonic/gin"

	"ansa.app/bridge/internal/http/handler"
	"ansa.app/bridge/internal/service"
)

type RouterConfig struct {
	CompleteURL  string
	IsProduction bool
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	eventHandler := handler.NewEventHandler(services.Events())
	oauthHandler := handler.NewOAuthHandler(services.OAuth(), services.Users(), cfg.CompleteURL)

	slack := router.Group("/slack")
	{
		// Slack probes both endpoints with GET during app configuration.
		slack.GET("/events/receive-event", eventHandler.Receive)
		slack.POST("/events/receive-event", eventHandler.Receive)

		slack.GET("/auth/oauth_callback", oauthHandler.Callback)
		slack.POST("/auth/oauth_callback", oauthHandler.Callback)
	}
}
