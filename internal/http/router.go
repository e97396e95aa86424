package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/sayemkalim/casesync/internal/http/controller"
	"github.com/sayemkalim/casesync/internal/http/middleware"
)

func NewRouter(handler *controller.Handler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.ZapLogger(logger),
		middleware.ZapRecovery(logger),
		middleware.Metrics(),
		otelgin.Middleware("casesync"),
	)

	router.GET("/health", func(c *gin.Context) {
		c.Status(200)
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v2 := router.Group("/api/v2")
	{
		v2.GET("/notifications", handler.ListNotifications)
		v2.GET("/notifications/live", handler.ListLiveNotifications)
		v2.GET("/notifications/unread-count", handler.UnreadCount)
		v2.PATCH("/notifications/read-all", handler.MarkAllRead)
		v2.PATCH("/notifications/read-many", handler.MarkManyRead)
		v2.PATCH("/notifications/:id/read", handler.MarkRead)
		v2.DELETE("/notifications", handler.DeleteAllNotifications)
		v2.DELETE("/notifications/:id", handler.DeleteNotification)
		v2.POST("/notifications/publish", handler.PublishNotification)
		v2.POST("/notification-response", handler.RespondNotification)

		v2.GET("/users/:id/feed", handler.Feed)

		v2.POST("/sessions", handler.CreateSession)
		v2.DELETE("/sessions/:sid", handler.CloseSession)
		v2.POST("/sessions/:sid/navigate", handler.Navigate)
		v2.GET("/sessions/:sid/timer", handler.TimerState)
		v2.POST("/sessions/:sid/timer/start", handler.TimerStart)
		v2.POST("/sessions/:sid/timer/pause", handler.TimerPause)
		v2.POST("/sessions/:sid/timer/resume", handler.TimerResume)
		v2.POST("/sessions/:sid/timer/reset", handler.TimerReset)
		v2.POST("/sessions/:sid/timer/exit", handler.TimerExitFile)
		v2.GET("/sessions/:sid/toasts", handler.ListToasts)
		v2.POST("/sessions/:sid/toasts/:id/dismiss", handler.DismissToast)
		v2.POST("/sessions/:sid/toasts/:id/respond", handler.RespondToast)
	}

	return router
}
