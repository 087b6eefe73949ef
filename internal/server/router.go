package server

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RouterConfig собирает зависимости HTTP слоя
type RouterConfig struct {
	Handler        *Handler
	AllowedOrigins []string
	RateLimit      int
	RateWindow     time.Duration
}

// NewRouter регистрирует все маршруты бэкенда
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORS(cfg.AllowedOrigins))

	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 30
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = time.Minute
	}
	r.Use(RateLimit(NewRateLimiter(cfg.RateLimit, cfg.RateWindow)))

	h := cfg.Handler

	r.GET("/healthcheck", h.HealthCheck)

	api := r.Group("/api")
	{
		voice := api.Group("/voice")
		{
			voice.POST("/interview", h.InterviewRun)
			voice.POST("/interview/step", h.InterviewStep)
			voice.POST("/chat/send", h.ChatSend)
			voice.GET("/chat/history/:user_id", h.ChatHistory)
		}

		sessions := api.Group("/session")
		{
			sessions.POST("", h.CreateSession)
			sessions.GET("/:session_id", h.GetSession)
			sessions.PUT("/:session_id", h.UpdateSession)
			sessions.POST("/:session_id/add_chat", h.AddChat)
			sessions.GET("/user/:user_id", h.SessionsByUser)
		}

		fb := api.Group("/feedback")
		{
			fb.POST("", h.CreateFeedback)
			fb.POST("/generate", h.GenerateFeedback)
			fb.GET("", h.AllFeedback)
			fb.GET("/user/:user_id", h.FeedbackByUser)
			fb.GET("/count", h.FeedbackCount)
		}

		admin := api.Group("/admin")
		{
			admin.GET("/metrics", h.AdminMetrics)
			admin.GET("/sessions", h.AdminSessions)
			admin.GET("/sessions/today", h.AdminSessionsToday)
		}
	}

	return r
}
