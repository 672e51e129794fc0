package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/videoreact/internal/handler/http/dto"
	"github.com/mikiasgoitom/videoreact/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/videoreact/internal/usecase/contract"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries the HTTP-level settings.
type RouterConfig struct {
	AllowedOrigins     []string
	RateLimitPerSecond float64
	Gatherer           prometheus.Gatherer
}

type Router struct {
	interactionHandler *InteractionHandler
	websocketHandler   *WebSocketHandler
	logger             usecasecontract.IAppLogger
	cfg                RouterConfig
}

func NewRouter(interactionUsecase usecasecontract.IInteractionUseCase, validator usecasecontract.IValidator, subscriptions SubscriptionServer, logger usecasecontract.IAppLogger, cfg RouterConfig) *Router {
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	return &Router{
		interactionHandler: NewInteractionHandler(interactionUsecase, validator, logger),
		websocketHandler:   NewWebSocketHandler(subscriptions, cfg.AllowedOrigins, logger),
		logger:             logger,
		cfg:                cfg,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(corsConfig(r.cfg.AllowedOrigins)))
	router.Use(middleware.RequestLogger(r.logger))

	router.GET("/healthz", func(c *gin.Context) {
		SuccessHandler(c, http.StatusOK, dto.HealthResponse{Status: "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.cfg.Gatherer, promhttp.HandlerOpts{})))

	// real-time subscriptions
	router.GET("/socket", r.websocketHandler.SubscribeHandler)

	api := router.Group("/api")
	if r.cfg.RateLimitPerSecond > 0 {
		api.Use(middleware.RateLimiter(middleware.NewLimiter(r.cfg.RateLimitPerSecond)))
	}
	{
		api.POST("/interact", r.interactionHandler.RecordInteractionHandler)
		api.GET("/get_interactions/:video_id", r.interactionHandler.GetInteractionsHandler)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
