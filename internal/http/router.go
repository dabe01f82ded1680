package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/booking-wizard/internal/auth"
	"github.com/nurpe/booking-wizard/internal/config"
	"github.com/nurpe/booking-wizard/internal/http/middleware"
)

func NewRouter(handler *Handler, tokens *auth.SessionTokens, cfg *config.Config, log zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	templates, err := NewTemplates(loc)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log))
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.HTTP.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "HX-Request", "HX-Target", "HX-Current-URL"},
			ExposeHeaders:    []string{"Content-Length", "HX-Redirect"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	router.SetHTMLTemplate(templates)

	router.GET("/healthz", handler.healthz)

	public := router.Group("/")
	public.Use(
		middleware.RateLimit(cfg.HTTP.RateLimit, log),
		middleware.Session(tokens, cfg.IsProduction(), log),
	)

	admin := router.Group("/admin")
	admin.Use(middleware.AdminBasicAuth(cfg.Admin))

	handler.Register(public, admin)
	return router, nil
}
