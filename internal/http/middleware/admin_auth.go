package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/nurpe/booking-wizard/internal/config"
)

const adminRealm = "Admin Area"

// AdminBasicAuth answers 401 with a Basic challenge unless the request carries
// the configured admin credentials.
func AdminBasicAuth(cfg config.AdminConfig) gin.HandlerFunc {
	return gin.BasicAuthForRealm(gin.Accounts{cfg.User: cfg.Password}, adminRealm)
}
