package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/booking-wizard/internal/auth"
)

const (
	SessionCookie = "booking_session"
	sessionIDKey  = "session_id"
)

// Session makes sure every request carries a signed session cookie and exposes
// the session id to handlers. A missing, expired or tampered cookie starts a new
// session.
func Session(tokens *auth.SessionTokens, secure bool, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(SessionCookie); err == nil && raw != "" {
			if id, err := tokens.Parse(raw); err == nil {
				c.Set(sessionIDKey, id)
				c.Next()
				return
			}
		}

		id := uuid.New()
		token, err := tokens.Issue(id)
		if err != nil {
			log.Error().Err(err).Msg("issue session token")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, token, int(tokens.TTL().Seconds()), "/", "", secure, true)
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

// MustSession returns the session id set by Session.
func MustSession(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(sessionIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
