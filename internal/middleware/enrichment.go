package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/optimusmind/diagnostico-backend/internal/platform/ctxutil"
	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
)

const EnrichmentTokenHeader = "X-Enrichment-Token"

type EnrichmentMiddleware struct {
	log   *logger.Logger
	token string
}

func NewEnrichmentMiddleware(log *logger.Logger, token string) *EnrichmentMiddleware {
	return &EnrichmentMiddleware{
		log:   log.With("Middleware", "EnrichmentMiddleware"),
		token: token,
	}
}

// RequireToken guards the narrative callback. With no token configured the
// route is disabled rather than left open.
func (em *EnrichmentMiddleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if em.token == "" {
			em.log.Warn("Enrichment token not configured, rejecting callback")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "enrichment callbacks disabled"})
			return
		}
		supplied := c.GetHeader(EnrichmentTokenHeader)
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(em.token)) != 1 {
			requestID := ""
			if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
				requestID = td.RequestID
			}
			em.log.Warn("Enrichment callback rejected", "request_id", requestID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		c.Next()
	}
}
