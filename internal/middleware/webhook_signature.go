package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// WebhookSignatureHeader is the header Flutterwave sets to the shared secret hash.
const WebhookSignatureHeader = "verif-hash"

// WebhookSignature rejects provider notifications whose verif-hash header does not
// match the configured secret hash. An empty secret rejects everything.
func WebhookSignature(secretHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		signature := c.GetHeader(WebhookSignatureHeader)

		if secretHash == "" || subtle.ConstantTimeCompare([]byte(signature), []byte(secretHash)) != 1 {
			logger.Warn("Webhook signature rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
			return
		}

		c.Next()
	}
}
