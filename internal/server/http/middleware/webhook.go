package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenlake/portal/internal/pkg/signature"
	"github.com/greenlake/portal/internal/server/http/dto"
)

// VerifyWebhookSignature checks the HMAC signature of the raw request body
// before the handler parses it. The body is restored for downstream binding.
func VerifyWebhookSignature(verifier *signature.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !verifier.Enabled() {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unreadable body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if !verifier.Verify(body, c.GetHeader(signature.Header)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid webhook signature"})
			return
		}
		c.Next()
	}
}
