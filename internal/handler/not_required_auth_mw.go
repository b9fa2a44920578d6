package handler

import (
	"github.com/gin-gonic/gin"
)

// notRequiredAuthMiddleware attaches the session when a valid token is sent
// and lets the request through as anonymous otherwise.
func (h *Handler) notRequiredAuthMiddleware(c *gin.Context) {
	accessToken := bearerToken(c)
	if accessToken == "" {
		c.Next()
		return
	}

	sess, err := h.services.User.CheckSession(c.Request.Context(), accessToken)
	if err != nil {
		c.Next()
		return
	}

	c.Set(sessionCtxKey, sess)

	c.Next()
}
