package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/BloggingApp/forum-service/internal/dto"
	"github.com/BloggingApp/forum-service/internal/service"
	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func (h *Handler) authMiddleware(c *gin.Context) {
	accessToken := bearerToken(c)
	if accessToken == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	sess, err := h.services.User.CheckSession(c.Request.Context(), accessToken)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.Set(sessionCtxKey, sess)

	c.Next()
}
