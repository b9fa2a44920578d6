package handler

import (
	"net/http"

	"github.com/BloggingApp/forum-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) subsGetAll(c *gin.Context) {
	subs, err := h.services.Sub.FindAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, subs)
}

func (h *Handler) subsGetByName(c *gin.Context) {
	sub, err := h.services.Sub.FindByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *Handler) subsCreate(c *gin.Context) {
	sess := h.getSessionFromRequest(c)

	var input dto.CreateSubRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	sub, err := h.services.Sub.Create(c.Request.Context(), sess, input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

func (h *Handler) subsSubscribe(c *gin.Context) {
	sess := h.getSessionFromRequest(c)

	if err := h.services.Sub.Subscribe(c.Request.Context(), sess, c.Param("name")); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) subsUnsubscribe(c *gin.Context) {
	sess := h.getSessionFromRequest(c)

	if err := h.services.Sub.Unsubscribe(c.Request.Context(), sess, c.Param("name")); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) subsGetMy(c *gin.Context) {
	sess := h.getSessionFromRequest(c)

	names, err := h.services.Sub.Subscriptions(c.Request.Context(), sess)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subs": names})
}
