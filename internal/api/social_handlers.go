package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minhngvn/finshare-server/internal/models"
)

// Friend handlers

func (h *Handler) ListFriends(c *gin.Context) {
	friendships, err := h.svc.ListFriends(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if friendships == nil {
		friendships = []models.Friendship{}
	}
	c.JSON(http.StatusOK, friendships)
}

func (h *Handler) SendFriendRequest(c *gin.Context) {
	var req models.FriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.svc.SendFriendRequest(c.Request.Context(), userID(c), req.FriendEmail); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Friend request sent"})
}

func (h *Handler) AcceptFriendRequest(c *gin.Context) {
	if err := h.svc.AcceptFriendRequest(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Friend request accepted"})
}

// Notification handlers

func (h *Handler) ListNotifications(c *gin.Context) {
	notifications, err := h.svc.ListNotifications(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if notifications == nil {
		notifications = []models.Notification{}
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	if err := h.svc.MarkNotificationRead(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Notification marked as read"})
}
