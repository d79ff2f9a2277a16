package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minhngvn/finshare-server/internal/models"
)

// Shared expense handlers

func (h *Handler) ListSharedExpenses(c *gin.Context) {
	expenses, err := h.svc.ListSharedExpenses(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if expenses == nil {
		expenses = []models.SharedExpense{}
	}
	c.JSON(http.StatusOK, expenses)
}

func (h *Handler) CreateSharedExpense(c *gin.Context) {
	var req models.CreateSharedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	expense, err := h.svc.CreateSharedExpense(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

func (h *Handler) ConfirmSharedExpense(c *gin.Context) {
	err := h.svc.ConfirmParticipation(c.Request.Context(), c.Param("id"), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Confirmed"})
}

func (h *Handler) GetSettlements(c *gin.Context) {
	settlements, err := h.svc.GetSettlements(c.Request.Context(), c.Param("id"), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, settlements)
}
