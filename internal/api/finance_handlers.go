package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhngvn/finshare-server/internal/models"
	"github.com/minhngvn/finshare-server/internal/repository"
)

// Category handlers

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if categories == nil {
		categories = []models.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	category, err := h.svc.CreateCategory(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.svc.DeleteCategory(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Category deleted"})
}

// Transaction handlers

func (h *Handler) ListTransactions(c *gin.Context) {
	filter := repository.TransactionFilter{
		CategoryID: c.Query("categoryId"),
	}

	if from := c.Query("fromDate"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			badRequest(c, err)
			return
		}
		filter.From = &t
	}
	if to := c.Query("toDate"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			badRequest(c, err)
			return
		}
		filter.To = &t
	}

	txns, err := h.svc.ListTransactions(c.Request.Context(), userID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	if txns == nil {
		txns = []models.Transaction{}
	}
	c.JSON(http.StatusOK, txns)
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	txn, err := h.svc.CreateTransaction(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, txn)
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	if err := h.svc.DeleteTransaction(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Transaction deleted"})
}

// Budget handlers

func (h *Handler) ListBudgets(c *gin.Context) {
	budgets, err := h.svc.ListBudgets(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if budgets == nil {
		budgets = []models.Budget{}
	}
	c.JSON(http.StatusOK, budgets)
}

func (h *Handler) CreateBudget(c *gin.Context) {
	var req models.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	budget, err := h.svc.CreateBudget(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, budget)
}

func (h *Handler) DeleteBudget(c *gin.Context) {
	if err := h.svc.DeleteBudget(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Budget deleted"})
}

// Statistics handlers

func (h *Handler) StatisticsOverview(c *gin.Context) {
	overview, err := h.svc.StatisticsOverview(c.Request.Context(), userID(c), c.DefaultQuery("period", "month"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

func (h *Handler) StatisticsByCategory(c *gin.Context) {
	stats, err := h.svc.StatisticsByCategory(c.Request.Context(), userID(c), c.DefaultQuery("period", "month"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
