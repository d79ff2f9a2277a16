package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minhngvn/finshare-server/internal/models"
	"github.com/minhngvn/finshare-server/internal/service"
)

// Handler holds the service and exposes the HTTP endpoints
type Handler struct {
	svc service.Service
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// SetupRoutes registers all API routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", AuthMiddleware(), h.GetMe)
	}

	protected := api.Group("", AuthMiddleware())
	{
		protected.PUT("/users/profile", h.UpdateProfile)
		protected.GET("/users/search", h.SearchUsers)

		protected.GET("/categories", h.ListCategories)
		protected.POST("/categories", h.CreateCategory)
		protected.DELETE("/categories/:id", h.DeleteCategory)

		protected.GET("/transactions", h.ListTransactions)
		protected.POST("/transactions", h.CreateTransaction)
		protected.DELETE("/transactions/:id", h.DeleteTransaction)

		protected.GET("/shared-expenses", h.ListSharedExpenses)
		protected.POST("/shared-expenses", h.CreateSharedExpense)
		protected.POST("/shared-expenses/:id/confirm", h.ConfirmSharedExpense)
		protected.GET("/shared-expenses/:id/settlements", h.GetSettlements)

		protected.GET("/friends", h.ListFriends)
		protected.POST("/friends/request", h.SendFriendRequest)
		protected.POST("/friends/:id/accept", h.AcceptFriendRequest)

		protected.GET("/notifications", h.ListNotifications)
		protected.PUT("/notifications/:id/read", h.MarkNotificationRead)

		protected.GET("/budgets", h.ListBudgets)
		protected.POST("/budgets", h.CreateBudget)
		protected.DELETE("/budgets/:id", h.DeleteBudget)

		protected.GET("/statistics/overview", h.StatisticsOverview)
		protected.GET("/statistics/by-category", h.StatisticsByCategory)
	}
}

// userID extracts the authenticated user id set by AuthMiddleware.
func userID(c *gin.Context) string {
	return c.MustGet("userId").(string)
}

// respondError maps service errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Status: "error", Code: "NOT_FOUND", Message: err.Error(),
		})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Status: "error", Code: "FORBIDDEN", Message: err.Error(),
		})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Status: "error", Code: "CONFLICT", Message: err.Error(),
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Status: "error", Code: "UNAUTHORIZED", Message: err.Error(),
		})
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrDefaultCategory),
		errors.Is(err, service.ErrSelfFriend),
		errors.Is(err, service.ErrDuplicateFriendship):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status: "error", Code: "BAD_REQUEST", Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status: "error", Code: "INTERNAL_ERROR", Message: "internal server error",
		})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status: "error", Code: "BAD_REQUEST", Message: err.Error(),
	})
}

// Auth handlers

func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.svc.GetUser(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// User handlers

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req models.UserSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, []models.User{})
		return
	}

	users, err := h.svc.SearchUsers(c.Request.Context(), userID(c), query)
	if err != nil {
		respondError(c, err)
		return
	}

	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}
