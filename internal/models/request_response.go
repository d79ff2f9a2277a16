package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request models
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserSettingsRequest struct {
	CurrencyPreference *string          `json:"currencyPreference"`
	UsdVndRate         *decimal.Decimal `json:"usdVndRate"`
	AvatarURL          *string          `json:"avatarUrl"`
}

type CreateCategoryRequest struct {
	Name  string          `json:"name" binding:"required"`
	Icon  string          `json:"icon" binding:"required"`
	Color string          `json:"color" binding:"required"`
	Type  TransactionType `json:"type" binding:"required,oneof=expense income"`
}

type CreateTransactionRequest struct {
	CategoryID  string          `json:"categoryId" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency" binding:"required"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date" binding:"required"`
	ReceiptURL  *string         `json:"receiptUrl"`
}

type CreateSharedExpenseRequest struct {
	Title             string          `json:"title" binding:"required"`
	Description       string          `json:"description"`
	TotalAmount       decimal.Decimal `json:"totalAmount" binding:"required"`
	Currency          string          `json:"currency" binding:"required"`
	ParticipantEmails []string        `json:"participantEmails"`
	SplitType         SplitType       `json:"splitType" binding:"omitempty,oneof=equal custom"`
	CategoryID        *string         `json:"categoryId"`
	Date              time.Time       `json:"date" binding:"required"`
	ReceiptURL        *string         `json:"receiptUrl"`
}

type FriendRequestRequest struct {
	FriendEmail string `json:"friendEmail" binding:"required,email"`
}

type CreateBudgetRequest struct {
	CategoryID string          `json:"categoryId" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Period     string          `json:"period"`
}

// Response models
type AuthResponse struct {
	AccessToken string      `json:"accessToken"`
	TokenType   string      `json:"tokenType"`
	User        UserSummary `json:"user"`
}

type UserSummary struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type StatisticsOverview struct {
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	Balance          decimal.Decimal `json:"balance"`
	TotalOwed        decimal.Decimal `json:"totalOwed"`
	TransactionCount int             `json:"transactionCount"`
}

type CategoryStatistics struct {
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Color        string          `json:"color"`
	Total        decimal.Decimal `json:"total"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
