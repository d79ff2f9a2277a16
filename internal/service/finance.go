package service

import (
	"context"
	"fmt"

	"github.com/minhngvn/finshare-server/internal/models"
	"github.com/minhngvn/finshare-server/internal/repository"
)

// Category methods

func (s *DefaultService) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	categories, err := s.repo.GetUserCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}

	return categories, nil
}

func (s *DefaultService) CreateCategory(ctx context.Context, userID string, req models.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		UserID: userID,
		Name:   req.Name,
		Icon:   req.Icon,
		Color:  req.Color,
		Type:   req.Type,
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("error creating category: %w", err)
	}

	return category, nil
}

func (s *DefaultService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	category, err := s.repo.GetCategory(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("error getting category: %w", err)
	}

	if category == nil || category.UserID != userID {
		return ErrNotFound
	}

	if category.IsDefault {
		return ErrDefaultCategory
	}

	if err := s.repo.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("error deleting category: %w", err)
	}

	return nil
}

// Transaction methods

func (s *DefaultService) ListTransactions(ctx context.Context, userID string, filter repository.TransactionFilter) ([]models.Transaction, error) {
	txns, err := s.repo.GetUserTransactions(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}

	return txns, nil
}

func (s *DefaultService) CreateTransaction(ctx context.Context, userID string, req models.CreateTransactionRequest) (*models.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	txn := &models.Transaction{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		Date:        req.Date,
		ReceiptURL:  req.ReceiptURL,
	}

	if err := s.repo.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("error creating transaction: %w", err)
	}

	return txn, nil
}

func (s *DefaultService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	deleted, err := s.repo.DeleteTransaction(ctx, transactionID, userID)
	if err != nil {
		return fmt.Errorf("error deleting transaction: %w", err)
	}

	if !deleted {
		return ErrNotFound
	}

	return nil
}

// Budget methods

func (s *DefaultService) ListBudgets(ctx context.Context, userID string) ([]models.Budget, error) {
	budgets, err := s.repo.GetUserBudgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing budgets: %w", err)
	}

	return budgets, nil
}

func (s *DefaultService) CreateBudget(ctx context.Context, userID string, req models.CreateBudgetRequest) (*models.Budget, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	period := req.Period
	if period == "" {
		period = "monthly"
	}

	budget := &models.Budget{
		UserID:     userID,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Period:     period,
	}

	if err := s.repo.CreateBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("error creating budget: %w", err)
	}

	return budget, nil
}

func (s *DefaultService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	deleted, err := s.repo.DeleteBudget(ctx, budgetID, userID)
	if err != nil {
		return fmt.Errorf("error deleting budget: %w", err)
	}

	if !deleted {
		return ErrNotFound
	}

	return nil
}
