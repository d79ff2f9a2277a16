package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/minhngvn/finshare-server/internal/models"
	"github.com/minhngvn/finshare-server/internal/repository"
	"github.com/shopspring/decimal"
)

// periodStart maps a reporting period to its starting instant: "month" is
// the start of the current month, "year" the start of the current year,
// anything else the last 30 days.
func periodStart(period string, now time.Time) time.Time {
	switch period {
	case "month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	case "year":
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return now.AddDate(0, 0, -30)
	}
}

func (s *DefaultService) StatisticsOverview(ctx context.Context, userID, period string) (*models.StatisticsOverview, error) {
	start := periodStart(period, time.Now().UTC())

	txns, err := s.repo.GetUserTransactions(ctx, userID, repository.TransactionFilter{From: &start})
	if err != nil {
		return nil, fmt.Errorf("error getting transactions: %w", err)
	}

	categories, err := s.repo.GetUserCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting categories: %w", err)
	}

	categoryTypes := make(map[string]models.TransactionType, len(categories))
	for _, c := range categories {
		categoryTypes[c.ID] = c.Type
	}

	totalExpense := decimal.Zero
	totalIncome := decimal.Zero
	for _, txn := range txns {
		switch categoryTypes[txn.CategoryID] {
		case models.TransactionExpense:
			totalExpense = totalExpense.Add(txn.Amount)
		case models.TransactionIncome:
			totalIncome = totalIncome.Add(txn.Amount)
		}
	}

	expenses, err := s.repo.GetUserSharedExpenses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting shared expenses: %w", err)
	}

	totalOwed := decimal.Zero
	for _, expense := range expenses {
		for _, p := range expense.Participants {
			if p.UserID != userID {
				continue
			}
			balance := p.Paid.Sub(p.Amount)
			if balance.IsNegative() {
				totalOwed = totalOwed.Add(balance.Abs())
			}
		}
	}

	return &models.StatisticsOverview{
		TotalExpense:     totalExpense.Round(2),
		TotalIncome:      totalIncome.Round(2),
		Balance:          totalIncome.Sub(totalExpense).Round(2),
		TotalOwed:        totalOwed.Round(2),
		TransactionCount: len(txns),
	}, nil
}

func (s *DefaultService) StatisticsByCategory(ctx context.Context, userID, period string) ([]models.CategoryStatistics, error) {
	start := periodStart(period, time.Now().UTC())

	txns, err := s.repo.GetUserTransactions(ctx, userID, repository.TransactionFilter{From: &start})
	if err != nil {
		return nil, fmt.Errorf("error getting transactions: %w", err)
	}

	categories, err := s.repo.GetUserCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting categories: %w", err)
	}

	categoriesByID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		categoriesByID[c.ID] = c
	}

	totals := make(map[string]*models.CategoryStatistics)
	for _, txn := range txns {
		category, ok := categoriesByID[txn.CategoryID]
		if !ok || category.Type != models.TransactionExpense {
			continue
		}

		stat, ok := totals[txn.CategoryID]
		if !ok {
			stat = &models.CategoryStatistics{
				CategoryID:   category.ID,
				CategoryName: category.Name,
				Color:        category.Color,
				Total:        decimal.Zero,
			}
			totals[txn.CategoryID] = stat
		}
		stat.Total = stat.Total.Add(txn.Amount)
	}

	result := make([]models.CategoryStatistics, 0, len(totals))
	for _, stat := range totals {
		result = append(result, *stat)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Total.GreaterThan(result[j].Total)
	})

	return result, nil
}
