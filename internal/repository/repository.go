package repository

import (
	"context"
	"time"

	"github.com/minhngvn/finshare-server/internal/models"
)

// TransactionFilter narrows a transaction listing. Zero values mean no
// filtering on that dimension.
type TransactionFilter struct {
	CategoryID string
	From       *time.Time
	To         *time.Time
}

// Repository interface defines the methods that any repository implementation must satisfy.
// Lookup methods return (nil, nil) when the record does not exist.
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUserSettings(ctx context.Context, userID string, settings models.UserSettingsRequest) error
	SearchUsers(ctx context.Context, query, excludeUserID string, limit int) ([]models.User, error)

	// Category operations
	CreateCategory(ctx context.Context, category *models.Category) error
	GetUserCategories(ctx context.Context, userID string) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	// Transaction operations
	CreateTransaction(ctx context.Context, txn *models.Transaction) error
	GetUserTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]models.Transaction, error)
	DeleteTransaction(ctx context.Context, id, userID string) (bool, error)

	// Shared expense operations
	CreateSharedExpense(ctx context.Context, expense *models.SharedExpense) error
	GetSharedExpense(ctx context.Context, id string) (*models.SharedExpense, error)
	GetUserSharedExpenses(ctx context.Context, userID string) ([]models.SharedExpense, error)
	GetActiveSharedExpenses(ctx context.Context) ([]models.SharedExpense, error)
	ConfirmParticipant(ctx context.Context, expenseID, userID string) error

	// Friendship operations
	CreateFriendship(ctx context.Context, friendship *models.Friendship) error
	GetAcceptedFriendships(ctx context.Context, userID string) ([]models.Friendship, error)
	FindFriendshipBetween(ctx context.Context, userID, friendID string) (*models.Friendship, error)
	GetFriendship(ctx context.Context, id string) (*models.Friendship, error)
	UpdateFriendshipStatus(ctx context.Context, id string, status models.FriendshipStatus) error

	// Notification operations
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetUserNotifications(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID string) error

	// Budget operations
	CreateBudget(ctx context.Context, budget *models.Budget) error
	GetUserBudgets(ctx context.Context, userID string) ([]models.Budget, error)
	DeleteBudget(ctx context.Context, id, userID string) (bool, error)
}
