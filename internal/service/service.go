package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/minhngvn/finshare-server/internal/mail"
	"github.com/minhngvn/finshare-server/internal/models"
	"github.com/minhngvn/finshare-server/internal/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

var defaultUsdVndRate = decimal.NewFromInt(25000)

// Service defines all the business logic operations
type Service interface {
	// Authentication
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// Profile
	UpdateProfile(ctx context.Context, userID string, settings models.UserSettingsRequest) (*models.User, error)
	SearchUsers(ctx context.Context, userID, query string) ([]models.User, error)

	// Categories
	ListCategories(ctx context.Context, userID string) ([]models.Category, error)
	CreateCategory(ctx context.Context, userID string, req models.CreateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) error

	// Transactions
	ListTransactions(ctx context.Context, userID string, filter repository.TransactionFilter) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, userID string, req models.CreateTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error

	// Shared expenses
	ListSharedExpenses(ctx context.Context, userID string) ([]models.SharedExpense, error)
	CreateSharedExpense(ctx context.Context, creatorID string, req models.CreateSharedExpenseRequest) (*models.SharedExpense, error)
	ConfirmParticipation(ctx context.Context, expenseID, callerID string) error
	GetSettlements(ctx context.Context, expenseID, callerID string) ([]models.Settlement, error)
	SendDebtReminders(ctx context.Context) error

	// Friends
	ListFriends(ctx context.Context, userID string) ([]models.Friendship, error)
	SendFriendRequest(ctx context.Context, userID, friendEmail string) error
	AcceptFriendRequest(ctx context.Context, userID, friendshipID string) error

	// Notifications
	ListNotifications(ctx context.Context, userID string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID string) error

	// Budgets
	ListBudgets(ctx context.Context, userID string) ([]models.Budget, error)
	CreateBudget(ctx context.Context, userID string, req models.CreateBudgetRequest) (*models.Budget, error)
	DeleteBudget(ctx context.Context, userID, budgetID string) error

	// Statistics
	StatisticsOverview(ctx context.Context, userID, period string) (*models.StatisticsOverview, error)
	StatisticsByCategory(ctx context.Context, userID, period string) ([]models.CategoryStatistics, error)
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	mailer        *mail.Mailer
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository, mailer *mail.Mailer, jwtSecret string) Service {
	return &DefaultService{
		repo:          repo,
		mailer:        mailer,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 7 * 24 * time.Hour, // 7 days token validity
	}
}

// Default categories seeded for every new account.
var defaultCategories = []models.Category{
	{Name: "Ăn uống", Icon: "UtensilsCrossed", Color: "#F59E0B", Type: models.TransactionExpense},
	{Name: "Di chuyển", Icon: "Car", Color: "#3B82F6", Type: models.TransactionExpense},
	{Name: "Mua sắm", Icon: "ShoppingBag", Color: "#EC4899", Type: models.TransactionExpense},
	{Name: "Giải trí", Icon: "Gamepad2", Color: "#8B5CF6", Type: models.TransactionExpense},
	{Name: "Sức khỏe", Icon: "Heart", Color: "#EF4444", Type: models.TransactionExpense},
	{Name: "Hóa đơn", Icon: "Receipt", Color: "#6366F1", Type: models.TransactionExpense},
	{Name: "Lương", Icon: "Wallet", Color: "#10B981", Type: models.TransactionIncome},
	{Name: "Khác", Icon: "MoreHorizontal", Color: "#64748B", Type: models.TransactionExpense},
}

// Authentication methods
func (s *DefaultService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	existingUser, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking user existence: %w", err)
	}

	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:                 uuid.New().String(),
		Email:              req.Email,
		FullName:           req.FullName,
		PasswordHash:       string(hashedPassword),
		CurrencyPreference: "VND",
		UsdVndRate:         defaultUsdVndRate,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	for _, cat := range defaultCategories {
		category := cat
		category.ID = uuid.New().String()
		category.UserID = user.ID
		category.IsDefault = true
		if err := s.repo.CreateCategory(ctx, &category); err != nil {
			return nil, fmt.Errorf("error creating default category: %w", err)
		}
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &models.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User: models.UserSummary{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
		},
	}, nil
}

func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &models.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User: models.UserSummary{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
		},
	}, nil
}

func (s *DefaultService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if user == nil {
		return nil, ErrNotFound
	}

	return user, nil
}

// Profile methods
func (s *DefaultService) UpdateProfile(ctx context.Context, userID string, settings models.UserSettingsRequest) (*models.User, error) {
	if err := s.repo.UpdateUserSettings(ctx, userID, settings); err != nil {
		return nil, fmt.Errorf("error updating user settings: %w", err)
	}

	return s.GetUser(ctx, userID)
}

func (s *DefaultService) SearchUsers(ctx context.Context, userID, query string) ([]models.User, error) {
	users, err := s.repo.SearchUsers(ctx, query, userID, 10)
	if err != nil {
		return nil, fmt.Errorf("error searching users: %w", err)
	}

	return users, nil
}

// Helper methods
func (s *DefaultService) generateJWT(user *models.User) (string, error) {
	expirationTime := time.Now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub": user.ID, // subject
		"exp": expirationTime.Unix(),
		"iat": time.Now().Unix(), // issued at
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
