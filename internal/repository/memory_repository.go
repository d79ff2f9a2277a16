package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/minhngvn/finshare-server/internal/models"
)

// MemoryRepository is an in-memory Repository implementation. It backs the
// test suite and any environment without a database. All methods are safe
// for concurrent use; ConfirmParticipant mutates a single participant entry
// under the lock, matching the targeted-row semantics of the Postgres
// implementation.
type MemoryRepository struct {
	mu sync.RWMutex

	users         map[string]models.User
	categories    map[string]models.Category
	transactions  map[string]models.Transaction
	expenses      map[string]models.SharedExpense
	friendships   map[string]models.Friendship
	notifications map[string]models.Notification
	budgets       map[string]models.Budget
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:         make(map[string]models.User),
		categories:    make(map[string]models.Category),
		transactions:  make(map[string]models.Transaction),
		expenses:      make(map[string]models.SharedExpense),
		friendships:   make(map[string]models.Friendship),
		notifications: make(map[string]models.Notification),
		budgets:       make(map[string]models.Budget),
	}
}

// User repository methods
func (r *MemoryRepository) CreateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	r.users[user.ID] = *user
	return nil
}

func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.users[id]; ok {
		user := u
		return &user, nil
	}
	return nil, nil
}

func (r *MemoryRepository) UpdateUserSettings(ctx context.Context, userID string, settings models.UserSettingsRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil
	}

	if settings.CurrencyPreference != nil {
		u.CurrencyPreference = *settings.CurrencyPreference
	}
	if settings.UsdVndRate != nil {
		u.UsdVndRate = *settings.UsdVndRate
	}
	if settings.AvatarURL != nil {
		u.AvatarURL = settings.AvatarURL
	}

	r.users[userID] = u
	return nil
}

func (r *MemoryRepository) SearchUsers(ctx context.Context, query, excludeUserID string, limit int) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	var users []models.User
	for _, u := range r.users {
		if u.ID == excludeUserID {
			continue
		}
		if strings.Contains(strings.ToLower(u.Email), q) || strings.Contains(strings.ToLower(u.FullName), q) {
			users = append(users, u)
			if len(users) >= limit {
				break
			}
		}
	}
	return users, nil
}

// Category repository methods
func (r *MemoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}

	r.categories[category.ID] = *category
	return nil
}

func (r *MemoryRepository) GetUserCategories(ctx context.Context, userID string) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var categories []models.Category
	for _, c := range r.categories {
		if c.UserID == userID {
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].CreatedAt.Before(categories[j].CreatedAt)
	})
	return categories, nil
}

func (r *MemoryRepository) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.categories[id]; ok {
		category := c
		return &category, nil
	}
	return nil, nil
}

func (r *MemoryRepository) DeleteCategory(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.categories, id)
	return nil
}

// Transaction repository methods
func (r *MemoryRepository) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}

	r.transactions[txn.ID] = *txn
	return nil
}

func (r *MemoryRepository) GetUserTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var txns []models.Transaction
	for _, t := range r.transactions {
		if t.UserID != userID {
			continue
		}
		if filter.CategoryID != "" && t.CategoryID != filter.CategoryID {
			continue
		}
		if filter.From != nil && t.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && t.Date.After(*filter.To) {
			continue
		}
		txns = append(txns, t)
	}
	sort.Slice(txns, func(i, j int) bool {
		return txns[i].Date.After(txns[j].Date)
	})
	return txns, nil
}

func (r *MemoryRepository) DeleteTransaction(ctx context.Context, id, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.transactions[id]; ok && t.UserID == userID {
		delete(r.transactions, id)
		return true, nil
	}
	return false, nil
}

// Shared expense repository methods
func (r *MemoryRepository) CreateSharedExpense(ctx context.Context, expense *models.SharedExpense) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}

	for i := range expense.Participants {
		expense.Participants[i].ExpenseID = expense.ID
		expense.Participants[i].Position = i
	}

	stored := *expense
	stored.Participants = append([]models.Participant(nil), expense.Participants...)
	r.expenses[expense.ID] = stored
	return nil
}

func (r *MemoryRepository) GetSharedExpense(ctx context.Context, id string) (*models.SharedExpense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.expenses[id]; ok {
		return copyExpense(e), nil
	}
	return nil, nil
}

func (r *MemoryRepository) GetUserSharedExpenses(ctx context.Context, userID string) ([]models.SharedExpense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var expenses []models.SharedExpense
	for _, e := range r.expenses {
		if e.CreatorID == userID {
			expenses = append(expenses, *copyExpense(e))
			continue
		}
		for _, p := range e.Participants {
			if p.UserID == userID {
				expenses = append(expenses, *copyExpense(e))
				break
			}
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})
	return expenses, nil
}

func (r *MemoryRepository) GetActiveSharedExpenses(ctx context.Context) ([]models.SharedExpense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var expenses []models.SharedExpense
	for _, e := range r.expenses {
		if e.Status == models.ExpenseStatusActive {
			expenses = append(expenses, *copyExpense(e))
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})
	return expenses, nil
}

func (r *MemoryRepository) ConfirmParticipant(ctx context.Context, expenseID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.expenses[expenseID]
	if !ok {
		return nil
	}

	for i := range e.Participants {
		if e.Participants[i].UserID == userID {
			e.Participants[i].Confirmed = true
			break
		}
	}
	r.expenses[expenseID] = e
	return nil
}

func copyExpense(e models.SharedExpense) *models.SharedExpense {
	out := e
	out.Participants = append([]models.Participant(nil), e.Participants...)
	return &out
}

// Friendship repository methods
func (r *MemoryRepository) CreateFriendship(ctx context.Context, friendship *models.Friendship) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if friendship.ID == "" {
		friendship.ID = uuid.New().String()
	}
	if friendship.CreatedAt.IsZero() {
		friendship.CreatedAt = time.Now().UTC()
	}

	r.friendships[friendship.ID] = *friendship
	return nil
}

func (r *MemoryRepository) GetAcceptedFriendships(ctx context.Context, userID string) ([]models.Friendship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var friendships []models.Friendship
	for _, f := range r.friendships {
		if f.Status != models.FriendshipAccepted {
			continue
		}
		if f.UserID == userID || f.FriendID == userID {
			friendships = append(friendships, f)
		}
	}
	return friendships, nil
}

func (r *MemoryRepository) FindFriendshipBetween(ctx context.Context, userID, friendID string) (*models.Friendship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.friendships {
		if (f.UserID == userID && f.FriendID == friendID) || (f.UserID == friendID && f.FriendID == userID) {
			friendship := f
			return &friendship, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) GetFriendship(ctx context.Context, id string) (*models.Friendship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.friendships[id]; ok {
		friendship := f
		return &friendship, nil
	}
	return nil, nil
}

func (r *MemoryRepository) UpdateFriendshipStatus(ctx context.Context, id string, status models.FriendshipStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.friendships[id]; ok {
		f.Status = status
		r.friendships[id] = f
	}
	return nil
}

// Notification repository methods
func (r *MemoryRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}

	r.notifications[notification.ID] = *notification
	return nil
}

func (r *MemoryRepository) GetUserNotifications(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var notifications []models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			notifications = append(notifications, n)
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	if len(notifications) > limit {
		notifications = notifications[:limit]
	}
	return notifications, nil
}

func (r *MemoryRepository) MarkNotificationRead(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n, ok := r.notifications[id]; ok && n.UserID == userID {
		n.Read = true
		r.notifications[id] = n
	}
	return nil
}

// Budget repository methods
func (r *MemoryRepository) CreateBudget(ctx context.Context, budget *models.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	if budget.CreatedAt.IsZero() {
		budget.CreatedAt = time.Now().UTC()
	}

	r.budgets[budget.ID] = *budget
	return nil
}

func (r *MemoryRepository) GetUserBudgets(ctx context.Context, userID string) ([]models.Budget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var budgets []models.Budget
	for _, b := range r.budgets {
		if b.UserID == userID {
			budgets = append(budgets, b)
		}
	}
	sort.Slice(budgets, func(i, j int) bool {
		return budgets[i].CreatedAt.Before(budgets[j].CreatedAt)
	})
	return budgets, nil
}

func (r *MemoryRepository) DeleteBudget(ctx context.Context, id, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.budgets[id]; ok && b.UserID == userID {
		delete(r.budgets, id)
		return true, nil
	}
	return false, nil
}
