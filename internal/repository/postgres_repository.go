package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/minhngvn/finshare-server/internal/models"
)

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// User repository methods
func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, full_name, password_hash, avatar_url, currency_preference, usd_vnd_rate, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.FullName, user.PasswordHash,
		user.AvatarURL, user.CurrencyPreference, user.UsdVndRate, user.CreatedAt)

	return err
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT * FROM users WHERE email = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT * FROM users WHERE id = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) UpdateUserSettings(ctx context.Context, userID string, settings models.UserSettingsRequest) error {
	query := `
		UPDATE users SET
			currency_preference = COALESCE($2, currency_preference),
			usd_vnd_rate = COALESCE($3, usd_vnd_rate),
			avatar_url = COALESCE($4, avatar_url)
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		userID, settings.CurrencyPreference, settings.UsdVndRate, settings.AvatarURL)
	return err
}

func (r *PostgresRepository) SearchUsers(ctx context.Context, query, excludeUserID string, limit int) ([]models.User, error) {
	sqlQuery := `
		SELECT * FROM users
		WHERE (email ILIKE '%' || $1 || '%' OR full_name ILIKE '%' || $1 || '%')
		AND id != $2
		LIMIT $3
	`

	var users []models.User
	err := r.db.SelectContext(ctx, &users, sqlQuery, query, excludeUserID, limit)
	if err != nil {
		return nil, err
	}

	return users, nil
}

// Category repository methods
func (r *PostgresRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, user_id, name, icon, color, type, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		category.ID, category.UserID, category.Name, category.Icon,
		category.Color, category.Type, category.IsDefault, category.CreatedAt)

	return err
}

func (r *PostgresRepository) GetUserCategories(ctx context.Context, userID string) ([]models.Category, error) {
	query := `SELECT * FROM categories WHERE user_id = $1 ORDER BY created_at`

	var categories []models.Category
	err := r.db.SelectContext(ctx, &categories, query, userID)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *PostgresRepository) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	query := `SELECT * FROM categories WHERE id = $1`

	var category models.Category
	err := r.db.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &category, nil
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}

// Transaction repository methods
func (r *PostgresRepository) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, category_id, amount, currency, description, date, receipt_url, is_shared, shared_expense_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		txn.ID, txn.UserID, txn.CategoryID, txn.Amount, txn.Currency,
		txn.Description, txn.Date, txn.ReceiptURL, txn.IsShared,
		txn.SharedExpenseID, txn.CreatedAt)

	return err
}

func (r *PostgresRepository) GetUserTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]models.Transaction, error) {
	query := `SELECT * FROM transactions WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		query += ` AND category_id = $` + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += ` AND date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += ` AND date <= $` + strconv.Itoa(len(args))
	}

	query += ` ORDER BY date DESC`

	var txns []models.Transaction
	err := r.db.SelectContext(ctx, &txns, query, args...)
	if err != nil {
		return nil, err
	}

	return txns, nil
}

func (r *PostgresRepository) DeleteTransaction(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// Shared expense repository methods
// CreateSharedExpense writes the expense and its participant rows in a
// single transaction so the record is either fully persisted or not at all.
func (r *PostgresRepository) CreateSharedExpense(ctx context.Context, expense *models.SharedExpense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO shared_expenses (id, title, description, total_amount, currency, creator_id, split_type, status, category_id, date, receipt_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = tx.ExecContext(ctx, query,
		expense.ID, expense.Title, expense.Description, expense.TotalAmount,
		expense.Currency, expense.CreatorID, expense.SplitType, expense.Status,
		expense.CategoryID, expense.Date, expense.ReceiptURL, expense.CreatedAt)
	if err != nil {
		return err
	}

	participantQuery := `
		INSERT INTO shared_expense_participants (expense_id, user_id, email, full_name, amount, paid, confirmed, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for i := range expense.Participants {
		p := &expense.Participants[i]
		p.ExpenseID = expense.ID
		p.Position = i

		_, err = tx.ExecContext(ctx, participantQuery,
			p.ExpenseID, p.UserID, p.Email, p.FullName, p.Amount, p.Paid, p.Confirmed, p.Position)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetSharedExpense(ctx context.Context, id string) (*models.SharedExpense, error) {
	query := `SELECT * FROM shared_expenses WHERE id = $1`

	var expense models.SharedExpense
	err := r.db.GetContext(ctx, &expense, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.loadParticipants(ctx, &expense); err != nil {
		return nil, err
	}

	return &expense, nil
}

func (r *PostgresRepository) GetUserSharedExpenses(ctx context.Context, userID string) ([]models.SharedExpense, error) {
	query := `
		SELECT e.* FROM shared_expenses e
		WHERE e.creator_id = $1
		OR EXISTS (
			SELECT 1 FROM shared_expense_participants p
			WHERE p.expense_id = e.id AND p.user_id = $1
		)
		ORDER BY e.date DESC
	`

	var expenses []models.SharedExpense
	err := r.db.SelectContext(ctx, &expenses, query, userID)
	if err != nil {
		return nil, err
	}

	for i := range expenses {
		if err := r.loadParticipants(ctx, &expenses[i]); err != nil {
			return nil, err
		}
	}

	return expenses, nil
}

func (r *PostgresRepository) GetActiveSharedExpenses(ctx context.Context) ([]models.SharedExpense, error) {
	query := `SELECT * FROM shared_expenses WHERE status = $1 ORDER BY date DESC`

	var expenses []models.SharedExpense
	err := r.db.SelectContext(ctx, &expenses, query, models.ExpenseStatusActive)
	if err != nil {
		return nil, err
	}

	for i := range expenses {
		if err := r.loadParticipants(ctx, &expenses[i]); err != nil {
			return nil, err
		}
	}

	return expenses, nil
}

// ConfirmParticipant sets the confirmed flag on a single participant row.
// The update targets one row, so two participants confirming the same
// expense concurrently can never overwrite each other's write.
func (r *PostgresRepository) ConfirmParticipant(ctx context.Context, expenseID, userID string) error {
	query := `
		UPDATE shared_expense_participants
		SET confirmed = TRUE
		WHERE expense_id = $1 AND user_id = $2
	`

	_, err := r.db.ExecContext(ctx, query, expenseID, userID)
	return err
}

func (r *PostgresRepository) loadParticipants(ctx context.Context, expense *models.SharedExpense) error {
	query := `SELECT * FROM shared_expense_participants WHERE expense_id = $1 ORDER BY position`

	return r.db.SelectContext(ctx, &expense.Participants, query, expense.ID)
}

// Friendship repository methods
func (r *PostgresRepository) CreateFriendship(ctx context.Context, friendship *models.Friendship) error {
	query := `
		INSERT INTO friendships (id, user_id, friend_id, friend_email, friend_name, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if friendship.ID == "" {
		friendship.ID = uuid.New().String()
	}
	if friendship.CreatedAt.IsZero() {
		friendship.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		friendship.ID, friendship.UserID, friendship.FriendID,
		friendship.FriendEmail, friendship.FriendName, friendship.Status, friendship.CreatedAt)

	return err
}

func (r *PostgresRepository) GetAcceptedFriendships(ctx context.Context, userID string) ([]models.Friendship, error) {
	query := `
		SELECT * FROM friendships
		WHERE (user_id = $1 OR friend_id = $1) AND status = $2
	`

	var friendships []models.Friendship
	err := r.db.SelectContext(ctx, &friendships, query, userID, models.FriendshipAccepted)
	if err != nil {
		return nil, err
	}

	return friendships, nil
}

func (r *PostgresRepository) FindFriendshipBetween(ctx context.Context, userID, friendID string) (*models.Friendship, error) {
	query := `
		SELECT * FROM friendships
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)
		LIMIT 1
	`

	var friendship models.Friendship
	err := r.db.GetContext(ctx, &friendship, query, userID, friendID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &friendship, nil
}

func (r *PostgresRepository) GetFriendship(ctx context.Context, id string) (*models.Friendship, error) {
	query := `SELECT * FROM friendships WHERE id = $1`

	var friendship models.Friendship
	err := r.db.GetContext(ctx, &friendship, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &friendship, nil
}

func (r *PostgresRepository) UpdateFriendshipStatus(ctx context.Context, id string, status models.FriendshipStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE friendships SET status = $2 WHERE id = $1`, id, status)
	return err
}

// Notification repository methods
func (r *PostgresRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, content, "read", created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		notification.ID, notification.UserID, notification.Type,
		notification.Content, notification.Read, notification.CreatedAt)

	return err
}

func (r *PostgresRepository) GetUserNotifications(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	query := `SELECT * FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	var notifications []models.Notification
	err := r.db.SelectContext(ctx, &notifications, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *PostgresRepository) MarkNotificationRead(ctx context.Context, id, userID string) error {
	query := `UPDATE notifications SET "read" = TRUE WHERE id = $1 AND user_id = $2`

	_, err := r.db.ExecContext(ctx, query, id, userID)
	return err
}

// Budget repository methods
func (r *PostgresRepository) CreateBudget(ctx context.Context, budget *models.Budget) error {
	query := `
		INSERT INTO budgets (id, user_id, category_id, amount, period, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	if budget.CreatedAt.IsZero() {
		budget.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		budget.ID, budget.UserID, budget.CategoryID, budget.Amount, budget.Period, budget.CreatedAt)

	return err
}

func (r *PostgresRepository) GetUserBudgets(ctx context.Context, userID string) ([]models.Budget, error) {
	query := `SELECT * FROM budgets WHERE user_id = $1 ORDER BY created_at`

	var budgets []models.Budget
	err := r.db.SelectContext(ctx, &budgets, query, userID)
	if err != nil {
		return nil, err
	}

	return budgets, nil
}

func (r *PostgresRepository) DeleteBudget(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
