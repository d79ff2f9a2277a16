package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered account.
type User struct {
	ID                 string          `db:"id" json:"id"`
	Email              string          `db:"email" json:"email"`
	FullName           string          `db:"full_name" json:"fullName"`
	PasswordHash       string          `db:"password_hash" json:"-"`
	AvatarURL          *string         `db:"avatar_url" json:"avatarUrl"`
	CurrencyPreference string          `db:"currency_preference" json:"currencyPreference"`
	UsdVndRate         decimal.Decimal `db:"usd_vnd_rate" json:"usdVndRate"`
	CreatedAt          time.Time       `db:"created_at" json:"createdAt"`
}

// Category is a user-owned transaction category.
type Category struct {
	ID        string          `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"userId"`
	Name      string          `db:"name" json:"name"`
	Icon      string          `db:"icon" json:"icon"`
	Color     string          `db:"color" json:"color"`
	Type      TransactionType `db:"type" json:"type"`
	IsDefault bool            `db:"is_default" json:"isDefault"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}

// Transaction is a single personal income or expense entry.
type Transaction struct {
	ID              string          `db:"id" json:"id"`
	UserID          string          `db:"user_id" json:"userId"`
	CategoryID      string          `db:"category_id" json:"categoryId"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	Currency        string          `db:"currency" json:"currency"`
	Description     string          `db:"description" json:"description"`
	Date            time.Time       `db:"date" json:"date"`
	ReceiptURL      *string         `db:"receipt_url" json:"receiptUrl"`
	IsShared        bool            `db:"is_shared" json:"isShared"`
	SharedExpenseID *string         `db:"shared_expense_id" json:"sharedExpenseId"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
}

// Participant is one identity's stake in a shared expense: the assessed
// share, the running paid amount and the confirmation flag. The email and
// name are a snapshot taken when the participant was added.
type Participant struct {
	ExpenseID string          `db:"expense_id" json:"-"`
	UserID    string          `db:"user_id" json:"userId"`
	Email     string          `db:"email" json:"email"`
	FullName  string          `db:"full_name" json:"fullName"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Paid      decimal.Decimal `db:"paid" json:"paid"`
	Confirmed bool            `db:"confirmed" json:"confirmed"`
	Position  int             `db:"position" json:"-"`
}

// SharedExpense is an expense split among several participants. The total
// amount, currency and creator are fixed at creation.
type SharedExpense struct {
	ID          string          `db:"id" json:"id"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"totalAmount"`
	Currency    string          `db:"currency" json:"currency"`
	CreatorID   string          `db:"creator_id" json:"creatorId"`
	SplitType   SplitType       `db:"split_type" json:"splitType"`
	Status      string          `db:"status" json:"status"`
	CategoryID  *string         `db:"category_id" json:"categoryId"`
	Date        time.Time       `db:"date" json:"date"`
	ReceiptURL  *string         `db:"receipt_url" json:"receiptUrl"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`

	Participants []Participant `db:"-" json:"participants"`
}

// ExpenseStatusActive is the only status assigned today; no transition
// logic exists yet.
const ExpenseStatusActive = "active"

// Settlement is a derived, read-only view of one participant's balance.
// Balance is paid minus the assessed share; a non-negative balance means
// the participant is settled (or overpaid).
type Settlement struct {
	UserID     string          `json:"userId"`
	UserName   string          `json:"userName"`
	AmountOwed decimal.Decimal `json:"amountOwed"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	Balance    decimal.Decimal `json:"balance"`
	Status     string          `json:"status"`
}

const (
	SettlementSettled = "settled"
	SettlementOwes    = "owes"
)

// Friendship links two users. The row is owned by the requesting user;
// friend_email and friend_name snapshot the other side at request time.
type Friendship struct {
	ID          string           `db:"id" json:"id"`
	UserID      string           `db:"user_id" json:"userId"`
	FriendID    string           `db:"friend_id" json:"friendId"`
	FriendEmail string           `db:"friend_email" json:"friendEmail"`
	FriendName  string           `db:"friend_name" json:"friendName"`
	Status      FriendshipStatus `db:"status" json:"status"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
}

// Notification is a message delivered to a single user.
type Notification struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Type      string    `db:"type" json:"type"`
	Content   string    `db:"content" json:"content"`
	Read      bool      `db:"read" json:"read"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

const (
	NotificationSharedExpenseAdded = "shared_expense_added"
	NotificationFriendRequest      = "friend_request"
	NotificationPaymentReminder    = "payment_reminder"
)

// Budget caps spending for one category over a period.
type Budget struct {
	ID         string          `db:"id" json:"id"`
	UserID     string          `db:"user_id" json:"userId"`
	CategoryID string          `db:"category_id" json:"categoryId"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	Period     string          `db:"period" json:"period"`
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`
}
