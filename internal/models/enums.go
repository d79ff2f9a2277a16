package models

// TransactionType classifies a transaction's direction.
type TransactionType string

const (
	TransactionExpense TransactionType = "expense"
	TransactionIncome  TransactionType = "income"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionExpense, TransactionIncome:
		return true
	}
	return false
}

// SplitType selects how a shared expense is divided among participants.
type SplitType string

const (
	// SplitEqual divides the total evenly across all participants.
	SplitEqual SplitType = "equal"
	// SplitCustom is accepted but per-participant amounts are not computed;
	// they stay zero until a caller-supplied split is supported.
	SplitCustom SplitType = "custom"
)

func (s SplitType) Valid() bool {
	switch s {
	case SplitEqual, SplitCustom:
		return true
	}
	return false
}

// FriendshipStatus tracks the lifecycle of a friend request.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipRejected FriendshipStatus = "rejected"
)

func (f FriendshipStatus) Valid() bool {
	switch f {
	case FriendshipPending, FriendshipAccepted, FriendshipRejected:
		return true
	}
	return false
}
