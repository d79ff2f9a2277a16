package service

import (
	"context"
	"fmt"

	"github.com/minhngvn/finshare-server/internal/models"
	"github.com/minhngvn/finshare-server/internal/utils"
	"github.com/shopspring/decimal"
)

// Shared expense methods

func (s *DefaultService) ListSharedExpenses(ctx context.Context, userID string) ([]models.SharedExpense, error) {
	expenses, err := s.repo.GetUserSharedExpenses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing shared expenses: %w", err)
	}

	return expenses, nil
}

// CreateSharedExpense resolves the invited emails, computes the split and
// persists the expense in a single write. Invited emails that do not
// resolve to a known user are skipped, not rejected; an expense whose
// invitees all fail to resolve is still created with the creator as its
// only participant. The creator is always appended last, already confirmed
// and credited with the full paid amount.
//
// Notification fan-out to the other participants is best-effort: a failed
// notification or invite email is logged and never rolls back the expense.
func (s *DefaultService) CreateSharedExpense(
	ctx context.Context,
	creatorID string,
	req models.CreateSharedExpenseRequest,
) (*models.SharedExpense, error) {
	if !req.TotalAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	splitType := req.SplitType
	if splitType == "" {
		splitType = models.SplitEqual
	}

	creator, err := s.repo.GetUserByID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("error getting creator: %w", err)
	}
	if creator == nil {
		return nil, ErrNotFound
	}

	// One participant entry per distinct resolved identity. The creator is
	// appended separately, so their own email in the invite list is skipped
	// here like any other duplicate.
	var participants []models.Participant
	seen := map[string]bool{creatorID: true}
	for _, email := range req.ParticipantEmails {
		user, err := s.repo.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("error resolving participant: %w", err)
		}
		if user == nil {
			utils.Logger.WithField("email", email).Info("skipping unresolved participant email")
			continue
		}
		if seen[user.ID] {
			continue
		}
		seen[user.ID] = true

		participants = append(participants, models.Participant{
			UserID:   user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Amount:   decimal.Zero,
			Paid:     decimal.Zero,
		})
	}

	participants = append(participants, models.Participant{
		UserID:    creator.ID,
		Email:     creator.Email,
		FullName:  creator.FullName,
		Amount:    decimal.Zero,
		Paid:      req.TotalAmount,
		Confirmed: true,
	})

	// Equal split: total / n rounded half-up to 2 decimal places per
	// participant. The rounding residue is not redistributed, so the shares
	// may sum to slightly more or less than the total. Custom splits carry
	// no per-participant amounts yet; they stay zero until caller-supplied
	// shares are supported.
	if splitType == models.SplitEqual {
		share := req.TotalAmount.
			Div(decimal.NewFromInt(int64(len(participants)))).
			Round(2)
		for i := range participants {
			participants[i].Amount = share
		}
	}

	expense := &models.SharedExpense{
		Title:        req.Title,
		Description:  req.Description,
		TotalAmount:  req.TotalAmount,
		Currency:     req.Currency,
		CreatorID:    creator.ID,
		SplitType:    splitType,
		Status:       models.ExpenseStatusActive,
		CategoryID:   req.CategoryID,
		Date:         req.Date,
		ReceiptURL:   req.ReceiptURL,
		Participants: participants,
	}

	if err := s.repo.CreateSharedExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("error creating shared expense: %w", err)
	}

	s.notifyParticipants(ctx, creator, expense)

	return expense, nil
}

// notifyParticipants fans out one notification per non-creator participant.
// Each write is independent; any subset may fail without affecting the rest.
func (s *DefaultService) notifyParticipants(ctx context.Context, creator *models.User, expense *models.SharedExpense) {
	for _, p := range expense.Participants {
		if p.UserID == creator.ID {
			continue
		}

		notification := &models.Notification{
			UserID:  p.UserID,
			Type:    models.NotificationSharedExpenseAdded,
			Content: fmt.Sprintf("%s đã thêm bạn vào khoản chi '%s'", creator.FullName, expense.Title),
		}
		if err := s.repo.CreateNotification(ctx, notification); err != nil {
			utils.Logger.WithError(err).WithField("userId", p.UserID).
				Error("failed to create shared expense notification")
		}

		if s.mailer != nil && s.mailer.Enabled() {
			go func(email string) {
				if err := s.mailer.SendExpenseInvite(
					email, creator.FullName, expense.Title,
					expense.TotalAmount.String(), expense.Currency,
				); err != nil {
					utils.Logger.WithError(err).Error("failed to send expense invite email")
				}
			}(p.Email)
		}
	}
}

// ConfirmParticipation marks the caller's participant entry as confirmed.
// Confirmation is one-way and idempotent. The underlying update targets the
// caller's row only, so two participants confirming concurrently cannot
// lose each other's write.
func (s *DefaultService) ConfirmParticipation(ctx context.Context, expenseID, callerID string) error {
	expense, err := s.repo.GetSharedExpense(ctx, expenseID)
	if err != nil {
		return fmt.Errorf("error getting shared expense: %w", err)
	}
	if expense == nil {
		return ErrNotFound
	}

	var participant *models.Participant
	for i := range expense.Participants {
		if expense.Participants[i].UserID == callerID {
			participant = &expense.Participants[i]
			break
		}
	}
	if participant == nil {
		return ErrForbidden
	}

	if participant.Confirmed {
		return nil
	}

	if err := s.repo.ConfirmParticipant(ctx, expenseID, callerID); err != nil {
		return fmt.Errorf("error confirming participation: %w", err)
	}

	return nil
}

// GetSettlements derives one settlement record per participant, in stored
// order. Any authenticated caller may read settlements for an expense id
// they know; membership is deliberately not checked here.
func (s *DefaultService) GetSettlements(ctx context.Context, expenseID, callerID string) ([]models.Settlement, error) {
	expense, err := s.repo.GetSharedExpense(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("error getting shared expense: %w", err)
	}
	if expense == nil {
		return nil, ErrNotFound
	}

	settlements := make([]models.Settlement, 0, len(expense.Participants))
	for _, p := range expense.Participants {
		balance := p.Paid.Sub(p.Amount)
		status := models.SettlementOwes
		if balance.GreaterThanOrEqual(decimal.Zero) {
			status = models.SettlementSettled
		}

		settlements = append(settlements, models.Settlement{
			UserID:     p.UserID,
			UserName:   p.FullName,
			AmountOwed: p.Amount,
			AmountPaid: p.Paid,
			Balance:    balance,
			Status:     status,
		})
	}

	return settlements, nil
}

// SendDebtReminders notifies every participant who still owes part of their
// share on an active shared expense. Failures are logged per participant
// and do not stop the sweep.
func (s *DefaultService) SendDebtReminders(ctx context.Context) error {
	expenses, err := s.repo.GetActiveSharedExpenses(ctx)
	if err != nil {
		return fmt.Errorf("error listing active shared expenses: %w", err)
	}

	for _, expense := range expenses {
		for _, p := range expense.Participants {
			balance := p.Paid.Sub(p.Amount)
			if balance.GreaterThanOrEqual(decimal.Zero) {
				continue
			}
			owed := balance.Abs()

			notification := &models.Notification{
				UserID: p.UserID,
				Type:   models.NotificationPaymentReminder,
				Content: fmt.Sprintf("Bạn còn nợ %s %s cho khoản chi '%s'",
					owed.String(), expense.Currency, expense.Title),
			}
			if err := s.repo.CreateNotification(ctx, notification); err != nil {
				utils.Logger.WithError(err).WithField("userId", p.UserID).
					Error("failed to create payment reminder")
				continue
			}

			if s.mailer != nil && s.mailer.Enabled() {
				go func(email, title, owed, currency string) {
					if err := s.mailer.SendDebtReminder(email, title, owed, currency); err != nil {
						utils.Logger.WithError(err).Error("failed to send debt reminder email")
					}
				}(p.Email, expense.Title, owed.String(), expense.Currency)
			}
		}
	}

	return nil
}
