package api_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/minhngvn/finshare-server/internal/api/testutils"
	"github.com/minhngvn/finshare-server/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConcurrentConfirmations(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	const numParticipants = 8

	emails := make([]string, 0, numParticipants)
	tokens := make(map[string]string, numParticipants)
	for i := 0; i < numParticipants; i++ {
		email := fmt.Sprintf("participant%d@example.com", i)
		id, token := testutils.CreateTestUser(t, testCtx.Repository, email, fmt.Sprintf("Participant %d", i))
		emails = append(emails, email)
		tokens[id] = token
	}

	expense := createExpense(t, testCtx, models.CreateSharedExpenseRequest{
		Title:             "Group trip",
		TotalAmount:       decimal.NewFromInt(900000),
		Currency:          "VND",
		ParticipantEmails: emails,
		SplitType:         models.SplitEqual,
		Date:              time.Now().UTC(),
	})
	assert.Len(t, expense.Participants, numParticipants+1)

	confirmPath := fmt.Sprintf("/api/shared-expenses/%s/confirm", expense.ID)

	// All participants confirm at the same time
	var wg sync.WaitGroup
	for id, token := range tokens {
		wg.Add(1)
		go func(id, token string) {
			defer wg.Done()

			w := testutils.PerformRequest(
				testCtx.Router,
				http.MethodPost,
				confirmPath,
				nil,
				testutils.AuthHeaders(token),
			)
			assert.Equal(t, http.StatusOK, w.Code, "confirm failed for %s", id)
		}(id, token)
	}
	wg.Wait()

	// No confirmation may be lost: every participant ends up confirmed
	stored, err := testCtx.Repository.GetSharedExpense(context.Background(), expense.ID)
	assert.NoError(t, err)
	assert.Len(t, stored.Participants, numParticipants+1)
	for _, p := range stored.Participants {
		assert.True(t, p.Confirmed, "participant %s lost their confirmation", p.UserID)
	}
}

func TestConcurrentRepeatedConfirmations(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	_, aliceJWT := testutils.CreateTestUser(t, testCtx.Repository, "alice@example.com", "Alice")

	expense := createExpense(t, testCtx, models.CreateSharedExpenseRequest{
		Title:             "Coffee",
		TotalAmount:       decimal.NewFromInt(60000),
		Currency:          "VND",
		ParticipantEmails: []string{"alice@example.com"},
		SplitType:         models.SplitEqual,
		Date:              time.Now().UTC(),
	})

	confirmPath := fmt.Sprintf("/api/shared-expenses/%s/confirm", expense.ID)

	// The same participant confirming repeatedly in parallel always succeeds
	const numAttempts = 10
	var wg sync.WaitGroup
	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := testutils.PerformRequest(
				testCtx.Router,
				http.MethodPost,
				confirmPath,
				nil,
				testutils.AuthHeaders(aliceJWT),
			)
			assert.Equal(t, http.StatusOK, w.Code)
		}()
	}
	wg.Wait()

	stored, err := testCtx.Repository.GetSharedExpense(context.Background(), expense.ID)
	assert.NoError(t, err)
	assert.True(t, stored.Participants[0].Confirmed)

	// The creator's state is untouched by the other participant's confirms
	creator := stored.Participants[len(stored.Participants)-1]
	assert.Equal(t, testCtx.TestUserID, creator.UserID)
	assert.True(t, creator.Confirmed)
	assert.True(t, creator.Paid.Equal(decimal.NewFromInt(60000)))
}
