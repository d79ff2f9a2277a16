package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/minhngvn/finshare-server/internal/api/testutils"
	"github.com/minhngvn/finshare-server/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUpdateProfile(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	currency := "USD"
	rate := decimal.NewFromInt(26500)

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		"/api/users/profile",
		models.UserSettingsRequest{
			CurrencyPreference: &currency,
			UsdVndRate:         &rate,
		},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	err := json.Unmarshal(w.Body.Bytes(), &user)
	assert.NoError(t, err)
	assert.Equal(t, "USD", user.CurrencyPreference)
	assert.True(t, user.UsdVndRate.Equal(rate))

	// Omitted fields keep their values
	avatar := "https://example.com/avatar.png"
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		"/api/users/profile",
		models.UserSettingsRequest{AvatarURL: &avatar},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	err = json.Unmarshal(w.Body.Bytes(), &user)
	assert.NoError(t, err)
	assert.Equal(t, "USD", user.CurrencyPreference)
	assert.NotNil(t, user.AvatarURL)
	assert.Equal(t, avatar, *user.AvatarURL)
}

func TestSearchUsers(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	testutils.CreateTestUser(t, testCtx.Repository, "alice@example.com", "Alice Nguyen")
	testutils.CreateTestUser(t, testCtx.Repository, "bob@example.com", "Bob Tran")

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/users/search?q=alice",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var users []models.User
	err := json.Unmarshal(w.Body.Bytes(), &users)
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "alice@example.com", users[0].Email)

	// The caller never matches their own account
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/users/search?q=testuser",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	err = json.Unmarshal(w.Body.Bytes(), &users)
	assert.NoError(t, err)
	assert.Len(t, users, 0)

	// Empty query returns an empty list, not everyone
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/users/search",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	err = json.Unmarshal(w.Body.Bytes(), &users)
	assert.NoError(t, err)
	assert.Len(t, users, 0)
}

func TestSendDebtReminders(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	aliceID, _ := testutils.CreateTestUser(t, testCtx.Repository, "alice@example.com", "Alice")

	createExpense(t, testCtx, models.CreateSharedExpenseRequest{
		Title:             "Utilities",
		TotalAmount:       decimal.NewFromInt(400000),
		Currency:          "VND",
		ParticipantEmails: []string{"alice@example.com"},
		SplitType:         models.SplitEqual,
		Date:              time.Now().UTC(),
	})

	err := testCtx.Service.SendDebtReminders(context.Background())
	assert.NoError(t, err)

	// The owing invitee gets a reminder on top of the creation notification
	notifications, err := testCtx.Repository.GetUserNotifications(context.Background(), aliceID, 100)
	assert.NoError(t, err)
	assert.Len(t, notifications, 2)

	var reminders int
	for _, n := range notifications {
		if n.Type == models.NotificationPaymentReminder {
			reminders++
		}
	}
	assert.Equal(t, 1, reminders)

	// The creator has a non-negative balance and gets no reminder
	creatorNotifications, err := testCtx.Repository.GetUserNotifications(context.Background(), testCtx.TestUserID, 100)
	assert.NoError(t, err)
	assert.Len(t, creatorNotifications, 0)
}
