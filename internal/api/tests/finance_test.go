package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/minhngvn/finshare-server/internal/api/testutils"
	"github.com/minhngvn/finshare-server/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func createCategory(t *testing.T, testCtx *testutils.TestContext, name string, categoryType models.TransactionType) models.Category {
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/categories",
		models.CreateCategoryRequest{
			Name:  name,
			Icon:  "tag",
			Color: "#FF5722",
			Type:  categoryType,
		},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusCreated, w.Code)

	var category models.Category
	err := json.Unmarshal(w.Body.Bytes(), &category)
	assert.NoError(t, err)
	assert.NotEmpty(t, category.ID)
	return category
}

func createTransaction(t *testing.T, testCtx *testutils.TestContext, categoryID string, amount decimal.Decimal, date time.Time) models.Transaction {
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/transactions",
		models.CreateTransactionRequest{
			CategoryID: categoryID,
			Amount:     amount,
			Currency:   "VND",
			Date:       date,
		},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusCreated, w.Code)

	var txn models.Transaction
	err := json.Unmarshal(w.Body.Bytes(), &txn)
	assert.NoError(t, err)
	assert.NotEmpty(t, txn.ID)
	return txn
}

func TestCategories(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	category := createCategory(t, testCtx, "Pets", models.TransactionExpense)
	assert.False(t, category.IsDefault)

	// The new category appears alongside the seeded defaults
	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/categories", nil, testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var categories []models.Category
	err := json.Unmarshal(w.Body.Bytes(), &categories)
	assert.NoError(t, err)
	assert.Len(t, categories, 1)

	// Deleting a custom category works
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/categories/%s", category.ID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	// Deleting it again is a 404
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/categories/%s", category.ID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteDefaultCategory(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Register through the API so the default categories get seeded
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/register",
		models.RegisterRequest{
			Email:    "seeded@example.com",
			Password: "testpassword",
			FullName: "Seeded User",
		},
		nil,
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var authResp models.AuthResponse
	err := json.Unmarshal(w.Body.Bytes(), &authResp)
	assert.NoError(t, err)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/categories", nil, testutils.AuthHeaders(authResp.AccessToken))
	assert.Equal(t, http.StatusOK, w.Code)

	var categories []models.Category
	err = json.Unmarshal(w.Body.Bytes(), &categories)
	assert.NoError(t, err)
	assert.NotEmpty(t, categories)
	assert.True(t, categories[0].IsDefault)

	// Default categories cannot be deleted
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/categories/%s", categories[0].ID),
		nil,
		testutils.AuthHeaders(authResp.AccessToken),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryOwnership(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	_, aliceJWT := testutils.CreateTestUser(t, testCtx.Repository, "alice@example.com", "Alice")

	category := createCategory(t, testCtx, "Books", models.TransactionExpense)

	// Another user's delete reads as not found
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/categories/%s", category.ID),
		nil,
		testutils.AuthHeaders(aliceJWT),
	)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransactions(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	food := createCategory(t, testCtx, "Food", models.TransactionExpense)
	travel := createCategory(t, testCtx, "Travel", models.TransactionExpense)

	now := time.Now().UTC()
	createTransaction(t, testCtx, food.ID, decimal.NewFromInt(45000), now)
	createTransaction(t, testCtx, travel.ID, decimal.NewFromInt(120000), now.AddDate(0, 0, -10))
	old := createTransaction(t, testCtx, food.ID, decimal.NewFromInt(30000), now.AddDate(0, -2, 0))

	// Unfiltered list, newest first
	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/transactions", nil, testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var txns []models.Transaction
	err := json.Unmarshal(w.Body.Bytes(), &txns)
	assert.NoError(t, err)
	assert.Len(t, txns, 3)
	assert.True(t, txns[0].Date.After(txns[1].Date))

	// Filter by category
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		fmt.Sprintf("/api/transactions?categoryId=%s", food.ID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	err = json.Unmarshal(w.Body.Bytes(), &txns)
	assert.NoError(t, err)
	assert.Len(t, txns, 2)

	// Filter by date range
	from := now.AddDate(0, 0, -30).Format(time.RFC3339)
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		fmt.Sprintf("/api/transactions?fromDate=%s", from),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	err = json.Unmarshal(w.Body.Bytes(), &txns)
	assert.NoError(t, err)
	assert.Len(t, txns, 2)

	// Malformed date
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/transactions?fromDate=yesterday",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Delete removes only the caller's transaction
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/transactions/%s", old.ID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/transactions/%s", old.ID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTransactionInvalidAmount(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	category := createCategory(t, testCtx, "Food", models.TransactionExpense)

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/transactions",
		models.CreateTransactionRequest{
			CategoryID: category.ID,
			Amount:     decimal.NewFromInt(-500),
			Currency:   "VND",
			Date:       time.Now().UTC(),
		},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBudgets(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	category := createCategory(t, testCtx, "Food", models.TransactionExpense)

	// Period defaults to monthly
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/budgets",
		models.CreateBudgetRequest{
			CategoryID: category.ID,
			Amount:     decimal.NewFromInt(2000000),
		},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var budget models.Budget
	err := json.Unmarshal(w.Body.Bytes(), &budget)
	assert.NoError(t, err)
	assert.Equal(t, "monthly", budget.Period)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/budgets", nil, testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var budgets []models.Budget
	err = json.Unmarshal(w.Body.Bytes(), &budgets)
	assert.NoError(t, err)
	assert.Len(t, budgets, 1)

	// Non-positive amount is rejected
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/budgets",
		models.CreateBudgetRequest{
			CategoryID: category.ID,
			Amount:     decimal.NewFromInt(-1),
		},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/budgets/%s", budget.ID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/budgets/%s", budget.ID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
