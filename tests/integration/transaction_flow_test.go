package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestTransactionFlow_BalancesTrackLedger(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "ledger@test.com", "password123")

	walletID := app.createWallet(t, token, "Checking", 10000)
	salaryID := app.createCategory(t, token, "Salary", "INCOME")
	foodID := app.createCategory(t, token, "Food", "EXPENSE")

	// Income of 5000
	rec := app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"wallet_id":%q,"category_id":%q,"transaction_type":"INCOME","amount":5000,"description":"Paycheck"}`,
			walletID, salaryID), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	incomeID := parseJSON(t, rec)["id"].(string)

	// Expense of 3000
	rec = app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"wallet_id":%q,"category_id":%q,"transaction_type":"EXPENSE","amount":3000,"description":"Groceries"}`,
			walletID, foodID), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	expenseID := parseJSON(t, rec)["id"].(string)

	// 10000 + 5000 - 3000 = 12000
	if got := app.walletBalance(t, token, walletID); got != 12000 {
		t.Errorf("expected balance 12000, got %d", got)
	}

	// Raise the expense to 4500; balance drops by the difference.
	rec = app.request("PUT", "/api/v1/transactions/"+expenseID, `{"amount":4500}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := app.walletBalance(t, token, walletID); got != 10500 {
		t.Errorf("expected balance 10500 after update, got %d", got)
	}

	// Deleting the income reverses its effect.
	rec = app.request("DELETE", "/api/v1/transactions/"+incomeID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := app.walletBalance(t, token, walletID); got != 5500 {
		t.Errorf("expected balance 5500 after delete, got %d", got)
	}
}

func TestTransactionFlow_MoveBetweenWallets(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "move@test.com", "password123")

	walletA := app.createWallet(t, token, "Wallet A", 10000)
	walletB := app.createWallet(t, token, "Wallet B", 10000)
	foodID := app.createCategory(t, token, "Food", "EXPENSE")

	rec := app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"wallet_id":%q,"category_id":%q,"transaction_type":"EXPENSE","amount":2000}`,
			walletA, foodID), token)
	txID := parseJSON(t, rec)["id"].(string)

	// Reassign the expense to wallet B.
	rec = app.request("PUT", "/api/v1/transactions/"+txID,
		fmt.Sprintf(`{"wallet_id":%q}`, walletB), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if got := app.walletBalance(t, token, walletA); got != 10000 {
		t.Errorf("expected wallet A restored to 10000, got %d", got)
	}
	if got := app.walletBalance(t, token, walletB); got != 8000 {
		t.Errorf("expected wallet B at 8000, got %d", got)
	}
}

func TestTransactionFlow_ListWithFilters(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "filters@test.com", "password123")

	walletID := app.createWallet(t, token, "Main", 0)
	salaryID := app.createCategory(t, token, "Salary", "INCOME")
	foodID := app.createCategory(t, token, "Food", "EXPENSE")

	app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"wallet_id":%q,"category_id":%q,"transaction_type":"INCOME","amount":5000,"description":"Monthly salary"}`,
			walletID, salaryID), token)
	app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"wallet_id":%q,"category_id":%q,"transaction_type":"EXPENSE","amount":1200,"description":"Lunch"}`,
			walletID, foodID), token)
	app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"wallet_id":%q,"category_id":%q,"transaction_type":"EXPENSE","amount":800,"description":"Dinner"}`,
			walletID, foodID), token)

	// Type filter
	rec := app.request("GET", "/api/v1/transactions?transaction_type=EXPENSE", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if len(result["data"].([]interface{})) != 2 {
		t.Errorf("expected 2 expense transactions, got %d", len(result["data"].([]interface{})))
	}

	// Search filter
	rec = app.request("GET", "/api/v1/transactions?search=salary", "", token)
	result = parseJSON(t, rec)
	if len(result["data"].([]interface{})) != 1 {
		t.Errorf("expected 1 match for 'salary', got %d", len(result["data"].([]interface{})))
	}

	// Pagination metadata
	rec = app.request("GET", "/api/v1/transactions?page=1&page_size=2", "", token)
	result = parseJSON(t, rec)
	if result["total_items"].(float64) != 3 {
		t.Errorf("expected total_items 3, got %v", result["total_items"])
	}
	if result["total_pages"].(float64) != 2 {
		t.Errorf("expected total_pages 2, got %v", result["total_pages"])
	}
}

func TestTransactionFlow_UserIsolation(t *testing.T) {
	app := setupApp(t)
	ownerToken, _ := app.registerUser(t, "owner@test.com", "password123")
	intruderToken, _ := app.registerUser(t, "intruder@test.com", "password123")

	walletID := app.createWallet(t, ownerToken, "Private", 50000)
	foodID := app.createCategory(t, ownerToken, "Food", "EXPENSE")

	rec := app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"wallet_id":%q,"category_id":%q,"transaction_type":"EXPENSE","amount":1000}`,
			walletID, foodID), ownerToken)
	txID := parseJSON(t, rec)["id"].(string)

	// The intruder cannot read, modify, or delete the owner's transaction.
	rec = app.request("GET", "/api/v1/transactions/"+txID, "", intruderToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 on read, got %d", rec.Code)
	}
	rec = app.request("PUT", "/api/v1/transactions/"+txID, `{"amount":9999}`, intruderToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 on update, got %d", rec.Code)
	}
	rec = app.request("DELETE", "/api/v1/transactions/"+txID, "", intruderToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 on delete, got %d", rec.Code)
	}

	// Nor can the intruder book transactions against the owner's wallet.
	rec = app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"wallet_id":%q,"category_id":%q,"transaction_type":"EXPENSE","amount":1000}`,
			walletID, foodID), intruderToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 booking against foreign wallet, got %d", rec.Code)
	}

	// The owner's balance never moved.
	if got := app.walletBalance(t, ownerToken, walletID); got != 49000 {
		t.Errorf("expected balance 49000, got %d", got)
	}
}
