package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

func TestWalletFlow_CreateUpdateDelete(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "wallets@test.com", "password123")

	walletID := app.createWallet(t, token, "Savings", 100000)

	// Rename and change the currency; the balance must stay put.
	rec := app.request("PUT", "/api/v1/wallets/"+walletID,
		`{"name":"Emergency Fund","currency":"USD"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)
	if updated["name"] != "Emergency Fund" || updated["currency"] != "USD" {
		t.Errorf("unexpected wallet after update: %v", updated)
	}
	if updated["current_balance"].(float64) != 100000 {
		t.Errorf("expected balance untouched at 100000, got %v", updated["current_balance"])
	}

	rec = app.request("DELETE", "/api/v1/wallets/"+walletID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/wallets/"+walletID, "", token)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestWalletFlow_DeleteBlockedWhileInUse(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "inuse@test.com", "password123")

	walletID := app.createWallet(t, token, "Busy", 10000)
	foodID := app.createCategory(t, token, "Food", "EXPENSE")

	rec := app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"wallet_id":%q,"category_id":%q,"transaction_type":"EXPENSE","amount":500}`,
			walletID, foodID), token)
	txID := parseJSON(t, rec)["id"].(string)

	rec = app.request("DELETE", "/api/v1/wallets/"+walletID, "", token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "WALLET_IN_USE" {
		t.Errorf("expected WALLET_IN_USE, got %s", code)
	}

	// Deleting the transaction clears the way.
	app.request("DELETE", "/api/v1/transactions/"+txID, "", token)
	rec = app.request("DELETE", "/api/v1/wallets/"+walletID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after clearing ledger, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestWalletFlow_ListScopedToUser(t *testing.T) {
	app := setupApp(t)
	aliceToken, _ := app.registerUser(t, "alice@test.com", "password123")
	bobToken, _ := app.registerUser(t, "bob@test.com", "password123")

	app.createWallet(t, aliceToken, "Alice One", 0)
	app.createWallet(t, aliceToken, "Alice Two", 0)
	app.createWallet(t, bobToken, "Bob One", 0)

	rec := app.request("GET", "/api/v1/wallets", "", aliceToken)
	var wallets []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &wallets); err != nil {
		t.Fatalf("failed to parse wallet list: %v", err)
	}
	if len(wallets) != 2 {
		t.Errorf("expected 2 wallets for alice, got %d", len(wallets))
	}
}
