package services

import (
	"testing"
	"time"

	"finanzio/internal/models"
	"finanzio/internal/pagination"
	"finanzio/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	t.Run("income_increases_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		user := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWallet(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeIncome)

		tx, err := txSvc.CreateTransaction(user.ID, wallet.ID, category.ID, models.TransactionTypeIncome, 5000, "Salary", time.Now())
		testutil.AssertNoError(t, err)

		if tx.ID == "" {
			t.Fatal("expected non-empty transaction ID")
		}
		if tx.Amount != 5000 {
			t.Errorf("expected amount 5000, got %d", tx.Amount)
		}

		updated, err := walletSvc.GetWalletByID(user.ID, wallet.ID)
		testutil.AssertNoError(t, err)
		if updated.CurrentBalance != 5000 {
			t.Errorf("expected balance 5000, got %d", updated.CurrentBalance)
		}
	})

	t.Run("expense_decreases_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		user := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWalletWithBalance(t, db, user.ID, 10000)
		category := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeExpense)

		_, err := txSvc.CreateTransaction(user.ID, wallet.ID, category.ID, models.TransactionTypeExpense, 3000, "Lunch", time.Now())
		testutil.AssertNoError(t, err)

		updated, err := walletSvc.GetWalletByID(user.ID, wallet.ID)
		testutil.AssertNoError(t, err)
		if updated.CurrentBalance != 7000 {
			t.Errorf("expected balance 7000, got %d", updated.CurrentBalance)
		}
	})

	t.Run("balance_may_go_negative", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		user := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWallet(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeExpense)

		_, err := txSvc.CreateTransaction(user.ID, wallet.ID, category.ID, models.TransactionTypeExpense, 2500, "Overdraft", time.Now())
		testutil.AssertNoError(t, err)

		updated, err := walletSvc.GetWalletByID(user.ID, wallet.ID)
		testutil.AssertNoError(t, err)
		if updated.CurrentBalance != -2500 {
			t.Errorf("expected balance -2500, got %d", updated.CurrentBalance)
		}
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		user := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWallet(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeIncome)

		_, err := txSvc.CreateTransaction(user.ID, wallet.ID, category.ID, models.TransactionTypeIncome, 0, "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		user := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWallet(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeIncome)

		_, err := txSvc.CreateTransaction(user.ID, wallet.ID, category.ID, models.TransactionTypeIncome, -100, "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		user := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWallet(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeIncome)

		_, err := txSvc.CreateTransaction(user.ID, wallet.ID, category.ID, "REFUND", 1000, "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")
	})

	t.Run("missing_wallet", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeIncome)

		_, err := txSvc.CreateTransaction(user.ID, "00000000-0000-0000-0000-000000000000", category.ID, models.TransactionTypeIncome, 1000, "", time.Now())
		testutil.AssertAppError(t, err, "WALLET_NOT_FOUND")
	})

	t.Run("other_users_wallet", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWalletWithBalance(t, db, owner.ID, 1000)
		category := testutil.CreateTestCategory(t, db, intruder.ID, models.TransactionTypeIncome)

		_, err := txSvc.CreateTransaction(intruder.ID, wallet.ID, category.ID, models.TransactionTypeIncome, 500, "", time.Now())
		testutil.AssertAppError(t, err, "WALLET_NOT_FOUND")

		untouched, err := walletSvc.GetWalletByID(owner.ID, wallet.ID)
		testutil.AssertNoError(t, err)
		if untouched.CurrentBalance != 1000 {
			t.Errorf("victim wallet balance changed: %d", untouched.CurrentBalance)
		}
	})

	t.Run("missing_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		user := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWallet(t, db, user.ID)

		_, err := txSvc.CreateTransaction(user.ID, wallet.ID, "00000000-0000-0000-0000-000000000000", models.TransactionTypeIncome, 1000, "", time.Now())
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("system_category_is_usable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.SeedSystemCategories(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		user := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWallet(t, db, user.ID)

		_, err := txSvc.CreateTransaction(user.ID, wallet.ID, models.SystemCategoryTransferIn, models.TransactionTypeIncome, 1000, "", time.Now())
		testutil.AssertNoError(t, err)
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("amount_change_rebalances", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		user := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWallet(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeIncome)

		tx, err := txSvc.CreateTransaction(user.ID, wallet.ID, category.ID, models.TransactionTypeIncome, 5000, "Salary", time.Now())
		testutil.AssertNoError(t, err)

		newAmount := int64(8000)
		updated, err := txSvc.UpdateTransaction(user.ID, tx.ID, TransactionUpdateFields{Amount: &newAmount})
		testutil.AssertNoError(t, err)
		if updated.Amount != 8000 {
			t.Errorf("expected amount 8000, got %d", updated.Amount)
		}

		w, err := walletSvc.GetWalletByID(user.ID, wallet.ID)
		testutil.AssertNoError(t, err)
		if w.CurrentBalance != 8000 {
			t.Errorf("expected balance 8000 after update, got %d", w.CurrentBalance)
		}
	})

	t.Run("type_flip_rebalances", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		user := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWallet(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeIncome)

		tx, err := txSvc.CreateTransaction(user.ID, wallet.ID, category.ID, models.TransactionTypeIncome, 5000, "Mistyped", time.Now())
		testutil.AssertNoError(t, err)

		expense := models.TransactionTypeExpense
		_, err = txSvc.UpdateTransaction(user.ID, tx.ID, TransactionUpdateFields{Type: &expense})
		testutil.AssertNoError(t, err)

		w, err := walletSvc.GetWalletByID(user.ID, wallet.ID)
		testutil.AssertNoError(t, err)
		if w.CurrentBalance != -5000 {
			t.Errorf("expected balance -5000 after flip, got %d", w.CurrentBalance)
		}
	})

	t.Run("wallet_move_rebalances_both", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestWallet(t, db, user.ID)
		target := testutil.CreateTestWalletWithBalance(t, db, user.ID, 1000)
		category := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeIncome)

		tx, err := txSvc.CreateTransaction(user.ID, source.ID, category.ID, models.TransactionTypeIncome, 5000, "Paycheck", time.Now())
		testutil.AssertNoError(t, err)

		moved, err := txSvc.UpdateTransaction(user.ID, tx.ID, TransactionUpdateFields{WalletID: &target.ID})
		testutil.AssertNoError(t, err)
		if moved.WalletID != target.ID {
			t.Errorf("expected wallet %s, got %s", target.ID, moved.WalletID)
		}

		src, err := walletSvc.GetWalletByID(user.ID, source.ID)
		testutil.AssertNoError(t, err)
		if src.CurrentBalance != 0 {
			t.Errorf("expected source balance 0, got %d", src.CurrentBalance)
		}
		dst, err := walletSvc.GetWalletByID(user.ID, target.ID)
		testutil.AssertNoError(t, err)
		if dst.CurrentBalance != 6000 {
			t.Errorf("expected target balance 6000, got %d", dst.CurrentBalance)
		}
	})

	t.Run("move_to_foreign_wallet_rolls_back", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWallet(t, db, user.ID)
		foreign := testutil.CreateTestWallet(t, db, other.ID)
		category := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeIncome)

		tx, err := txSvc.CreateTransaction(user.ID, wallet.ID, category.ID, models.TransactionTypeIncome, 5000, "Paycheck", time.Now())
		testutil.AssertNoError(t, err)

		_, err = txSvc.UpdateTransaction(user.ID, tx.ID, TransactionUpdateFields{WalletID: &foreign.ID})
		testutil.AssertAppError(t, err, "WALLET_NOT_FOUND")

		// Rollback must leave the source balance untouched.
		w, err := walletSvc.GetWalletByID(user.ID, wallet.ID)
		testutil.AssertNoError(t, err)
		if w.CurrentBalance != 5000 {
			t.Errorf("expected balance 5000 after failed move, got %d", w.CurrentBalance)
		}
	})

	t.Run("noop_update_preserves_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		user := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWallet(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeIncome)

		tx, err := txSvc.CreateTransaction(user.ID, wallet.ID, category.ID, models.TransactionTypeIncome, 5000, "Salary", time.Now())
		testutil.AssertNoError(t, err)

		description := "Salary (June)"
		_, err = txSvc.UpdateTransaction(user.ID, tx.ID, TransactionUpdateFields{Description: &description})
		testutil.AssertNoError(t, err)

		w, err := walletSvc.GetWalletByID(user.ID, wallet.ID)
		testutil.AssertNoError(t, err)
		if w.CurrentBalance != 5000 {
			t.Errorf("description-only update moved the balance: %d", w.CurrentBalance)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		user := testutil.CreateTestUser(t, db)

		amount := int64(100)
		_, err := txSvc.UpdateTransaction(user.ID, "00000000-0000-0000-0000-000000000000", TransactionUpdateFields{Amount: &amount})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("reverses_balance_effect", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		user := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWalletWithBalance(t, db, user.ID, 10000)
		category := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeExpense)

		tx, err := txSvc.CreateTransaction(user.ID, wallet.ID, category.ID, models.TransactionTypeExpense, 3000, "Groceries", time.Now())
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, txSvc.DeleteTransaction(user.ID, tx.ID))

		w, err := walletSvc.GetWalletByID(user.ID, wallet.ID)
		testutil.AssertNoError(t, err)
		if w.CurrentBalance != 10000 {
			t.Errorf("expected balance restored to 10000, got %d", w.CurrentBalance)
		}

		_, err = txSvc.GetTransactionByID(user.ID, tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("delete_then_delete_again", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		user := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWallet(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeIncome)

		tx, err := txSvc.CreateTransaction(user.ID, wallet.ID, category.ID, models.TransactionTypeIncome, 5000, "", time.Now())
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, txSvc.DeleteTransaction(user.ID, tx.ID))
		// The second delete must fail cleanly and not reverse twice.
		testutil.AssertAppError(t, txSvc.DeleteTransaction(user.ID, tx.ID), "TRANSACTION_NOT_FOUND")

		w, err := walletSvc.GetWalletByID(user.ID, wallet.ID)
		testutil.AssertNoError(t, err)
		if w.CurrentBalance != 0 {
			t.Errorf("expected balance 0 after single reversal, got %d", w.CurrentBalance)
		}
	})

	t.Run("other_users_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWallet(t, db, owner.ID)
		category := testutil.CreateTestCategory(t, db, owner.ID, models.TransactionTypeIncome)

		tx, err := txSvc.CreateTransaction(owner.ID, wallet.ID, category.ID, models.TransactionTypeIncome, 5000, "", time.Now())
		testutil.AssertNoError(t, err)

		testutil.AssertAppError(t, txSvc.DeleteTransaction(intruder.ID, tx.ID), "TRANSACTION_NOT_FOUND")
	})
}

func TestBalanceConsistency(t *testing.T) {
	// After an arbitrary mix of creates, updates, and deletes the wallet's
	// cached balance must equal the sum over its surviving ledger rows.
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	walletSvc := NewWalletService(db)
	txSvc := NewTransactionService(db, walletSvc)
	user := testutil.CreateTestUser(t, db)
	wallet := testutil.CreateTestWallet(t, db, user.ID)
	income := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeIncome)
	expense := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeExpense)

	t1, err := txSvc.CreateTransaction(user.ID, wallet.ID, income.ID, models.TransactionTypeIncome, 10000, "Salary", time.Now())
	testutil.AssertNoError(t, err)
	t2, err := txSvc.CreateTransaction(user.ID, wallet.ID, expense.ID, models.TransactionTypeExpense, 2500, "Rent", time.Now())
	testutil.AssertNoError(t, err)
	_, err = txSvc.CreateTransaction(user.ID, wallet.ID, expense.ID, models.TransactionTypeExpense, 1500, "Food", time.Now())
	testutil.AssertNoError(t, err)

	newAmount := int64(4000)
	_, err = txSvc.UpdateTransaction(user.ID, t2.ID, TransactionUpdateFields{Amount: &newAmount})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, txSvc.DeleteTransaction(user.ID, t1.ID))

	var ledger int64
	err = db.Raw(
		"SELECT COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE -amount END), 0) FROM transactions WHERE wallet_id = ? AND deleted_at IS NULL",
		wallet.ID,
	).Scan(&ledger).Error
	testutil.AssertNoError(t, err)

	w, err := walletSvc.GetWalletByID(user.ID, wallet.ID)
	testutil.AssertNoError(t, err)
	if w.CurrentBalance != ledger {
		t.Errorf("cached balance %d disagrees with ledger sum %d", w.CurrentBalance, ledger)
	}
	if w.CurrentBalance != -5500 {
		t.Errorf("expected balance -5500, got %d", w.CurrentBalance)
	}
}

func TestGetUserTransactions(t *testing.T) {
	t.Run("filters_and_pagination", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		user := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWallet(t, db, user.ID)
		otherWallet := testutil.CreateTestWallet(t, db, user.ID)
		income := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeIncome)
		expense := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeExpense)

		for i := 0; i < 3; i++ {
			_, err := txSvc.CreateTransaction(user.ID, wallet.ID, income.ID, models.TransactionTypeIncome, 1000, "Salary deposit", time.Now())
			testutil.AssertNoError(t, err)
		}
		_, err := txSvc.CreateTransaction(user.ID, otherWallet.ID, expense.ID, models.TransactionTypeExpense, 500, "Coffee", time.Now())
		testutil.AssertNoError(t, err)

		all, err := txSvc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if all.TotalItems != 4 {
			t.Errorf("expected 4 transactions, got %d", all.TotalItems)
		}

		incomeType := models.TransactionTypeIncome
		onlyIncome, err := txSvc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{Type: &incomeType})
		testutil.AssertNoError(t, err)
		if onlyIncome.TotalItems != 3 {
			t.Errorf("expected 3 income transactions, got %d", onlyIncome.TotalItems)
		}

		byWallet, err := txSvc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{WalletID: &otherWallet.ID})
		testutil.AssertNoError(t, err)
		if byWallet.TotalItems != 1 {
			t.Errorf("expected 1 transaction in other wallet, got %d", byWallet.TotalItems)
		}

		bySearch, err := txSvc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{Search: "Coffee"})
		testutil.AssertNoError(t, err)
		if bySearch.TotalItems != 1 {
			t.Errorf("expected 1 match for search, got %d", bySearch.TotalItems)
		}

		paged, err := txSvc.GetUserTransactions(user.ID, pagination.PageRequest{Page: 1, PageSize: 2}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if len(paged.Data) != 2 {
			t.Errorf("expected 2 items on first page, got %d", len(paged.Data))
		}
		if paged.TotalPages != 2 {
			t.Errorf("expected 2 pages, got %d", paged.TotalPages)
		}
	})

	t.Run("excludes_other_users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		walletSvc := NewWalletService(db)
		txSvc := NewTransactionService(db, walletSvc)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		aliceWallet := testutil.CreateTestWallet(t, db, alice.ID)
		category := testutil.CreateTestCategory(t, db, alice.ID, models.TransactionTypeIncome)

		_, err := txSvc.CreateTransaction(alice.ID, aliceWallet.ID, category.ID, models.TransactionTypeIncome, 1000, "", time.Now())
		testutil.AssertNoError(t, err)

		result, err := txSvc.GetUserTransactions(bob.ID, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 0 {
			t.Errorf("expected no transactions for other user, got %d", result.TotalItems)
		}
	})
}
