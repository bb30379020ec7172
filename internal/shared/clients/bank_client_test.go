package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/models"
)

func TestGetAccountByCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accounts/1":
			json.NewEncoder(w).Encode(models.Account{
				CustomerID: 1, Balance: 50.0, AccountNumber: "ACC000001",
			})
		default:
			// The bank answers 200 with an error body for missing accounts.
			json.NewEncoder(w).Encode(map[string]string{"error": "Account not found"})
		}
	}))
	defer srv.Close()

	c := NewBankClient(srv.URL)

	account, err := c.GetAccountByCustomer(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "ACC000001", account.AccountNumber)
	assert.Equal(t, 50.0, account.Balance)

	_, err = c.GetAccountByCustomer(context.Background(), 99)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestDepositAndWithdraw(t *testing.T) {
	var lastPath string
	var lastAmount float64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastPath = r.URL.Path
		var req transactionRequest
		json.NewDecoder(r.Body).Decode(&req)
		lastAmount = req.Amount
		if r.URL.Path == "/accounts/2/withdraw" {
			json.NewEncoder(w).Encode(map[string]string{"error": "Insufficient funds or account not found"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	c := NewBankClient(srv.URL)

	err := c.Deposit(context.Background(), 1, 25.0)
	assert.NoError(t, err)
	assert.Equal(t, "/accounts/1/deposit", lastPath)
	assert.Equal(t, 25.0, lastAmount)

	err = c.Withdraw(context.Background(), 1, 10.0)
	assert.NoError(t, err)
	assert.Equal(t, "/accounts/1/withdraw", lastPath)

	err = c.Withdraw(context.Background(), 2, 10.0)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	// Connect to a server that is already gone.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewBankClient(srv.URL)

	err := c.Deposit(context.Background(), 1, 25.0)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, errors.Is(err, ErrRejected))

	_, err = c.GetAccountByCustomer(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCreateReceipt(t *testing.T) {
	var got models.Receipt
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]string{"message": "Receipt created"})
	}))
	defer srv.Close()

	c := NewReceiptClient(srv.URL)
	err := c.CreateReceipt(context.Background(), models.Receipt{
		CustomerID: 3, Amount: -40.0, TransactionType: models.TxTransferOut,
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, got.CustomerID)
	assert.Equal(t, -40.0, got.Amount)
	assert.Equal(t, models.TxTransferOut, got.TransactionType)
}
