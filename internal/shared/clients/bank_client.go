package clients

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/models"
)

// BankClient calls the bank service over HTTP.
type BankClient struct {
	baseURL string
	client  *http.Client
}

func NewBankClient(baseURL string) *BankClient {
	return &BankClient{baseURL: baseURL, client: defaultHTTPClient()}
}

type transactionRequest struct {
	Amount float64 `json:"amount"`
}

// mutationResponse covers the bank service's 200-with-error contract:
// success bodies carry "message", failures carry "error" at the same status.
type mutationResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type accountEnvelope struct {
	models.Account
	Error string `json:"error"`
}

// CreateAccount provisions a zero-balance account. Used best-effort at
// signup; the caller decides whether a failure matters.
func (c *BankClient) CreateAccount(ctx context.Context, account models.Account) error {
	status, err := postJSON(ctx, c.client, c.baseURL+"/accounts", account, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return fmt.Errorf("%w: create account returned status %d", ErrRejected, status)
	}
	return nil
}

// GetAccountByCustomer fetches the account for a customer number.
// The bank answers 200 with an error body when nothing matches; that is
// surfaced as ErrRejected.
func (c *BankClient) GetAccountByCustomer(ctx context.Context, customerID int) (*models.Account, error) {
	var env accountEnvelope
	url := fmt.Sprintf("%s/accounts/%d", c.baseURL, customerID)
	status, err := getJSON(ctx, c.client, url, &env)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK || env.Error != "" || env.AccountNumber == "" {
		return nil, fmt.Errorf("%w: account not found for customer %d", ErrRejected, customerID)
	}
	return &env.Account, nil
}

// Deposit credits amount to the customer's account.
func (c *BankClient) Deposit(ctx context.Context, customerID int, amount float64) error {
	url := fmt.Sprintf("%s/accounts/%d/deposit", c.baseURL, customerID)
	return c.mutate(ctx, url, amount)
}

// Withdraw debits amount from the customer's account.
func (c *BankClient) Withdraw(ctx context.Context, customerID int, amount float64) error {
	url := fmt.Sprintf("%s/accounts/%d/withdraw", c.baseURL, customerID)
	return c.mutate(ctx, url, amount)
}

func (c *BankClient) mutate(ctx context.Context, url string, amount float64) error {
	var resp mutationResponse
	status, err := postJSON(ctx, c.client, url, transactionRequest{Amount: amount}, &resp)
	if err != nil {
		return err
	}
	if status != http.StatusOK || resp.Error != "" {
		return fmt.Errorf("%w: %s", ErrRejected, resp.Error)
	}
	return nil
}
