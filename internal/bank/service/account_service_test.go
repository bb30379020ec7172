package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AlexP8on7/FullStack-Bank-Project/internal/bank/repository"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/models"
)

// ---- fakes ----

type fakeAccountStore struct {
	accounts map[int]*models.Account
}

func newFakeAccountStore(accounts ...*models.Account) *fakeAccountStore {
	s := &fakeAccountStore{accounts: map[int]*models.Account{}}
	for _, a := range accounts {
		s.accounts[a.CustomerID] = a
	}
	return s
}

func (s *fakeAccountStore) List(ctx context.Context) ([]models.Account, error) {
	var out []models.Account
	for _, a := range s.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (s *fakeAccountStore) Insert(ctx context.Context, account *models.Account) error {
	s.accounts[account.CustomerID] = account
	return nil
}

func (s *fakeAccountStore) FindByCustomerID(ctx context.Context, customerID int) (*models.Account, error) {
	a, ok := s.accounts[customerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *fakeAccountStore) IncrementBalance(ctx context.Context, customerID int, delta float64) error {
	a, ok := s.accounts[customerID]
	if !ok {
		return repository.ErrNotFound
	}
	a.Balance += delta
	return nil
}

type fakeNotifier struct {
	receipts chan models.Receipt
	fail     bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{receipts: make(chan models.Receipt, 8)}
}

func (n *fakeNotifier) CreateReceipt(ctx context.Context, receipt models.Receipt) error {
	if n.fail {
		return errors.New("receipt service down")
	}
	n.receipts <- receipt
	return nil
}

func (n *fakeNotifier) waitForReceipt(t *testing.T) models.Receipt {
	t.Helper()
	select {
	case r := <-n.receipts:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for receipt")
		return models.Receipt{}
	}
}

// ---- tests ----

func TestDeposit(t *testing.T) {
	store := newFakeAccountStore(&models.Account{CustomerID: 1, Balance: 100.0, AccountNumber: "ACC000001"})
	notifier := newFakeNotifier()
	svc := NewAccountService(store, notifier, nil)

	err := svc.Deposit(context.Background(), 1, 25.0)
	assert.NoError(t, err)
	assert.Equal(t, 125.0, store.accounts[1].Balance)

	receipt := notifier.waitForReceipt(t)
	assert.Equal(t, 1, receipt.CustomerID)
	assert.Equal(t, 25.0, receipt.Amount)
	assert.Equal(t, models.TxDeposit, receipt.TransactionType)
}

func TestDepositUnknownAccount(t *testing.T) {
	svc := NewAccountService(newFakeAccountStore(), newFakeNotifier(), nil)

	err := svc.Deposit(context.Background(), 99, 25.0)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestWithdraw(t *testing.T) {
	store := newFakeAccountStore(&models.Account{CustomerID: 1, Balance: 100.0, AccountNumber: "ACC000001"})
	notifier := newFakeNotifier()
	svc := NewAccountService(store, notifier, nil)

	err := svc.Withdraw(context.Background(), 1, 40.0)
	assert.NoError(t, err)
	assert.Equal(t, 60.0, store.accounts[1].Balance)

	receipt := notifier.waitForReceipt(t)
	assert.Equal(t, models.TxWithdraw, receipt.TransactionType)
	assert.Equal(t, 40.0, receipt.Amount)
}

func TestWithdrawInsufficientFundsLeavesBalanceUnchanged(t *testing.T) {
	store := newFakeAccountStore(&models.Account{CustomerID: 1, Balance: 30.0, AccountNumber: "ACC000001"})
	svc := NewAccountService(store, newFakeNotifier(), nil)

	err := svc.Withdraw(context.Background(), 1, 40.0)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 30.0, store.accounts[1].Balance)
}

func TestWithdrawUnknownAccount(t *testing.T) {
	svc := NewAccountService(newFakeAccountStore(), newFakeNotifier(), nil)

	err := svc.Withdraw(context.Background(), 99, 10.0)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestDepositSucceedsWhenReceiptServiceDown(t *testing.T) {
	store := newFakeAccountStore(&models.Account{CustomerID: 1, Balance: 100.0, AccountNumber: "ACC000001"})
	notifier := newFakeNotifier()
	notifier.fail = true
	svc := NewAccountService(store, notifier, nil)

	// Receipt delivery is at-most-once; a lost receipt never fails the deposit.
	err := svc.Deposit(context.Background(), 1, 25.0)
	assert.NoError(t, err)
	assert.Equal(t, 125.0, store.accounts[1].Balance)
}

type fakeCache struct {
	entries map[string]*models.Account
	gets    int
	hits    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*models.Account{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) (*models.Account, bool) {
	c.gets++
	a, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return a, ok
}

func (c *fakeCache) Set(ctx context.Context, key string, value *models.Account) {
	c.entries[key] = value
}

func (c *fakeCache) Delete(ctx context.Context, key string) {
	delete(c.entries, key)
}

func TestGetAccountByCustomerUsesCache(t *testing.T) {
	store := newFakeAccountStore(&models.Account{CustomerID: 1, Balance: 100.0, AccountNumber: "ACC000001"})
	cache := newFakeCache()
	svc := NewAccountService(store, newFakeNotifier(), cache)

	a1, err := svc.GetAccountByCustomer(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "ACC000001", a1.AccountNumber)
	assert.Equal(t, 0, cache.hits)

	a2, err := svc.GetAccountByCustomer(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, a1.Balance, a2.Balance)
	assert.Equal(t, 1, cache.hits)
}

func TestDepositInvalidatesCache(t *testing.T) {
	store := newFakeAccountStore(&models.Account{CustomerID: 1, Balance: 100.0, AccountNumber: "ACC000001"})
	cache := newFakeCache()
	svc := NewAccountService(store, newFakeNotifier(), cache)

	_, err := svc.GetAccountByCustomer(context.Background(), 1)
	assert.NoError(t, err)

	err = svc.Deposit(context.Background(), 1, 50.0)
	assert.NoError(t, err)

	account, err := svc.GetAccountByCustomer(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 150.0, account.Balance)
}
