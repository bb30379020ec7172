package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/AlexP8on7/FullStack-Bank-Project/internal/bank/repository"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/models"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// AccountStore defines the persistence operations the service needs.
type AccountStore interface {
	List(ctx context.Context) ([]models.Account, error)
	Insert(ctx context.Context, account *models.Account) error
	FindByCustomerID(ctx context.Context, customerID int) (*models.Account, error)
	IncrementBalance(ctx context.Context, customerID int, delta float64) error
}

// ReceiptNotifier delivers receipts to the receipt service.
type ReceiptNotifier interface {
	CreateReceipt(ctx context.Context, receipt models.Receipt) error
}

// AccountCache is the optional read cache for account lookups. A nil cache
// means every read goes to the store.
type AccountCache interface {
	Get(ctx context.Context, key string) (*models.Account, bool)
	Set(ctx context.Context, key string, value *models.Account)
	Delete(ctx context.Context, key string)
}

// AccountService owns account balances. Deposits are an atomic increment;
// withdrawals are read-check-write, so concurrent withdrawals against the
// same account can race past the balance check. Receipt delivery is
// at-most-once with no retry.
type AccountService struct {
	store    AccountStore
	receipts ReceiptNotifier
	cache    AccountCache
}

func NewAccountService(store AccountStore, receipts ReceiptNotifier, cache AccountCache) *AccountService {
	return &AccountService{store: store, receipts: receipts, cache: cache}
}

func cacheKey(customerID int) string {
	return fmt.Sprintf("account:customer:%d", customerID)
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.store.List(ctx)
}

// CreateAccount inserts unconditionally: duplicate customer_id or
// account_number values are accepted, matching the existing contract.
func (s *AccountService) CreateAccount(ctx context.Context, account *models.Account) error {
	if err := s.store.Insert(ctx, account); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Delete(ctx, cacheKey(account.CustomerID))
	}
	return nil
}

func (s *AccountService) GetAccountByCustomer(ctx context.Context, customerID int) (*models.Account, error) {
	key := cacheKey(customerID)
	if s.cache != nil {
		if account, ok := s.cache.Get(ctx, key); ok {
			return account, nil
		}
	}
	account, err := s.store.FindByCustomerID(ctx, customerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, account)
	}
	return account, nil
}

func (s *AccountService) Deposit(ctx context.Context, customerID int, amount float64) error {
	err := s.store.IncrementBalance(ctx, customerID, amount)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAccountNotFound
	}
	if err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Delete(ctx, cacheKey(customerID))
	}
	s.notifyReceipt(customerID, amount, models.TxDeposit)
	return nil
}

func (s *AccountService) Withdraw(ctx context.Context, customerID int, amount float64) error {
	account, err := s.store.FindByCustomerID(ctx, customerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAccountNotFound
	}
	if err != nil {
		return err
	}
	if account.Balance < amount {
		return ErrInsufficientFunds
	}
	if err := s.store.IncrementBalance(ctx, customerID, -amount); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	if s.cache != nil {
		s.cache.Delete(ctx, cacheKey(customerID))
	}
	s.notifyReceipt(customerID, amount, models.TxWithdraw)
	return nil
}

// notifyReceipt posts the receipt in the background. Failures are logged and
// dropped; the primary operation has already succeeded.
func (s *AccountService) notifyReceipt(customerID int, amount float64, txType string) {
	receipt := models.Receipt{
		CustomerID:      customerID,
		Amount:          amount,
		TransactionType: txType,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.receipts.CreateReceipt(ctx, receipt); err != nil {
			log.Printf("Failed to create %s receipt for customer %d: %v", txType, customerID, err)
		}
	}()
}
