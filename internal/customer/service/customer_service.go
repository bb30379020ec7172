package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlexP8on7/FullStack-Bank-Project/internal/customer/repository"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/auth"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/clients"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/models"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/utils"
)

var (
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrInvalidCustomerID  = errors.New("invalid customer ID format")
	ErrImmutableField     = errors.New("field cannot be updated")
	ErrInvalidIBAN        = errors.New("invalid IBAN format")
	ErrTransferRejected   = errors.New("transfer rejected")
	ErrTransactionFailed  = errors.New("transaction failed")
)

// CustomerStore defines the persistence operations the service needs.
type CustomerStore interface {
	List(ctx context.Context) ([]models.Customer, error)
	FindByUsername(ctx context.Context, username string) (*models.Customer, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error)
	Insert(ctx context.Context, customer *models.Customer) error
	SetField(ctx context.Context, id primitive.ObjectID, field string, value any) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	NextCustomerNumber(ctx context.Context) (int, error)
}

// BankGateway is the HTTP surface of the bank service.
type BankGateway interface {
	CreateAccount(ctx context.Context, account models.Account) error
	GetAccountByCustomer(ctx context.Context, customerID int) (*models.Account, error)
	Deposit(ctx context.Context, customerID int, amount float64) error
	Withdraw(ctx context.Context, customerID int, amount float64) error
}

// ReceiptNotifier delivers receipts to the receipt service.
type ReceiptNotifier interface {
	CreateReceipt(ctx context.Context, receipt models.Receipt) error
}

// CustomerService owns customer records and orchestrates account
// provisioning, transactions, and the transfer saga against the bank service.
type CustomerService struct {
	store    CustomerStore
	bank     BankGateway
	receipts ReceiptNotifier
}

func NewCustomerService(store CustomerStore, bank BankGateway, receipts ReceiptNotifier) *CustomerService {
	return &CustomerService{store: store, bank: bank, receipts: receipts}
}

type CreateCustomerParams struct {
	Name     string
	Username string
	Password string
	Age      int
	Email    string
	Phone    string
	Address  string
}

// LoginResult carries the two-element login response: the augmented customer
// record and the raw account record fetched from the bank service.
type LoginResult struct {
	Customer map[string]any
	Account  models.Account
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.store.List(ctx)
}

// CreateCustomer registers a new customer and provisions a zero-balance bank
// account for its customer number. Account provisioning is best-effort: a
// bank service failure is logged and the signup still succeeds.
func (s *CustomerService) CreateCustomer(ctx context.Context, params CreateCustomerParams) (*models.Customer, error) {
	if _, err := s.store.FindByUsername(ctx, params.Username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	customerNumber, err := s.store.NextCustomerNumber(ctx)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		CustomerNumber: customerNumber,
		Name:           params.Name,
		Username:       params.Username,
		PasswordHash:   passwordHash,
		Age:            params.Age,
		Email:          params.Email,
		Phone:          params.Phone,
		Address:        params.Address,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, customer); err != nil {
		return nil, err
	}

	if err := s.bank.CreateAccount(ctx, models.Account{
		CustomerID:    customerNumber,
		Balance:       0.0,
		AccountNumber: utils.FormatIBAN(customerNumber),
	}); err != nil {
		log.Printf("Failed to provision account for customer %d: %v", customerNumber, err)
	}

	return customer, nil
}

// Login authenticates a customer and assembles the augmented record the
// frontend expects: the customer plus iban, balance, and a session token.
// When the bank service is unreachable or has no account, a synthesized
// zero-balance account stands in.
func (s *CustomerService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	customer, err := s.store.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(password, customer.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	account, err := s.bank.GetAccountByCustomer(ctx, customer.CustomerNumber)
	if err != nil {
		log.Printf("Falling back to synthesized account for customer %d: %v", customer.CustomerNumber, err)
		account = &models.Account{
			CustomerID:    customer.CustomerNumber,
			Balance:       0.0,
			AccountNumber: utils.FormatIBAN(customer.CustomerNumber),
		}
	}

	augmented := map[string]any{
		"id":              customer.ID.Hex(),
		"customer_number": customer.CustomerNumber,
		"name":            customer.Name,
		"username":        customer.Username,
		"age":             customer.Age,
		"email":           customer.Email,
		"phonenm":         customer.Phone,
		"address":         customer.Address,
		"iban":            account.AccountNumber,
		"balance":         account.Balance,
	}
	if token, err := auth.GenerateToken(customer.ID.Hex(), customer.Username); err != nil {
		log.Printf("Failed to generate login token for %s: %v", username, err)
	} else {
		augmented["token"] = token
	}

	return &LoginResult{Customer: augmented, Account: *account}, nil
}

// UpdateField sets a single customer field by name. The identifier document
// key is immutable; password values are re-hashed before storage so that
// login keeps working.
func (s *CustomerService) UpdateField(ctx context.Context, rawID, field, value string) error {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return ErrInvalidCustomerID
	}
	if field == "_id" || field == "id" {
		return ErrImmutableField
	}

	var storedValue any = value
	if field == "password" {
		hash, err := utils.HashPassword(value)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		field = "password_hash"
		storedValue = hash
	}

	err = s.store.SetField(ctx, id, field, storedValue)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCustomerNotFound
	}
	return err
}

// SimpleTransaction forwards a deposit or withdrawal to the bank service on
// behalf of a customer. Any type other than "deposit" is a withdrawal,
// matching the existing contract.
func (s *CustomerService) SimpleTransaction(ctx context.Context, rawID, txType string, amount float64) error {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return ErrInvalidCustomerID
	}
	customer, err := s.store.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCustomerNotFound
	}
	if err != nil {
		return err
	}

	if txType == models.TxDeposit {
		err = s.bank.Deposit(ctx, customer.CustomerNumber, amount)
	} else {
		err = s.bank.Withdraw(ctx, customer.CustomerNumber, amount)
	}
	if err != nil {
		if errors.Is(err, clients.ErrUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}
	return nil
}

// Transfer moves amount between two accounts identified by IBAN. It is a
// two-call saga: withdraw from the source, deposit to the destination, and
// on a failed deposit attempt one compensating deposit back to the source.
// The compensation is unchecked: if it also fails the source stays short.
func (s *CustomerService) Transfer(ctx context.Context, fromIBAN, toIBAN string, amount float64) error {
	fromID, err := utils.ParseIBAN(fromIBAN)
	if err != nil {
		return ErrInvalidIBAN
	}
	toID, err := utils.ParseIBAN(toIBAN)
	if err != nil {
		return ErrInvalidIBAN
	}

	if err := s.bank.Withdraw(ctx, fromID, amount); err != nil {
		return fmt.Errorf("%w: insufficient funds or sender account error", ErrTransferRejected)
	}

	if err := s.bank.Deposit(ctx, toID, amount); err != nil {
		if compErr := s.bank.Deposit(ctx, fromID, amount); compErr != nil {
			log.Printf("Compensating deposit to customer %d failed, funds withdrawn but not restored: %v", fromID, compErr)
		}
		return fmt.Errorf("%w: recipient account error", ErrTransferRejected)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)
	s.notifyReceipt(models.Receipt{
		CustomerID:      fromID,
		Amount:          -amount,
		TransactionType: models.TxTransferOut,
		Timestamp:       timestamp,
	})
	s.notifyReceipt(models.Receipt{
		CustomerID:      toID,
		Amount:          amount,
		TransactionType: models.TxTransferIn,
		Timestamp:       timestamp,
	})
	return nil
}

// Delete removes a customer record. The bank account is intentionally left
// behind: no exposed operation deletes accounts.
func (s *CustomerService) Delete(ctx context.Context, rawID string) error {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return ErrInvalidCustomerID
	}
	err = s.store.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCustomerNotFound
	}
	return err
}

// notifyReceipt posts a receipt in the background: at-most-once, no retry.
func (s *CustomerService) notifyReceipt(receipt models.Receipt) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.receipts.CreateReceipt(ctx, receipt); err != nil {
			log.Printf("Failed to create %s receipt for customer %d: %v",
				receipt.TransactionType, receipt.CustomerID, err)
		}
	}()
}
