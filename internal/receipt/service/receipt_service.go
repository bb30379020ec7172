package service

import (
	"context"
	"strconv"

	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/models"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/utils"
)

// ReceiptStore defines the persistence operations the service needs.
type ReceiptStore interface {
	List(ctx context.Context) ([]models.Receipt, error)
	Insert(ctx context.Context, receipt *models.Receipt) error
	FindByCustomerID(ctx context.Context, customerID int) ([]models.Receipt, error)
}

// ReceiptService serves the append-only transaction ledger. Lookups are
// lenient: malformed identifiers yield an empty list, never an error.
type ReceiptService struct {
	store ReceiptStore
}

func NewReceiptService(store ReceiptStore) *ReceiptService {
	return &ReceiptService{store: store}
}

func (s *ReceiptService) ListReceipts(ctx context.Context) ([]models.Receipt, error) {
	return s.store.List(ctx)
}

func (s *ReceiptService) CreateReceipt(ctx context.Context, receipt *models.Receipt) error {
	return s.store.Insert(ctx, receipt)
}

// GetReceiptsByCustomer parses the raw path value as a customer number and
// filters by it. A non-numeric value yields an empty list.
func (s *ReceiptService) GetReceiptsByCustomer(ctx context.Context, rawCustomerID string) ([]models.Receipt, error) {
	customerID, err := strconv.Atoi(rawCustomerID)
	if err != nil {
		return []models.Receipt{}, nil
	}
	return s.store.FindByCustomerID(ctx, customerID)
}

// GetReceiptsByIBAN resolves the customer number from the account number
// suffix. Malformed prefixes or suffixes yield an empty list.
func (s *ReceiptService) GetReceiptsByIBAN(ctx context.Context, iban string) ([]models.Receipt, error) {
	customerID, err := utils.ParseIBAN(iban)
	if err != nil {
		return []models.Receipt{}, nil
	}
	return s.store.FindByCustomerID(ctx, customerID)
}
