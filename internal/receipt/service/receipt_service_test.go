package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/models"
)

type fakeReceiptStore struct {
	receipts []models.Receipt
}

func (s *fakeReceiptStore) List(ctx context.Context) ([]models.Receipt, error) {
	return s.receipts, nil
}

func (s *fakeReceiptStore) Insert(ctx context.Context, receipt *models.Receipt) error {
	s.receipts = append(s.receipts, *receipt)
	return nil
}

func (s *fakeReceiptStore) FindByCustomerID(ctx context.Context, customerID int) ([]models.Receipt, error) {
	var out []models.Receipt
	for _, r := range s.receipts {
		if r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func seededStore() *fakeReceiptStore {
	return &fakeReceiptStore{receipts: []models.Receipt{
		{CustomerID: 1, Amount: 25.0, TransactionType: models.TxDeposit},
		{CustomerID: 1, Amount: -40.0, TransactionType: models.TxTransferOut},
		{CustomerID: 2, Amount: 40.0, TransactionType: models.TxTransferIn},
	}}
}

func TestGetReceiptsByCustomer(t *testing.T) {
	svc := NewReceiptService(seededStore())

	receipts, err := svc.GetReceiptsByCustomer(context.Background(), "1")
	assert.NoError(t, err)
	assert.Len(t, receipts, 2)

	receipts, err = svc.GetReceiptsByCustomer(context.Background(), "2")
	assert.NoError(t, err)
	assert.Len(t, receipts, 1)
	assert.Equal(t, models.TxTransferIn, receipts[0].TransactionType)
}

func TestGetReceiptsByCustomerMalformedID(t *testing.T) {
	svc := NewReceiptService(seededStore())

	receipts, err := svc.GetReceiptsByCustomer(context.Background(), "64a1b2c3d4e5f60718293a4b")
	assert.NoError(t, err)
	assert.Empty(t, receipts)
}

func TestGetReceiptsByIBAN(t *testing.T) {
	svc := NewReceiptService(seededStore())

	tests := []struct {
		name string
		iban string
		want int
	}{
		{"valid iban", "ACC000001", 2},
		{"valid iban no receipts", "ACC000099", 0},
		{"wrong prefix", "XYZ000001", 0},
		{"non-numeric suffix", "ACCxxxxxx", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			receipts, err := svc.GetReceiptsByIBAN(context.Background(), tt.iban)
			assert.NoError(t, err)
			assert.Len(t, receipts, tt.want)
		})
	}
}

func TestCreateReceiptAppends(t *testing.T) {
	store := seededStore()
	svc := NewReceiptService(store)

	err := svc.CreateReceipt(context.Background(), &models.Receipt{
		CustomerID: 3, Amount: 10.0, TransactionType: models.TxWithdraw,
	})
	assert.NoError(t, err)
	assert.Len(t, store.receipts, 4)
}
