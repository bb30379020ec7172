package clients

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/models"
)

// ReceiptClient calls the receipt service over HTTP. All callers use it
// fire-and-forget: at-most-once, no retry, failures logged and dropped.
type ReceiptClient struct {
	baseURL string
	client  *http.Client
}

func NewReceiptClient(baseURL string) *ReceiptClient {
	return &ReceiptClient{baseURL: baseURL, client: defaultHTTPClient()}
}

// CreateReceipt appends a receipt to the ledger.
func (c *ReceiptClient) CreateReceipt(ctx context.Context, receipt models.Receipt) error {
	status, err := postJSON(ctx, c.client, c.baseURL+"/receipts", receipt, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return fmt.Errorf("%w: create receipt returned status %d", ErrRejected, status)
	}
	return nil
}
