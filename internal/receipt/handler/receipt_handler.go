package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/middleware"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/models"
)

// ReceiptServicer defines the operations used by ReceiptHandler.
type ReceiptServicer interface {
	ListReceipts(ctx context.Context) ([]models.Receipt, error)
	CreateReceipt(ctx context.Context, receipt *models.Receipt) error
	GetReceiptsByCustomer(ctx context.Context, rawCustomerID string) ([]models.Receipt, error)
	GetReceiptsByIBAN(ctx context.Context, iban string) ([]models.Receipt, error)
}

// ReceiptHandler handles receipt-related HTTP requests.
type ReceiptHandler struct {
	receipts ReceiptServicer
}

func NewReceiptHandler(receipts ReceiptServicer) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts}
}

type CreateReceiptRequest struct {
	CustomerID      int     `json:"customer_id" validate:"required,gt=0"`
	Amount          float64 `json:"amount"`
	TransactionType string  `json:"transaction_type" validate:"required,oneof=deposit withdraw transfer_out transfer_in"`
	Timestamp       string  `json:"timestamp" validate:"required"`
}

// RegisterRoutes mounts the receipt service routes on a gin engine.
func (h *ReceiptHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/receipts", h.ListReceipts)
	router.POST("/receipts", h.CreateReceipt)
	router.GET("/receipts/:customer_id", h.GetReceiptsByCustomer)
	router.GET("/receipt/getRec/:iban", h.GetReceiptsByIBAN)
}

func (h *ReceiptHandler) ListReceipts(c *gin.Context) {
	receipts, err := h.receipts.ListReceipts(c.Request.Context())
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list receipts")
		return
	}
	if receipts == nil {
		receipts = []models.Receipt{}
	}
	c.JSON(http.StatusOK, receipts)
}

func (h *ReceiptHandler) CreateReceipt(c *gin.Context) {
	var req CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	receipt := &models.Receipt{
		CustomerID:      req.CustomerID,
		Amount:          req.Amount,
		TransactionType: req.TransactionType,
		Timestamp:       req.Timestamp,
	}
	if err := h.receipts.CreateReceipt(c.Request.Context(), receipt); err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create receipt")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Receipt created", "id": receipt.ID.Hex()})
}

func (h *ReceiptHandler) GetReceiptsByCustomer(c *gin.Context) {
	receipts, err := h.receipts.GetReceiptsByCustomer(c.Request.Context(), c.Param("customer_id"))
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get receipts")
		return
	}
	if receipts == nil {
		receipts = []models.Receipt{}
	}
	c.JSON(http.StatusOK, receipts)
}

func (h *ReceiptHandler) GetReceiptsByIBAN(c *gin.Context) {
	receipts, err := h.receipts.GetReceiptsByIBAN(c.Request.Context(), c.Param("iban"))
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get receipts")
		return
	}
	if receipts == nil {
		receipts = []models.Receipt{}
	}
	c.JSON(http.StatusOK, receipts)
}
