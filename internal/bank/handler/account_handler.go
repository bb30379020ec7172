package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AlexP8on7/FullStack-Bank-Project/internal/bank/service"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/middleware"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/models"
)

// AccountServicer defines the operations used by AccountHandler.
type AccountServicer interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccountByCustomer(ctx context.Context, customerID int) (*models.Account, error)
	Deposit(ctx context.Context, customerID int, amount float64) error
	Withdraw(ctx context.Context, customerID int, amount float64) error
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accounts AccountServicer
}

func NewAccountHandler(accounts AccountServicer) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type CreateAccountRequest struct {
	CustomerID    int     `json:"customer_id" validate:"required,gt=0"`
	Balance       float64 `json:"balance"`
	AccountNumber string  `json:"account_number" validate:"required"`
}

type TransactionRequest struct {
	Amount float64 `json:"amount"`
}

// RegisterRoutes mounts the bank service routes on a gin engine.
func (h *AccountHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/accounts", h.ListAccounts)
	router.POST("/accounts", h.CreateAccount)
	router.GET("/accounts/:customer_id", h.GetAccount)
	router.POST("/accounts/:customer_id/deposit", h.Deposit)
	router.POST("/accounts/:customer_id/withdraw", h.Withdraw)
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.accounts.ListAccounts(c.Request.Context())
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list accounts")
		return
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account := &models.Account{
		CustomerID:    req.CustomerID,
		Balance:       req.Balance,
		AccountNumber: req.AccountNumber,
	}
	if err := h.accounts.CreateAccount(c.Request.Context(), account); err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account created", "account": account})
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	customerID, err := strconv.Atoi(c.Param("customer_id"))
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	account, err := h.accounts.GetAccountByCustomer(c.Request.Context(), customerID)
	if errors.Is(err, service.ErrAccountNotFound) {
		// Preserved contract: missing accounts answer 200 with an error body.
		c.JSON(http.StatusOK, gin.H{"error": "Account not found"})
		return
	}
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get account")
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) Deposit(c *gin.Context) {
	customerID, err := strconv.Atoi(c.Param("customer_id"))
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = h.accounts.Deposit(c.Request.Context(), customerID, req.Amount)
	if errors.Is(err, service.ErrAccountNotFound) {
		c.JSON(http.StatusOK, gin.H{"error": "Account not found"})
		return
	}
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to deposit")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deposit successful"})
}

func (h *AccountHandler) Withdraw(c *gin.Context) {
	customerID, err := strconv.Atoi(c.Param("customer_id"))
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = h.accounts.Withdraw(c.Request.Context(), customerID, req.Amount)
	if errors.Is(err, service.ErrAccountNotFound) || errors.Is(err, service.ErrInsufficientFunds) {
		c.JSON(http.StatusOK, gin.H{"error": "Insufficient funds or account not found"})
		return
	}
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to withdraw")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Withdrawal successful"})
}
