package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AlexP8on7/FullStack-Bank-Project/internal/customer/service"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/clients"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/middleware"
	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/models"
)

// CustomerServicer defines the operations used by CustomerHandler.
type CustomerServicer interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	CreateCustomer(ctx context.Context, params service.CreateCustomerParams) (*models.Customer, error)
	Login(ctx context.Context, username, password string) (*service.LoginResult, error)
	UpdateField(ctx context.Context, rawID, field, value string) error
	SimpleTransaction(ctx context.Context, rawID, txType string, amount float64) error
	Transfer(ctx context.Context, fromIBAN, toIBAN string, amount float64) error
	Delete(ctx context.Context, rawID string) error
}

// CustomerHandler handles customer-related HTTP requests.
type CustomerHandler struct {
	customers CustomerServicer
}

func NewCustomerHandler(customers CustomerServicer) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

type CreateCustomerRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Age      int    `json:"age" validate:"required,gt=0"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phonenm" validate:"required"`
	Address  string `json:"address" validate:"required"`
}

type UpdateFieldRequest struct {
	Value string `json:"value"`
}

// RegisterRoutes mounts the customer service routes on a gin engine.
// Login credentials ride in the URL path; that is the contract the existing
// frontend speaks.
func (h *CustomerHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/customers", h.ListCustomers)
	router.POST("/customer/createCustomer", h.CreateCustomer)
	router.GET("/customer/login/:username/:password", h.Login)
	router.PUT("/customer/update/:id/:field", h.UpdateField)
	router.PUT("/customer/transaction/:id/:type/:amount", h.SimpleTransaction)
	router.PUT("/customer/transfer/:from_iban/:to_iban/:amount", h.Transfer)
	router.DELETE("/customer/deleteAcc/:id", h.Delete)
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.customers.ListCustomers(c.Request.Context())
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list customers")
		return
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	customer, err := h.customers.CreateCustomer(c.Request.Context(), service.CreateCustomerParams{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Age:      req.Age,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if errors.Is(err, service.ErrDuplicateUsername) {
		middleware.RespondWithError(c, http.StatusConflict, "Username already taken")
		return
	}
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Login(c *gin.Context) {
	result, err := h.customers.Login(c.Request.Context(), c.Param("username"), c.Param("password"))
	if errors.Is(err, service.ErrInvalidCredentials) {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	// Two-element response: augmented customer record, then the raw account.
	c.JSON(http.StatusOK, []any{result.Customer, result.Account})
}

func (h *CustomerHandler) UpdateField(c *gin.Context) {
	field := c.Param("field")

	var req UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.customers.UpdateField(c.Request.Context(), c.Param("id"), field, req.Value)
	switch {
	case errors.Is(err, service.ErrInvalidCustomerID), errors.Is(err, service.ErrImmutableField):
		middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, service.ErrCustomerNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	case err != nil:
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": capitalize(field) + " updated"})
}

func (h *CustomerHandler) SimpleTransaction(c *gin.Context) {
	txType := c.Param("type")
	amount, err := strconv.ParseFloat(c.Param("amount"), 64)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid amount")
		return
	}

	err = h.customers.SimpleTransaction(c.Request.Context(), c.Param("id"), txType, amount)
	switch {
	case errors.Is(err, service.ErrInvalidCustomerID):
		middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, service.ErrCustomerNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	case errors.Is(err, clients.ErrUnavailable):
		middleware.RespondWithError(c, http.StatusServiceUnavailable, "Service unavailable")
		return
	case errors.Is(err, service.ErrTransactionFailed):
		middleware.RespondWithError(c, http.StatusBadRequest, capitalize(txType)+" failed")
		return
	case err != nil:
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to process transaction")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": capitalize(txType) + " successful"})
}

func (h *CustomerHandler) Transfer(c *gin.Context) {
	amount, err := strconv.ParseFloat(c.Param("amount"), 64)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid amount")
		return
	}

	err = h.customers.Transfer(c.Request.Context(), c.Param("from_iban"), c.Param("to_iban"), amount)
	switch {
	case errors.Is(err, service.ErrInvalidIBAN):
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid IBAN format")
		return
	case errors.Is(err, service.ErrTransferRejected):
		middleware.RespondWithError(c, http.StatusBadRequest, "Transfer failed - "+err.Error())
		return
	case err != nil:
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to process transfer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transfer successful"})
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	err := h.customers.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, service.ErrInvalidCustomerID):
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	case errors.Is(err, service.ErrCustomerNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	case err != nil:
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
