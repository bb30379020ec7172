package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction types recorded on receipts.
const (
	TxDeposit     = "deposit"
	TxWithdraw    = "withdraw"
	TxTransferOut = "transfer_out"
	TxTransferIn  = "transfer_in"
)

// Customer is the write model owned by the customer service.
// CustomerNumber is the stable integer used for all cross-service
// correlation; it is allocated once at signup and never recomputed.
type Customer struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerNumber int                `bson:"customer_number" json:"customer_number"`
	Name           string             `bson:"name" json:"name"`
	Username       string             `bson:"username" json:"username"`
	PasswordHash   string             `bson:"password_hash" json:"-"`
	Age            int                `bson:"age" json:"age"`
	Email          string             `bson:"email" json:"email"`
	Phone          string             `bson:"phonenm" json:"phonenm"`
	Address        string             `bson:"address" json:"address"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

// Account is owned by the bank service. CustomerID matches the owning
// customer's CustomerNumber.
type Account struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID    int                `bson:"customer_id" json:"customer_id"`
	Balance       float64            `bson:"balance" json:"balance"`
	AccountNumber string             `bson:"account_number" json:"account_number"`
}

// Receipt is an immutable record of a completed monetary movement.
// Amount is signed: negative for the outgoing leg of a transfer.
// Timestamp is an RFC3339 string, matching the wire format clients expect.
type Receipt struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID      int                `bson:"customer_id" json:"customer_id"`
	Amount          float64            `bson:"amount" json:"amount"`
	TransactionType string             `bson:"transaction_type" json:"transaction_type"`
	Timestamp       string             `bson:"timestamp" json:"timestamp"`
}
