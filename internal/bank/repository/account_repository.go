package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/models"
)

// ErrNotFound is returned when no account matches the given customer number.
var ErrNotFound = errors.New("account not found")

// AccountRepository owns the accounts collection. No uniqueness constraints
// are enforced on customer_id or account_number.
type AccountRepository struct {
	collection *mongo.Collection
}

func NewAccountRepository(collection *mongo.Collection) *AccountRepository {
	return &AccountRepository{collection: collection}
}

func (r *AccountRepository) List(ctx context.Context) ([]models.Account, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer cursor.Close(ctx)

	var accounts []models.Account
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) Insert(ctx context.Context, account *models.Account) error {
	result, err := r.collection.InsertOne(ctx, account)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		account.ID = oid
	}
	return nil
}

// FindByCustomerID returns the first account matching the customer number.
func (r *AccountRepository) FindByCustomerID(ctx context.Context, customerID int) (*models.Account, error) {
	var account models.Account
	err := r.collection.FindOne(ctx, bson.M{"customer_id": customerID}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return &account, nil
}

// IncrementBalance applies an atomic $inc to the first matching account.
// Pass a negative delta to debit. Returns ErrNotFound when nothing matched.
func (r *AccountRepository) IncrementBalance(ctx context.Context, customerID int, delta float64) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"customer_id": customerID},
		bson.M{"$inc": bson.M{"balance": delta}},
	)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
