package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/models"
)

// ReceiptRepository owns the receipts collection. Receipts are append-only:
// there are no update or delete operations.
type ReceiptRepository struct {
	collection *mongo.Collection
}

func NewReceiptRepository(collection *mongo.Collection) *ReceiptRepository {
	return &ReceiptRepository{collection: collection}
}

func (r *ReceiptRepository) List(ctx context.Context) ([]models.Receipt, error) {
	return r.find(ctx, bson.M{})
}

func (r *ReceiptRepository) Insert(ctx context.Context, receipt *models.Receipt) error {
	result, err := r.collection.InsertOne(ctx, receipt)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		receipt.ID = oid
	}
	return nil
}

func (r *ReceiptRepository) FindByCustomerID(ctx context.Context, customerID int) ([]models.Receipt, error) {
	return r.find(ctx, bson.M{"customer_id": customerID})
}

func (r *ReceiptRepository) find(ctx context.Context, filter bson.M) ([]models.Receipt, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer cursor.Close(ctx)

	var receipts []models.Receipt
	if err := cursor.All(ctx, &receipts); err != nil {
		return nil, fmt.Errorf("failed to decode receipts: %w", err)
	}
	return receipts, nil
}
