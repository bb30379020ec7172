package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AlexP8on7/FullStack-Bank-Project/internal/shared/models"
)

// ErrNotFound is returned when no customer matches the given identifier.
var ErrNotFound = errors.New("customer not found")

// CustomerRepository owns the customers collection plus the counters
// collection used to allocate stable customer numbers.
type CustomerRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewCustomerRepository(collection, counters *mongo.Collection) *CustomerRepository {
	return &CustomerRepository{collection: collection, counters: counters}
}

func (r *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer cursor.Close(ctx)

	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("failed to decode customers: %w", err)
	}
	return customers, nil
}

func (r *CustomerRepository) FindByUsername(ctx context.Context, username string) (*models.Customer, error) {
	var customer models.Customer
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return &customer, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error) {
	var customer models.Customer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return &customer, nil
}

func (r *CustomerRepository) Insert(ctx context.Context, customer *models.Customer) error {
	result, err := r.collection.InsertOne(ctx, customer)
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		customer.ID = oid
	}
	return nil
}

// SetField applies a generic $set of one field. The caller is responsible
// for deciding which field names and values are allowed.
func (r *CustomerRepository) SetField(ctx context.Context, id primitive.ObjectID, field string, value any) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{field: value}},
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// NextCustomerNumber atomically allocates the next customer number from the
// counters collection. Numbers start at 1 and are never reused, so they stay
// stable across inserts and deletes.
func (r *CustomerRepository) NextCustomerNumber(ctx context.Context) (int, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "customer_number"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate customer number: %w", err)
	}
	return counter.Seq, nil
}
