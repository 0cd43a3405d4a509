// Package mongodb implements the debit card store on MongoDB.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bankcore/debit-card-service/internal/debit"
	"github.com/bankcore/debit-card-service/internal/errs"
	"github.com/bankcore/debit-card-service/internal/model"
)

// CollectionName is the collection debit cards are stored in.
const CollectionName = "debit_cards"

const defaultConnectTimeout = 5 * time.Second

// Store persists debit cards in a MongoDB collection. Save is a
// single-document ReplaceOne upsert, so concurrent associations against the
// same card cannot interleave partial writes.
type Store struct {
	collection *mongo.Collection
}

// Compile-time assertion: *Store implements debit.Store.
var _ debit.Store = (*Store)(nil)

// NewStore builds a store over an existing database handle.
func NewStore(db *mongo.Database) *Store {
	return &Store{collection: db.Collection(CollectionName)}
}

// Connect dials MongoDB, verifies connectivity, and returns a ready store.
func Connect(ctx context.Context, uri, database string) (*Store, *mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())

		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return NewStore(client.Database(database)), client, nil
}

// EnsureIndexes creates the lookup indexes the store queries rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "customerId", Value: 1}, {Key: "primaryAccountId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "active", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("create debit card indexes: %w", err)
	}

	return nil
}

// Save upserts the card as one document.
func (s *Store) Save(ctx context.Context, card *model.DebitCard) error {
	_, err := s.collection.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: card.ID}},
		card,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save debit card %s: %w", card.ID, err)
	}

	return nil
}

// FindByID returns the card or errs.NotFound.
func (s *Store) FindByID(ctx context.Context, id string) (*model.DebitCard, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id}},
		func() *errs.Error { return errs.NotFound("debit card not found: %s", id) })
}

// FindByCustomerAndPrimaryAccount returns the card keyed by the pair or
// errs.NotFound.
func (s *Store) FindByCustomerAndPrimaryAccount(ctx context.Context, customerID, accountID string) (*model.DebitCard, error) {
	filter := bson.D{
		{Key: "customerId", Value: customerID},
		{Key: "primaryAccountId", Value: accountID},
	}

	return s.findOne(ctx, filter, func() *errs.Error {
		return errs.NotFound("no debit card for customer %s and account %s", customerID, accountID)
	})
}

// FindByCustomerIDActive returns the customer's active card or errs.NotFound.
func (s *Store) FindByCustomerIDActive(ctx context.Context, customerID string) (*model.DebitCard, error) {
	filter := bson.D{
		{Key: "customerId", Value: customerID},
		{Key: "active", Value: true},
	}

	return s.findOne(ctx, filter, func() *errs.Error {
		return errs.NotFound("no active debit card found for customer: %s", customerID)
	})
}

func (s *Store) findOne(ctx context.Context, filter bson.D, notFound func() *errs.Error) (*model.DebitCard, error) {
	var card model.DebitCard

	err := s.collection.FindOne(ctx, filter).Decode(&card)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound()
		}

		return nil, fmt.Errorf("find debit card: %w", err)
	}

	return &card, nil
}
