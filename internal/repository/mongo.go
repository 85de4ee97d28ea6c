package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lifesure/lifesure-backend/internal/apperr"
)

// Store bundles the collection handles used by the repositories. It is
// constructed once at startup and injected; nothing reads collections from
// package state.
type Store struct {
	Policies     *mongo.Collection
	Applications *mongo.Collection
	Transactions *mongo.Collection
	Claims       *mongo.Collection
	Users        *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		Policies:     db.Collection("policies"),
		Applications: db.Collection("applications"),
		Transactions: db.Collection("transactions"),
		Claims:       db.Collection("claims"),
		Users:        db.Collection("users"),
	}
}

// EnsureIndexes creates the unique indexes the lifecycle invariants depend
// on: one claim per (policy, customer) and one transaction per payment
// intent. Races that slip past application-level checks are rejected here.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.Claims.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "policy_id", Value: 1}, {Key: "customerEmail", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.Transactions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "transactionId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// storeErr wraps driver failures as internal errors so nothing above the
// repository layer sees driver detail.
func storeErr(op string, err error) error {
	return apperr.Internal(op, err)
}
