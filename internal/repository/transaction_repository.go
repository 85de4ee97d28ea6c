package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lifesure/lifesure-backend/internal/apperr"
	"github.com/lifesure/lifesure-backend/internal/models"
)

type TransactionRepository struct {
	coll *mongo.Collection
}

func NewTransactionRepository(s *Store) *TransactionRepository {
	return &TransactionRepository{coll: s.Transactions}
}

func (r *TransactionRepository) Insert(ctx context.Context, t *models.Transaction) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, t)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, apperr.Conflict("payment %s already recorded", t.TransactionID)
	}
	if err != nil {
		return primitive.NilObjectID, storeErr("insert transaction", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *TransactionRepository) List(ctx context.Context, customerEmail string) ([]models.Transaction, error) {
	filter := bson.M{}
	if customerEmail != "" {
		filter["customerEmail"] = customerEmail
	}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, storeErr("list transactions", err)
	}
	defer cur.Close(ctx)

	var out []models.Transaction
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr("decode transactions", err)
	}
	return out, nil
}
