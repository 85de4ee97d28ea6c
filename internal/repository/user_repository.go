package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lifesure/lifesure-backend/internal/apperr"
	"github.com/lifesure/lifesure-backend/internal/models"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{coll: s.Users}
}

func (r *UserRepository) Insert(ctx context.Context, u *models.User) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, apperr.Conflict("user %s already exists", u.Email)
	}
	if err != nil {
		return primitive.NilObjectID, storeErr("insert user", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("find user", err)
	}
	return &u, nil
}

func (r *UserRepository) SetRole(ctx context.Context, id primitive.ObjectID, role models.UserRole) (int64, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return 0, storeErr("set role", err)
	}
	return res.MatchedCount, nil
}
