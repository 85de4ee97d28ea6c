package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lifesure/lifesure-backend/internal/apperr"
	"github.com/lifesure/lifesure-backend/internal/models"
)

type ClaimRepository struct {
	coll *mongo.Collection
}

func NewClaimRepository(s *Store) *ClaimRepository {
	return &ClaimRepository{coll: s.Claims}
}

func (r *ClaimRepository) Insert(ctx context.Context, c *models.Claim) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, apperr.Conflict("claim already submitted for this policy")
	}
	if err != nil {
		return primitive.NilObjectID, storeErr("insert claim", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *ClaimRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Claim, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ClaimRepository) FindByPolicyAndEmail(ctx context.Context, policyID primitive.ObjectID, email string) (*models.Claim, error) {
	return r.findOne(ctx, bson.M{"policy_id": policyID, "customerEmail": email})
}

func (r *ClaimRepository) findOne(ctx context.Context, filter bson.M) (*models.Claim, error) {
	var c models.Claim
	err := r.coll.FindOne(ctx, filter).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("find claim", err)
	}
	return &c, nil
}

func (r *ClaimRepository) List(ctx context.Context, status models.ApplicationStatus) ([]models.Claim, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.findMany(ctx, filter)
}

func (r *ClaimRepository) ListByCustomer(ctx context.Context, email string) ([]models.Claim, error) {
	return r.findMany(ctx, bson.M{"customerEmail": email})
}

func (r *ClaimRepository) findMany(ctx context.Context, filter bson.M) ([]models.Claim, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("list claims", err)
	}
	defer cur.Close(ctx)

	var out []models.Claim
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr("decode claims", err)
	}
	return out, nil
}

// ResolveIfNot writes the resolution only when the claim is not already in
// the target status, so re-resolving an approved claim matches nothing and
// the purchase counter cannot move twice.
func (r *ClaimRepository) ResolveIfNot(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus, agentEmail string, approvedAt *time.Time) (int64, error) {
	set := bson.M{"status": status, "agentEmail": agentEmail}
	update := bson.M{"$set": set}
	if approvedAt != nil {
		set["approvedAt"] = *approvedAt
	} else {
		update["$unset"] = bson.M{"approvedAt": ""}
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$ne": status}},
		update,
	)
	if err != nil {
		return 0, storeErr("resolve claim", err)
	}
	return res.MatchedCount, nil
}

func (r *ClaimRepository) CountPending(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"status": models.StatusPending})
	if err != nil {
		return 0, storeErr("count pending claims", err)
	}
	return n, nil
}
