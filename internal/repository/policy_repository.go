package repository

import (
	"context"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lifesure/lifesure-backend/internal/models"
)

type PolicyRepository struct {
	coll *mongo.Collection
}

func NewPolicyRepository(s *Store) *PolicyRepository {
	return &PolicyRepository{coll: s.Policies}
}

// policyDoc tolerates documents written by the previous backend, where
// numeric fields were sometimes stored as strings.
type policyDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Category      string             `bson:"category"`
	Description   string             `bson:"description"`
	Image         string             `bson:"image"`
	MinAge        interface{}        `bson:"minAge"`
	MaxAge        interface{}        `bson:"maxAge"`
	Coverage      interface{}        `bson:"coverage"`
	Duration      interface{}        `bson:"duration"`
	BasePremium   interface{}        `bson:"basePremium"`
	PurchaseCount interface{}        `bson:"purchaseCount"`
}

func coerceFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	}
	return 0
}

func coerceInt(v interface{}) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	}
	return 0
}

func (d *policyDoc) toModel() *models.Policy {
	return &models.Policy{
		ID:            d.ID,
		Title:         d.Title,
		Category:      d.Category,
		Description:   d.Description,
		Image:         d.Image,
		MinAge:        int(coerceInt(d.MinAge)),
		MaxAge:        int(coerceInt(d.MaxAge)),
		Coverage:      coerceFloat(d.Coverage),
		Duration:      coerceFloat(d.Duration),
		BasePremium:   coerceFloat(d.BasePremium),
		PurchaseCount: coerceInt(d.PurchaseCount),
	}
}

func (r *PolicyRepository) Insert(ctx context.Context, p *models.Policy) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, storeErr("insert policy", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *PolicyRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Policy, error) {
	var doc policyDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("find policy", err)
	}
	return doc.toModel(), nil
}

func (r *PolicyRepository) List(ctx context.Context, category, search string) ([]models.Policy, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	if search != "" {
		filter["title"] = bson.M{"$regex": search, "$options": "i"}
	}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, storeErr("list policies", err)
	}
	defer cur.Close(ctx)

	var out []models.Policy
	for cur.Next(ctx) {
		var doc policyDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, storeErr("decode policy", err)
		}
		out = append(out, *doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, storeErr("list policies", err)
	}
	return out, nil
}

func (r *PolicyRepository) Update(ctx context.Context, id primitive.ObjectID, p *models.Policy) (int64, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"title":       p.Title,
		"category":    p.Category,
		"description": p.Description,
		"image":       p.Image,
		"minAge":      p.MinAge,
		"maxAge":      p.MaxAge,
		"coverage":    p.Coverage,
		"duration":    p.Duration,
		"basePremium": p.BasePremium,
	}})
	if err != nil {
		return 0, storeErr("update policy", err)
	}
	return res.MatchedCount, nil
}

func (r *PolicyRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, storeErr("delete policy", err)
	}
	return res.DeletedCount, nil
}

func (r *PolicyRepository) IncrementPurchaseCount(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"purchaseCount": 1}})
	if err != nil {
		return storeErr("increment purchase count", err)
	}
	return nil
}
