package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lifesure/lifesure-backend/internal/models"
)

type ApplicationRepository struct {
	coll *mongo.Collection
}

func NewApplicationRepository(s *Store) *ApplicationRepository {
	return &ApplicationRepository{coll: s.Applications}
}

func (r *ApplicationRepository) Insert(ctx context.Context, a *models.Application) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		return primitive.NilObjectID, storeErr("insert application", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ApplicationRepository) GetByIDAndEmail(ctx context.Context, id primitive.ObjectID, email string) (*models.Application, error) {
	return r.findOne(ctx, bson.M{"_id": id, "email": email})
}

func (r *ApplicationRepository) findOne(ctx context.Context, filter bson.M) (*models.Application, error) {
	var a models.Application
	err := r.coll.FindOne(ctx, filter).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("find application", err)
	}
	return &a, nil
}

func (r *ApplicationRepository) List(ctx context.Context, status models.ApplicationStatus) ([]models.Application, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.findMany(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *ApplicationRepository) ListByCustomer(ctx context.Context, email string) ([]models.Application, error) {
	return r.findMany(ctx, bson.M{"email": email}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *ApplicationRepository) ListByAgent(ctx context.Context, agent string) ([]models.Application, error) {
	return r.findMany(ctx, bson.M{"agent": agent}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *ApplicationRepository) findMany(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Application, error) {
	cur, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, storeErr("list applications", err)
	}
	defer cur.Close(ctx)

	var out []models.Application
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr("decode applications", err)
	}
	return out, nil
}

func (r *ApplicationRepository) SetAgent(ctx context.Context, id primitive.ObjectID, agent string) (int64, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"agent": agent}})
	if err != nil {
		return 0, storeErr("assign agent", err)
	}
	return res.MatchedCount, nil
}

func (r *ApplicationRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus) (int64, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return 0, storeErr("set status", err)
	}
	return res.MatchedCount, nil
}

// ApproveIfNotApproved is a guarded transition: the filter excludes
// already-approved documents so concurrent approvals match at most once.
func (r *ApplicationRepository) ApproveIfNotApproved(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$ne": models.StatusApproved}},
		bson.M{"$set": bson.M{"status": models.StatusApproved}},
	)
	if err != nil {
		return 0, storeErr("approve application", err)
	}
	return res.MatchedCount, nil
}

func (r *ApplicationRepository) MarkPaid(ctx context.Context, id primitive.ObjectID, intentID string, paidAt, nextDue time.Time) (int64, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":                  models.StatusApproved,
		"payment.status":          models.PaymentPaid,
		"payment.lastPaymentDate": paidAt,
		"payment.nextPaymentDue":  nextDue,
		"payment.paymentIntentId": intentID,
	}})
	if err != nil {
		return 0, storeErr("mark paid", err)
	}
	return res.MatchedCount, nil
}

func (r *ApplicationRepository) CountMonthly(ctx context.Context, since time.Time) ([]models.MonthlyCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$createdAt"}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeErr("aggregate monthly applications", err)
	}
	defer cur.Close(ctx)

	var out []models.MonthlyCount
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr("decode monthly applications", err)
	}
	return out, nil
}

func (r *ApplicationRepository) RecentByAgent(ctx context.Context, agent string, limit int64) ([]models.Application, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	return r.findMany(ctx, bson.M{"agent": agent}, opts)
}
