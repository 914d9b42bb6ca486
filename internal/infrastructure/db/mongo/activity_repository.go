package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/activityhub/membership-api/internal/core/domain"
	"github.com/activityhub/membership-api/internal/core/ports"
)

const activitiesCollection = "activities"

type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activitiesCollection)}
}

type activityDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Location    string             `bson:"location,omitempty"`
	StartAt     int64              `bson:"start_at"`
	EndAt       int64              `bson:"end_at"`
	Price       int64              `bson:"price"`
	Capacity    int                `bson:"capacity"`
	Picture     string             `bson:"picture,omitempty"`
	Status      string             `bson:"status"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ActivityRepository) Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, activityToDoc(activity))
	if err != nil {
		return nil, fmt.Errorf("insert activity: %w", err)
	}

	created := *activity
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ActivityRepository) FindByID(ctx context.Context, id string) (*domain.Activity, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrActivityNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc activityDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, fmt.Errorf("find activity: %w", err)
	}
	return docToActivity(doc), nil
}

func (r *ActivityRepository) Update(ctx context.Context, activity *domain.Activity) error {
	oid, err := primitive.ObjectIDFromHex(activity.ID)
	if err != nil {
		return domain.ErrActivityNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := activityToDoc(activity)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update activity: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (r *ActivityRepository) SetStatus(ctx context.Context, id, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrActivityNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": status, "updated_at": time.Now().UTC().Unix()}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("set activity status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (r *ActivityRepository) Count(ctx context.Context, filter ports.ActivityFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, activityFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("count activities: %w", err)
	}
	return count, nil
}

func (r *ActivityRepository) Find(ctx context.Context, filter ports.ActivityFilter, skip, limit int64) ([]domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, activityFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find activities: %w", err)
	}
	defer cur.Close(ctx)

	var activities []domain.Activity
	for cur.Next(ctx) {
		var doc activityDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		activities = append(activities, *docToActivity(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}
	return activities, nil
}

func activityFilter(filter ports.ActivityFilter) bson.M {
	out := bson.M{}
	if filter.Status != "" {
		out["status"] = filter.Status
	}
	return out
}

func activityToDoc(a *domain.Activity) activityDoc {
	doc := activityDoc{
		Title:       a.Title,
		Description: a.Description,
		Location:    a.Location,
		StartAt:     a.StartAt.Unix(),
		EndAt:       a.EndAt.Unix(),
		Price:       a.Price,
		Capacity:    a.Capacity,
		Picture:     a.Picture,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt.Unix(),
		UpdatedAt:   a.UpdatedAt.Unix(),
	}
	if oid, err := primitive.ObjectIDFromHex(a.ID); err == nil {
		doc.ID = oid
	}
	return doc
}

func docToActivity(doc activityDoc) *domain.Activity {
	return &domain.Activity{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		Description: doc.Description,
		Location:    doc.Location,
		StartAt:     unixToTime(doc.StartAt),
		EndAt:       unixToTime(doc.EndAt),
		Price:       doc.Price,
		Capacity:    doc.Capacity,
		Picture:     doc.Picture,
		Status:      doc.Status,
		CreatedAt:   unixToTime(doc.CreatedAt),
		UpdatedAt:   unixToTime(doc.UpdatedAt),
	}
}
