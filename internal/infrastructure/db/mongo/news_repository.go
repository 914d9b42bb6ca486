package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/activityhub/membership-api/internal/core/domain"
)

const newsCollection = "news"

type NewsRepository struct {
	coll *mongo.Collection
}

func NewNewsRepository(db *mongo.Database) *NewsRepository {
	return &NewsRepository{coll: db.Collection(newsCollection)}
}

type newsDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Picture   string             `bson:"picture,omitempty"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (r *NewsRepository) Create(ctx context.Context, news *domain.News) (*domain.News, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, newsToDoc(news))
	if err != nil {
		return nil, fmt.Errorf("insert news: %w", err)
	}

	created := *news
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *NewsRepository) FindByID(ctx context.Context, id string) (*domain.News, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNewsNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc newsDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNewsNotFound
		}
		return nil, fmt.Errorf("find news: %w", err)
	}
	return docToNews(doc), nil
}

func (r *NewsRepository) Update(ctx context.Context, news *domain.News) error {
	oid, err := primitive.ObjectIDFromHex(news.ID)
	if err != nil {
		return domain.ErrNewsNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, newsToDoc(news))
	if err != nil {
		return fmt.Errorf("update news: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNewsNotFound
	}
	return nil
}

func (r *NewsRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNewsNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNewsNotFound
	}
	return nil
}

func (r *NewsRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count news: %w", err)
	}
	return count, nil
}

func (r *NewsRepository) Find(ctx context.Context, skip, limit int64) ([]domain.News, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find news: %w", err)
	}
	defer cur.Close(ctx)

	var items []domain.News
	for cur.Next(ctx) {
		var doc newsDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode news: %w", err)
		}
		items = append(items, *docToNews(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate news: %w", err)
	}
	return items, nil
}

func newsToDoc(n *domain.News) newsDoc {
	doc := newsDoc{
		Title:     n.Title,
		Content:   n.Content,
		Picture:   n.Picture,
		CreatedAt: n.CreatedAt.Unix(),
		UpdatedAt: n.UpdatedAt.Unix(),
	}
	if oid, err := primitive.ObjectIDFromHex(n.ID); err == nil {
		doc.ID = oid
	}
	return doc
}

func docToNews(doc newsDoc) *domain.News {
	return &domain.News{
		ID:        doc.ID.Hex(),
		Title:     doc.Title,
		Content:   doc.Content,
		Picture:   doc.Picture,
		CreatedAt: unixToTime(doc.CreatedAt),
		UpdatedAt: unixToTime(doc.UpdatedAt),
	}
}
