package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/activityhub/membership-api/internal/core/domain"
	"github.com/activityhub/membership-api/internal/core/ports"
)

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password,omitempty"`
	Role         string             `bson:"role"`
	IsDisabled   bool               `bson:"is_disabled"`
	Picture      string             `bson:"picture,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

// withoutPassword keeps the hash out of every read path that has not
// explicitly asked for credentials.
var withoutPassword = bson.M{"password": 0}

// EnsureIndexes creates the unique indexes that are the authoritative
// duplicate boundary for email and username.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDoc{
		Email:        user.Email,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		IsDisabled:   user.IsDisabled,
		Picture:      user.Picture,
		CreatedAt:    user.CreatedAt.Unix(),
		UpdatedAt:    user.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateKeyError(err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// duplicateKeyError maps a unique-index violation to the field that caused
// it. The index name is the only discriminator the driver exposes.
func duplicateKeyError(err error) error {
	if strings.Contains(err.Error(), "username") {
		return domain.ErrDuplicateUsername
	}
	return domain.ErrDuplicateEmail
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(withoutPassword)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return docToUser(doc), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"username": username}, options.FindOne().SetProjection(withoutPassword)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return docToUser(doc), nil
}

// FindCredentialsByEmail is the only read that returns the password hash.
// Only member accounts are matched; admin credentials never travel through
// the member login path.
func (r *UserRepository) FindCredentialsByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"email": email, "role": domain.RoleUser}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find credentials: %w", err)
	}
	return docToUser(doc), nil
}

// FindCredentialsByID loads an account with its password hash regardless of
// role, so admins can change their own password too.
func (r *UserRepository) FindCredentialsByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find credentials: %w", err)
	}
	return docToUser(doc), nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id, username, picture string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"username": username, "updated_at": time.Now().UTC().Unix()}
	if picture != "" {
		set["picture"] = picture
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateKeyError(err)
		}
		return fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"password": passwordHash, "updated_at": time.Now().UTC().Unix()}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetDisabled(ctx context.Context, id string, disabled bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"is_disabled": disabled, "updated_at": time.Now().UTC().Unix()}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("set disabled: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) CountMembers(ctx context.Context, filter ports.MemberFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, memberFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return count, nil
}

func (r *UserRepository) FindMembers(ctx context.Context, filter ports.MemberFilter, sortAsc bool, skip, limit int64) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	order := -1
	if sortAsc {
		order = 1
	}
	opts := options.Find().
		SetProjection(withoutPassword).
		SetSort(bson.D{{Key: "created_at", Value: order}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, memberFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find members: %w", err)
	}
	defer cur.Close(ctx)

	var users []domain.User
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode member: %w", err)
		}
		users = append(users, *docToUser(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return users, nil
}

// memberFilter builds the listing filter. Search input is treated as a
// literal substring: it is escaped before becoming a $regex so client input
// never reaches the store as pattern syntax. A search that parses as an
// object id additionally matches on _id.
func memberFilter(filter ports.MemberFilter) bson.M {
	out := bson.M{"role": domain.RoleUser, "is_disabled": filter.Disabled}
	if filter.Search == "" {
		return out
	}

	pattern := regexp.QuoteMeta(filter.Search)
	or := bson.A{
		bson.M{"username": bson.M{"$regex": pattern}},
		bson.M{"email": bson.M{"$regex": pattern}},
	}
	if oid, err := primitive.ObjectIDFromHex(filter.Search); err == nil {
		or = append(or, bson.M{"_id": oid})
	}
	out["$or"] = or
	return out
}

func docToUser(doc userDoc) *domain.User {
	return &domain.User{
		ID:           doc.ID.Hex(),
		Email:        doc.Email,
		Username:     doc.Username,
		PasswordHash: doc.PasswordHash,
		Role:         doc.Role,
		IsDisabled:   doc.IsDisabled,
		Picture:      doc.Picture,
		CreatedAt:    unixToTime(doc.CreatedAt),
		UpdatedAt:    unixToTime(doc.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
