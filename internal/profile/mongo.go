package profile

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const collectionName = "profiles"

// MongoStore persists profiles in a single collection, documents keyed by
// the identity id.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore binds a store to the profiles collection of db.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(collectionName)}
}

func (s *MongoStore) Create(ctx context.Context, p Profile) error {
	if _, err := s.coll.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (s *MongoStore) GetByID(ctx context.Context, id string) (Profile, error) {
	var p Profile
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("find profile by id: %w", err)
	}
	return p, nil
}

func (s *MongoStore) GetByEmail(ctx context.Context, email string) (Profile, error) {
	var p Profile
	if err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("find profile by email: %w", err)
	}
	return p, nil
}

func (s *MongoStore) Update(ctx context.Context, id string, upd Update) (Profile, error) {
	set := upd.setDocument()
	if len(set) == 0 {
		// Nothing survived the falsy filter; the current document is the
		// post-update document.
		return s.GetByID(ctx, id)
	}

	var p Profile
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// setDocument builds the $set document, skipping absent and zero-valued
// fields.
func (u Update) setDocument() bson.M {
	set := bson.M{}
	if u.Name != nil && *u.Name != "" {
		set["name"] = *u.Name
	}
	if u.Lastname != nil && *u.Lastname != "" {
		set["lastname"] = *u.Lastname
	}
	if u.Email != nil && *u.Email != "" {
		set["email"] = *u.Email
	}
	if u.Age != nil && *u.Age > 0 {
		set["age"] = *u.Age
	}
	return set
}
