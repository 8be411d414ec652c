package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"weekhours-service/internal/model"
)

type DayStore struct {
	coll *mongo.Collection
}

func NewDayStore(ctx context.Context, db *MongoDB) (*DayStore, error) {
	days := db.Collection("days")

	// One record per (user, date); lookups are always user-scoped.
	if _, err := days.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "date", Value: 1}}},
	}); err != nil {
		return nil, fmt.Errorf("create day indexes: %w", err)
	}

	return &DayStore{coll: days}, nil
}

// Create inserts a new day record and sets the ID on the struct.
func (s *DayStore) Create(ctx context.Context, record *model.DayRecord) error {
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()
	res, err := s.coll.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("insert day: %w", err)
	}
	record.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

// Update replaces an existing day record.
func (s *DayStore) Update(ctx context.Context, record *model.DayRecord) error {
	record.UpdatedAt = time.Now()
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": record.ID, "user_id": record.UserID}, record)
	if err != nil {
		return fmt.Errorf("update day: %w", err)
	}
	return nil
}

// GetByID returns the user's day record with the given ID, or nil if not found.
func (s *DayStore) GetByID(ctx context.Context, id bson.ObjectID, userID string) (*model.DayRecord, error) {
	var record model.DayRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find day: %w", err)
	}
	return &record, nil
}

// GetByDate returns the user's day record for a date (YYYY-MM-DD), or nil
// if the date is unrecorded.
func (s *DayStore) GetByDate(ctx context.Context, userID, date string) (*model.DayRecord, error) {
	var record model.DayRecord
	err := s.coll.FindOne(ctx, bson.M{"user_id": userID, "date": date}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find day by date: %w", err)
	}
	return &record, nil
}

// Delete removes the user's day record, leaving the date unrecorded.
func (s *DayStore) Delete(ctx context.Context, id bson.ObjectID, userID string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete day: %w", err)
	}
	return nil
}
