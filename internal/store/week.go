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

type WeekStore struct {
	coll *mongo.Collection
}

func NewWeekStore(ctx context.Context, db *MongoDB) (*WeekStore, error) {
	weeks := db.Collection("weeks")

	if _, err := weeks.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "year", Value: 1},
				{Key: "week_number", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}); err != nil {
		return nil, fmt.Errorf("create week indexes: %w", err)
	}

	return &WeekStore{coll: weeks}, nil
}

// Create inserts a new week record and sets the ID on the struct.
func (s *WeekStore) Create(ctx context.Context, record *model.WeekRecord) error {
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()
	res, err := s.coll.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("insert week: %w", err)
	}
	record.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

// Update replaces an existing week record.
func (s *WeekStore) Update(ctx context.Context, record *model.WeekRecord) error {
	record.UpdatedAt = time.Now()
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": record.ID, "user_id": record.UserID}, record)
	if err != nil {
		return fmt.Errorf("update week: %w", err)
	}
	return nil
}

// GetByID returns the user's week record with the given ID, or nil if not found.
func (s *WeekStore) GetByID(ctx context.Context, id bson.ObjectID, userID string) (*model.WeekRecord, error) {
	var record model.WeekRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find week: %w", err)
	}
	return &record, nil
}

// GetByKey returns the user's week identified by ISO year and week number,
// or nil if no such week exists yet.
func (s *WeekStore) GetByKey(ctx context.Context, userID string, year, weekNumber int) (*model.WeekRecord, error) {
	var record model.WeekRecord
	err := s.coll.FindOne(ctx, bson.M{
		"user_id":     userID,
		"year":        year,
		"week_number": weekNumber,
	}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find week by key: %w", err)
	}
	return &record, nil
}

// List returns all of the user's weeks, most recent first (year desc,
// then week number desc), for history display.
func (s *WeekStore) List(ctx context.Context, userID string) ([]*model.WeekRecord, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "year", Value: -1},
		{Key: "week_number", Value: -1},
	})
	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find weeks: %w", err)
	}
	var results []*model.WeekRecord
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode weeks: %w", err)
	}
	return results, nil
}
