package repository

import (
	"context"
	"time"

	"autoshop/internal/core/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ServiceRecordRepository interface {
	Create(record *model.ServiceRecord) error
	Update(record *model.ServiceRecord) error
	Delete(id string) (bool, error)
	FindByID(id string) (*model.ServiceRecord, error)
	FindAll() ([]*model.ServiceRecord, error)
	FindByUserID(userID string) ([]*model.ServiceRecord, error)
}

type MongoServiceRecordRepository struct {
	collection *mongo.Collection
}

func NewMongoServiceRecordRepository(db *mongo.Database) *MongoServiceRecordRepository {
	return &MongoServiceRecordRepository{
		collection: db.Collection("services"),
	}
}

func (r *MongoServiceRecordRepository) Create(record *model.ServiceRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *MongoServiceRecordRepository) Update(record *model.ServiceRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.ReplaceOne(ctx, bson.M{"id": record.ID}, record)
	return err
}

func (r *MongoServiceRecordRepository) Delete(id string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (r *MongoServiceRecordRepository) FindByID(id string) (*model.ServiceRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var record model.ServiceRecord
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &record, err
}

func (r *MongoServiceRecordRepository) FindAll() ([]*model.ServiceRecord, error) {
	return r.find(bson.M{})
}

func (r *MongoServiceRecordRepository) FindByUserID(userID string) ([]*model.ServiceRecord, error) {
	return r.find(bson.M{"userid": userID})
}

func (r *MongoServiceRecordRepository) find(filter bson.M) ([]*model.ServiceRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdat", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.ServiceRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
