package repository

import (
	"context"
	"time"

	"autoshop/internal/core/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type VehicleRepository interface {
	Create(vehicle *model.Vehicle) error
	FindByID(id string) (*model.Vehicle, error)
	FindByUserID(userID string) ([]*model.Vehicle, error)
	FindByUserAndPlate(userID, licensePlate string) (*model.Vehicle, error)
	DeleteByIDAndUser(id, userID string) (bool, error)
}

type MongoVehicleRepository struct {
	collection *mongo.Collection
}

func NewMongoVehicleRepository(db *mongo.Database) *MongoVehicleRepository {
	return &MongoVehicleRepository{
		collection: db.Collection("vehicles"),
	}
}

func (r *MongoVehicleRepository) Create(vehicle *model.Vehicle) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, vehicle)
	return err
}

func (r *MongoVehicleRepository) FindByID(id string) (*model.Vehicle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var vehicle model.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&vehicle)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &vehicle, err
}

// FindByUserID returns the user's vehicles newest first.
func (r *MongoVehicleRepository) FindByUserID(userID string) ([]*model.Vehicle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdat", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userid": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vehicles []*model.Vehicle
	if err = cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// FindByUserAndPlate expects an already-uppercased plate.
func (r *MongoVehicleRepository) FindByUserAndPlate(userID, licensePlate string) (*model.Vehicle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var vehicle model.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"userid": userID, "licenseplate": licensePlate}).Decode(&vehicle)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &vehicle, err
}

// DeleteByIDAndUser removes the vehicle only when it belongs to the
// given user, and reports whether a document was removed.
func (r *MongoVehicleRepository) DeleteByIDAndUser(id, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id, "userid": userID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
