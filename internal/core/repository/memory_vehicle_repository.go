package repository

import (
	"fmt"
	"sort"
	"sync"

	"autoshop/internal/core/model"
)

type inMemoryVehicleRepository struct {
	vehicles map[string]*model.Vehicle
	mutex    sync.RWMutex
}

func NewInMemoryVehicleRepository() VehicleRepository {
	return &inMemoryVehicleRepository{
		vehicles: make(map[string]*model.Vehicle),
	}
}

func (r *inMemoryVehicleRepository) Create(vehicle *model.Vehicle) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.vehicles[vehicle.ID]; exists {
		return fmt.Errorf("vehicle with ID %s already exists", vehicle.ID)
	}

	r.vehicles[vehicle.ID] = vehicle
	return nil
}

func (r *inMemoryVehicleRepository) FindByID(id string) (*model.Vehicle, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if vehicle, exists := r.vehicles[id]; exists {
		return vehicle, nil
	}
	return nil, nil
}

func (r *inMemoryVehicleRepository) FindByUserID(userID string) ([]*model.Vehicle, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.Vehicle
	for _, vehicle := range r.vehicles {
		if vehicle.UserID == userID {
			result = append(result, vehicle)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *inMemoryVehicleRepository) FindByUserAndPlate(userID, licensePlate string) (*model.Vehicle, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, vehicle := range r.vehicles {
		if vehicle.UserID == userID && vehicle.LicensePlate == licensePlate {
			return vehicle, nil
		}
	}
	return nil, nil
}

func (r *inMemoryVehicleRepository) DeleteByIDAndUser(id, userID string) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	vehicle, exists := r.vehicles[id]
	if !exists || vehicle.UserID != userID {
		return false, nil
	}

	delete(r.vehicles, id)
	return true, nil
}
