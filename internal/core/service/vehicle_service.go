package service

import (
	"autoshop/internal/core/model"
	"autoshop/internal/core/repository"
)

type VehicleService interface {
	CreateVehicle(userID, make, vehicleModel string, year int, licensePlate string) (*model.Vehicle, error)
	ListVehicles(userID string) ([]*model.Vehicle, error)
	DeleteVehicle(userID, vehicleID string) error
}

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
	}
}

// CreateVehicle rejects a plate the same user has already registered,
// comparing on the uppercased form.
func (s *vehicleService) CreateVehicle(userID, make, vehicleModel string, year int, licensePlate string) (*model.Vehicle, error) {
	plate := model.NormalizePlate(licensePlate)

	existing, err := s.vehicleRepo.FindByUserAndPlate(userID, plate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPlateTaken
	}

	vehicle := model.NewVehicle(userID, make, vehicleModel, year, plate)
	if err := s.vehicleRepo.Create(vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *vehicleService) ListVehicles(userID string) ([]*model.Vehicle, error) {
	return s.vehicleRepo.FindByUserID(userID)
}

// DeleteVehicle removes only a vehicle owned by the caller. A vehicle
// that exists but belongs to someone else yields the same
// ErrVehicleNotFound as a missing one.
func (s *vehicleService) DeleteVehicle(userID, vehicleID string) error {
	deleted, err := s.vehicleRepo.DeleteByIDAndUser(vehicleID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrVehicleNotFound
	}
	return nil
}
