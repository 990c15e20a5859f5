package service

import (
	"context"
	"time"

	"autoshop/internal/auth"
	"autoshop/internal/cache"
	"autoshop/internal/core/model"
	"autoshop/internal/core/repository"
)

const profileCacheTTL = 5 * time.Minute

type BookingInput struct {
	VehicleID     string
	Date          time.Time
	Type          string
	Description   string
	Cost          float64
	TotalBill     float64
	CustomerPhone string
}

// RecordPatch is a field-presence patch: nil means "leave untouched",
// a non-nil pointer applies the value even when it is the zero value.
type RecordPatch struct {
	Date          *time.Time
	Type          *string
	Description   *string
	Cost          *float64
	TotalBill     *float64
	PartsUsed     *[]model.Part
	CustomerName  *string
	CustomerPhone *string
}

// ServiceDetail is a record enriched with the related vehicle's
// identification for listings.
type ServiceDetail struct {
	model.ServiceRecord
	VehicleMake  string `json:"vehicleMake"`
	VehicleModel string `json:"vehicleModel"`
	LicensePlate string `json:"licensePlate"`
}

type RecordService interface {
	Book(userID string, input BookingInput) (*model.ServiceRecord, error)
	List(identity *auth.Identity, includePickedUp bool) ([]*ServiceDetail, error)
	UpdateStatus(id, status string) (*model.ServiceRecord, error)
	UpdateDetails(id string, patch RecordPatch) (*model.ServiceRecord, error)
	DeleteRecord(id string) error
}

type recordService struct {
	recordRepo  repository.ServiceRecordRepository
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	cache       *cache.Cache
}

func NewRecordService(
	recordRepo repository.ServiceRecordRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	cache *cache.Cache,
) RecordService {
	return &recordService{
		recordRepo:  recordRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		cache:       cache,
	}
}

// Book creates a record for a vehicle the caller owns. The customer
// name is a snapshot of the caller's profile at booking time, not a
// live reference.
func (s *recordService) Book(userID string, input BookingInput) (*model.ServiceRecord, error) {
	vehicle, err := s.vehicleRepo.FindByID(input.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil || vehicle.UserID != userID {
		return nil, ErrVehicleNotFound
	}

	status := input.Type
	if status == "" {
		status = model.StatusPending
	}
	if !model.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	record := model.NewServiceRecord(userID, input.VehicleID, input.Date, status)
	record.Description = input.Description
	record.Cost = input.Cost
	record.TotalBill = input.TotalBill
	record.CustomerPhone = input.CustomerPhone

	if owner := s.ownerProfile(userID); owner != nil {
		record.CustomerName = owner.Name
	}

	if err := s.recordRepo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// List returns all records for an admin, hiding picked-up ones unless
// includePickedUp is set; a non-admin caller sees only their own
// records with no status filtering.
func (s *recordService) List(identity *auth.Identity, includePickedUp bool) ([]*ServiceDetail, error) {
	var records []*model.ServiceRecord
	var err error

	if identity.Admin {
		records, err = s.recordRepo.FindAll()
		if err != nil {
			return nil, err
		}
		if !includePickedUp {
			filtered := records[:0]
			for _, record := range records {
				if record.Status != model.StatusPickedUp {
					filtered = append(filtered, record)
				}
			}
			records = filtered
		}
	} else {
		records, err = s.recordRepo.FindByUserID(identity.UserID)
		if err != nil {
			return nil, err
		}
	}

	details := make([]*ServiceDetail, 0, len(records))
	for _, record := range records {
		details = append(details, s.enrich(record))
	}
	return details, nil
}

func (s *recordService) enrich(record *model.ServiceRecord) *ServiceDetail {
	detail := &ServiceDetail{ServiceRecord: *record}

	if vehicle, err := s.vehicleRepo.FindByID(record.VehicleID); err == nil && vehicle != nil {
		detail.VehicleMake = vehicle.Make
		detail.VehicleModel = vehicle.Model
		detail.LicensePlate = vehicle.LicensePlate
	}

	// Fall back to the owner's profile only when the stored snapshot is
	// empty. The profile carries no phone number, so the phone field
	// stays as booked.
	if detail.CustomerName == "" {
		if owner := s.ownerProfile(record.UserID); owner != nil {
			detail.CustomerName = owner.Name
		}
	}

	return detail
}

// ownerProfile looks up a user, memoized through the optional cache.
func (s *recordService) ownerProfile(userID string) *model.User {
	ctx := context.Background()
	key := "user:profile:" + userID

	var cached model.User
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil || user == nil {
		return nil
	}
	_ = s.cache.Set(ctx, key, user, profileCacheTTL)
	return user
}

func (s *recordService) UpdateStatus(id, status string) (*model.ServiceRecord, error) {
	if !model.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	record, err := s.recordRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrServiceNotFound
	}

	record.Status = status
	record.UpdatedAt = time.Now()
	if err := s.recordRepo.Update(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *recordService) UpdateDetails(id string, patch RecordPatch) (*model.ServiceRecord, error) {
	record, err := s.recordRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrServiceNotFound
	}

	if patch.Type != nil {
		if !model.ValidStatus(*patch.Type) {
			return nil, ErrInvalidStatus
		}
		record.Status = *patch.Type
	}
	if patch.Date != nil {
		record.Date = *patch.Date
	}
	if patch.Description != nil {
		record.Description = *patch.Description
	}
	if patch.Cost != nil {
		record.Cost = *patch.Cost
	}
	if patch.TotalBill != nil {
		record.TotalBill = *patch.TotalBill
	}
	if patch.PartsUsed != nil {
		record.PartsUsed = *patch.PartsUsed
	}
	if patch.CustomerName != nil {
		record.CustomerName = *patch.CustomerName
	}
	if patch.CustomerPhone != nil {
		record.CustomerPhone = *patch.CustomerPhone
	}

	record.UpdatedAt = time.Now()
	if err := s.recordRepo.Update(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *recordService) DeleteRecord(id string) error {
	deleted, err := s.recordRepo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrServiceNotFound
	}
	return nil
}
