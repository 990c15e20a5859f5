package repository

import (
	"fmt"
	"sort"
	"sync"

	"autoshop/internal/core/model"
)

type inMemoryServiceRecordRepository struct {
	records map[string]*model.ServiceRecord
	mutex   sync.RWMutex
}

func NewInMemoryServiceRecordRepository() ServiceRecordRepository {
	return &inMemoryServiceRecordRepository{
		records: make(map[string]*model.ServiceRecord),
	}
}

func (r *inMemoryServiceRecordRepository) Create(record *model.ServiceRecord) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.records[record.ID]; exists {
		return fmt.Errorf("service record with ID %s already exists", record.ID)
	}

	r.records[record.ID] = record
	return nil
}

func (r *inMemoryServiceRecordRepository) Update(record *model.ServiceRecord) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.records[record.ID]; !exists {
		return fmt.Errorf("service record with ID %s not found", record.ID)
	}

	r.records[record.ID] = record
	return nil
}

func (r *inMemoryServiceRecordRepository) Delete(id string) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.records[id]; !exists {
		return false, nil
	}

	delete(r.records, id)
	return true, nil
}

func (r *inMemoryServiceRecordRepository) FindByID(id string) (*model.ServiceRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if record, exists := r.records[id]; exists {
		return record, nil
	}
	return nil, nil
}

func (r *inMemoryServiceRecordRepository) FindAll() ([]*model.ServiceRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	records := make([]*model.ServiceRecord, 0, len(r.records))
	for _, record := range r.records {
		records = append(records, record)
	}
	sortNewestFirst(records)
	return records, nil
}

func (r *inMemoryServiceRecordRepository) FindByUserID(userID string) ([]*model.ServiceRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.ServiceRecord
	for _, record := range r.records {
		if record.UserID == userID {
			result = append(result, record)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func sortNewestFirst(records []*model.ServiceRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
