package model

import (
	"time"

	"github.com/google/uuid"
)

// Part is a line item consumed by a service, stored in the order it was
// entered.
type Part struct {
	PartName string  `json:"partName"`
	Quantity int     `json:"quantity"`
	UnitCost float64 `json:"unitCost"`
}

type ServiceRecord struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	VehicleID     string    `json:"vehicleId"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
	Description   string    `json:"description"`
	Cost          float64   `json:"cost"`
	TotalBill     float64   `json:"totalBill"`
	PartsUsed     []Part    `json:"partsUsed"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

const (
	StatusPending  = "Pending"
	StatusPickedUp = "Picked Up"
)

// The status vocabulary mixes service categories (Oil Change, Brake
// Inspection, ...) and workflow stages (Pending, In Progress, ...) in a
// single field, so a booking's chosen category is overwritten once an
// admin moves the record through the workflow. Kept as one field for
// compatibility with existing records.
var validStatuses = map[string]bool{
	"Oil Change":        true,
	"Tire Rotation":     true,
	"Brake Inspection":  true,
	"Engine Diagnostic": true,
	"Fluid Check":       true,
	"Other":             true,
	"Pending":           true,
	"In Progress":       true,
	"Completed":         true,
	"Ready for Pickup":  true,
	"Picked Up":         true,
	"Cancelled":         true,
}

func ValidStatus(status string) bool {
	return validStatuses[status]
}

func NewServiceRecord(userID, vehicleID string, date time.Time, status string) *ServiceRecord {
	now := time.Now()
	return &ServiceRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		VehicleID: vehicleID,
		Date:      date,
		Status:    status,
		PartsUsed: []Part{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
