package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Vehicle struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	LicensePlate string    `json:"licensePlate"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewVehicle(userID, make, model string, year int, licensePlate string) *Vehicle {
	return &Vehicle{
		ID:           uuid.NewString(),
		UserID:       userID,
		Make:         make,
		Model:        model,
		Year:         year,
		LicensePlate: NormalizePlate(licensePlate),
		CreatedAt:    time.Now(),
	}
}

// NormalizePlate uppercases the plate before storage and comparison.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}
