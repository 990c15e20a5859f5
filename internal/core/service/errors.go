package service

import "errors"

// Expected failures, mapped to HTTP statuses at the handler boundary.
// Vehicle and record lookups that fail ownership checks return the same
// not-found error as missing rows so other users' resources are not
// enumerable.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPlateTaken         = errors.New("license plate already registered")
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrServiceNotFound    = errors.New("service record not found")
	ErrInvalidStatus      = errors.New("invalid status")
)
