package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"autoshop/internal/api/util"
	"autoshop/internal/auth"
	"autoshop/internal/core/model"
	"autoshop/internal/core/service"
)

type VehicleHandler struct {
	vehicleService service.VehicleService
}

func NewVehicleHandler(vehicleService service.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
	}
}

type createVehicleRequest struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	LicensePlate string `json:"licensePlate"`
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []util.FieldError
	if req.Make == "" {
		errs = append(errs, util.FieldError{Msg: "Make is required"})
	}
	if req.Model == "" {
		errs = append(errs, util.FieldError{Msg: "Model is required"})
	}
	if req.Year < 1900 || req.Year > 2099 {
		errs = append(errs, util.FieldError{Msg: "Year must be between 1900 and 2099"})
	}
	if req.LicensePlate == "" {
		errs = append(errs, util.FieldError{Msg: "License plate is required"})
	}
	if len(errs) > 0 {
		util.WriteValidationErrors(w, errs)
		return
	}

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		util.WriteMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(identity.UserID, req.Make, req.Model, req.Year, req.LicensePlate)
	if err != nil {
		if errors.Is(err, service.ErrPlateTaken) {
			util.WriteMessage(w, http.StatusBadRequest, "Vehicle with this license plate already exists")
			return
		}
		logrus.Errorf("create vehicle failed: %v", err)
		util.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"msg":     "Vehicle registered successfully",
		"vehicle": vehicle,
	})
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		util.WriteMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	vehicles, err := h.vehicleService.ListVehicles(identity.UserID)
	if err != nil {
		logrus.Errorf("list vehicles failed: %v", err)
		util.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	if vehicles == nil {
		vehicles = []*model.Vehicle{}
	}
	util.WriteJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/vehicles/")
	if id == "" || strings.Contains(id, "/") {
		util.WriteMessage(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		util.WriteMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	if err := h.vehicleService.DeleteVehicle(identity.UserID, id); err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			util.WriteMessage(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		logrus.Errorf("delete vehicle failed: %v", err)
		util.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	util.WriteMessage(w, http.StatusOK, "Vehicle removed")
}
