package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"autoshop/internal/api/util"
	"autoshop/internal/auth"
	"autoshop/internal/core/model"
	"autoshop/internal/core/service"
)

type ServiceHandler struct {
	recordService service.RecordService
}

func NewServiceHandler(recordService service.RecordService) *ServiceHandler {
	return &ServiceHandler{
		recordService: recordService,
	}
}

type bookServiceRequest struct {
	VehicleID     string  `json:"vehicleId"`
	Date          string  `json:"date"`
	Type          string  `json:"type"`
	Description   string  `json:"description"`
	Cost          float64 `json:"cost"`
	TotalBill     float64 `json:"totalBill"`
	CustomerPhone string  `json:"customerPhone"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// updateServiceRequest distinguishes omitted fields from explicit zero
// values; only fields present in the body are applied.
type updateServiceRequest struct {
	Date          *string       `json:"date"`
	Type          *string       `json:"type"`
	Description   *string       `json:"description"`
	Cost          *float64      `json:"cost"`
	TotalBill     *float64      `json:"totalBill"`
	PartsUsed     *[]model.Part `json:"partsUsed"`
	CustomerName  *string       `json:"customerName"`
	CustomerPhone *string       `json:"customerPhone"`
}

func (h *ServiceHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req bookServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []util.FieldError
	if req.VehicleID == "" {
		errs = append(errs, util.FieldError{Msg: "Vehicle is required"})
	}
	date, err := parseDate(req.Date)
	if err != nil {
		errs = append(errs, util.FieldError{Msg: "A valid date is required"})
	}
	if req.Type != "" && !model.ValidStatus(req.Type) {
		errs = append(errs, util.FieldError{Msg: "Invalid service type"})
	}
	if req.Cost < 0 {
		errs = append(errs, util.FieldError{Msg: "Cost must not be negative"})
	}
	if req.TotalBill < 0 {
		errs = append(errs, util.FieldError{Msg: "Total bill must not be negative"})
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

	record, err := h.recordService.Book(identity.UserID, service.BookingInput{
		VehicleID:     req.VehicleID,
		Date:          date,
		Type:          req.Type,
		Description:   req.Description,
		Cost:          req.Cost,
		TotalBill:     req.TotalBill,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVehicleNotFound):
			util.WriteMessage(w, http.StatusNotFound, "Vehicle not found or does not belong to user")
		case errors.Is(err, service.ErrInvalidStatus):
			util.WriteMessage(w, http.StatusBadRequest, "Invalid service type")
		default:
			logrus.Errorf("book service failed: %v", err)
			util.WriteMessage(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"msg":     "Service booked successfully",
		"service": record,
	})
}

func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		util.WriteMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	includePickedUp := r.URL.Query().Get("includePickedUp") == "true"

	records, err := h.recordService.List(identity, includePickedUp)
	if err != nil {
		logrus.Errorf("list services failed: %v", err)
		util.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	util.WriteJSON(w, http.StatusOK, records)
}

func (h *ServiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := serviceIDFromPath(r.URL.Path)
	id = strings.TrimSuffix(id, "/status")
	if id == "" {
		util.WriteMessage(w, http.StatusNotFound, "Service not found")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Status == "" {
		util.WriteValidationErrors(w, []util.FieldError{{Msg: "Status is required"}})
		return
	}

	record, err := h.recordService.UpdateStatus(id, req.Status)
	if err != nil {
		h.writeRecordError(w, err, "update status")
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"msg":     "Status updated",
		"service": record,
	})
}

func (h *ServiceHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	id := serviceIDFromPath(r.URL.Path)
	if id == "" || strings.Contains(id, "/") {
		util.WriteMessage(w, http.StatusNotFound, "Service not found")
		return
	}

	var req updateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []util.FieldError
	patch := service.RecordPatch{
		Type:          req.Type,
		Description:   req.Description,
		Cost:          req.Cost,
		TotalBill:     req.TotalBill,
		PartsUsed:     req.PartsUsed,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			errs = append(errs, util.FieldError{Msg: "A valid date is required"})
		} else {
			patch.Date = &date
		}
	}
	if req.Cost != nil && *req.Cost < 0 {
		errs = append(errs, util.FieldError{Msg: "Cost must not be negative"})
	}
	if req.TotalBill != nil && *req.TotalBill < 0 {
		errs = append(errs, util.FieldError{Msg: "Total bill must not be negative"})
	}
	if req.PartsUsed != nil {
		for _, part := range *req.PartsUsed {
			if part.PartName == "" || part.Quantity < 1 || part.UnitCost < 0 {
				errs = append(errs, util.FieldError{Msg: "Invalid parts list"})
				break
			}
		}
	}
	if len(errs) > 0 {
		util.WriteValidationErrors(w, errs)
		return
	}

	record, err := h.recordService.UpdateDetails(id, patch)
	if err != nil {
		h.writeRecordError(w, err, "update details")
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"msg":     "Service updated",
		"service": record,
	})
}

func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := serviceIDFromPath(r.URL.Path)
	if id == "" || strings.Contains(id, "/") {
		util.WriteMessage(w, http.StatusNotFound, "Service not found")
		return
	}

	if err := h.recordService.DeleteRecord(id); err != nil {
		h.writeRecordError(w, err, "delete service")
		return
	}

	util.WriteMessage(w, http.StatusOK, "Service removed")
}

func (h *ServiceHandler) writeRecordError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, service.ErrServiceNotFound):
		util.WriteMessage(w, http.StatusNotFound, "Service not found")
	case errors.Is(err, service.ErrInvalidStatus):
		util.WriteMessage(w, http.StatusBadRequest, "Invalid status value")
	default:
		logrus.Errorf("%s failed: %v", op, err)
		util.WriteMessage(w, http.StatusInternalServerError, "Server error")
	}
}

func serviceIDFromPath(path string) string {
	return strings.TrimPrefix(path, "/api/services/")
}

// parseDate accepts RFC 3339 timestamps and bare ISO dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
