package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"

	"github.com/sirupsen/logrus"

	"autoshop/internal/api/util"
	"autoshop/internal/core/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []util.FieldError
	if req.Name == "" {
		errs = append(errs, util.FieldError{Msg: "Name is required"})
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		errs = append(errs, util.FieldError{Msg: "Please include a valid email"})
	}
	if len(req.Password) < 6 {
		errs = append(errs, util.FieldError{Msg: "Please enter a password with 6 or more characters"})
	}
	if len(errs) > 0 {
		util.WriteValidationErrors(w, errs)
		return
	}

	_, token, err := h.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			util.WriteMessage(w, http.StatusBadRequest, "User already exists")
			return
		}
		logrus.Errorf("register failed: %v", err)
		util.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]string{
		"msg":   "User registered successfully",
		"token": token,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []util.FieldError
	if req.Email == "" {
		errs = append(errs, util.FieldError{Msg: "Please include a valid email"})
	}
	if req.Password == "" {
		errs = append(errs, util.FieldError{Msg: "Password is required"})
	}
	if len(errs) > 0 {
		util.WriteValidationErrors(w, errs)
		return
	}

	_, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Same message for unknown email and wrong password.
			util.WriteMessage(w, http.StatusBadRequest, "Invalid Credentials")
			return
		}
		logrus.Errorf("login failed: %v", err)
		util.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]string{
		"msg":   "Login successful",
		"token": token,
	})
}
