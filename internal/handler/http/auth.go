package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	HasAdmin(w http.ResponseWriter, r *http.Request)
	RegisterAdmin(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Warn("Login failed", "email", loginReq.Email, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Login successful", tokenResponse)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	token, _, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	if err := a.authService.Logout(r.Context(), jwtauth.TokenFromHeader(r), token.Expiration().Unix()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// HasAdmin implements AuthHandler.
func (a *AuthHandlerImpl) HasAdmin(w http.ResponseWriter, r *http.Request) {
	hasAdmin, err := a.authService.HasAdmin(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, auth.HasAdminResponse{HasAdmin: hasAdmin})
}

// RegisterAdmin implements AuthHandler.
func (a *AuthHandlerImpl) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterAdminRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RegisterAdmin decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := a.authService.RegisterAdmin(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Admin registered", "employee_id", tokenResponse.EmployeeID)
	response.Created(w, "Admin account created", tokenResponse)
}
