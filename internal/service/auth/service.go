package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine/internal/fixtures"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db database.Transactor
	employee.EmployeeRepository
	settings.SettingsRepository
	jwt.Service
}

func NewAuthService(db database.Transactor, employeeRepository employee.EmployeeRepository, settingsRepository settings.SettingsRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		db:                 db,
		EmployeeRepository: employeeRepository,
		SettingsRepository: settingsRepository,
		Service:            jwtService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (a *AuthServiceImpl) issueToken(emp employee.Employee) (auth.TokenResponse, error) {
	token, expiresAt, err := a.Service.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		EmployeeID:           emp.ID,
		Role:                 string(emp.Role),
	}, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	if emp.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if !emp.IsActive {
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	return a.issueToken(emp)
}

// HasAdmin implements auth.AuthService.
func (a *AuthServiceImpl) HasAdmin(ctx context.Context) (bool, error) {
	count, err := a.EmployeeRepository.CountByRole(ctx, employee.RoleAdmin)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RegisterAdmin implements auth.AuthService.
func (a *AuthServiceImpl) RegisterAdmin(ctx context.Context, req auth.RegisterAdminRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	hashed, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var admin employee.Employee
	err = a.db.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := a.EmployeeRepository.LockRole(ctx, employee.RoleAdmin); err != nil {
			return err
		}
		count, err := a.EmployeeRepository.CountByRole(ctx, employee.RoleAdmin)
		if err != nil {
			return err
		}
		if count > 0 {
			return auth.ErrAdminAlreadyExists
		}

		admin, err = a.EmployeeRepository.Create(ctx, employee.Employee{
			Email:        strings.TrimSpace(req.Email),
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			Role:         employee.RoleAdmin,
			PasswordHash: &hashed,
			IsActive:     true,
		})
		if err != nil {
			return err
		}

		_, err = a.SettingsRepository.Get(ctx)
		if errors.Is(err, settings.ErrSettingsNotFound) {
			if _, err := a.SettingsRepository.Save(ctx, fixtures.DefaultSettings(req.CompanyName)); err != nil {
				return fmt.Errorf("failed to seed default settings: %w", err)
			}
			slog.Info("Default settings created", "company_name", req.CompanyName)
			return nil
		}
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return a.issueToken(admin)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, accessToken string, expiresAt int64) error {
	if accessToken == "" {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(accessToken, expiresAt)
	return nil
}
