package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-engine/internal/repository/sqlite/sqlitetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
)

func newTestAuthService(t *testing.T) (*sqlitetest.Store, jwt.Service, auth.AuthService) {
	t.Helper()
	store := sqlitetest.New(t)
	jwtService := jwt.NewJWTService(testSecret, testAccessExp)
	return store, jwtService, NewAuthService(store.Tx, store.Employees, store.Settings, jwtService)
}

func createTestEmployee(t *testing.T, store *sqlitetest.Store, email, password string, active bool) employee.Employee {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hash := string(hashed)

	emp, err := store.Employees.Create(context.Background(), employee.Employee{
		Email:        email,
		FirstName:    "Test",
		Role:         employee.RoleEmployee,
		PasswordHash: &hash,
		IsActive:     active,
	})
	require.NoError(t, err)
	return emp
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	store, jwtService, svc := newTestAuthService(t)
	emp := createTestEmployee(t, store, "login@example.com", "password123", true)
	createTestEmployee(t, store, "inactive@example.com", "password123", false)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, auth.LoginRequest{Email: "login@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, emp.ID, resp.EmployeeID)
		assert.Equal(t, "employee", resp.Role)

		token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
		require.NoError(t, err)
		claim, ok := token.Get("employee_id")
		require.True(t, ok)
		assert.Equal(t, emp.ID, claim)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "login@example.com", Password: "wrong-password"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: "password123"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "inactive@example.com", Password: "password123"})
		assert.ErrorIs(t, err, auth.ErrAccountInactive)
	})

	t.Run("invalid request", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "not-an-email"})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "email")
		assert.Contains(t, verrs.ToMap(), "password")
	})
}

func TestRegisterAdmin(t *testing.T) {
	ctx := context.Background()
	store, _, svc := newTestAuthService(t)

	has, err := svc.HasAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	resp, err := svc.RegisterAdmin(ctx, auth.RegisterAdminRequest{
		Email:       "admin@example.com",
		Password:    "supersecret",
		FirstName:   "Asha",
		CompanyName: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)
	assert.NotEmpty(t, resp.AccessToken)

	has, err = svc.HasAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	cfg, err := store.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme", cfg.CompanyName)
	assert.Equal(t, "11:00 AM", cfg.MaxClockingTime)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "admin@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.RegisterAdmin(ctx, auth.RegisterAdminRequest{
		Email:     "second@example.com",
		Password:  "supersecret",
		FirstName: "Ravi",
	})
	assert.ErrorIs(t, err, auth.ErrAdminAlreadyExists)
}

func TestRegisterAdmin_ConcurrentFirstRun(t *testing.T) {
	ctx := context.Background()
	store, _, svc := newTestAuthService(t)

	const attempts = 5
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RegisterAdmin(ctx, auth.RegisterAdminRequest{
				Email:     fmt.Sprintf("admin%d@example.com", i),
				Password:  "supersecret",
				FirstName: "Admin",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, auth.ErrAdminAlreadyExists)
	}
	assert.Equal(t, 1, succeeded)

	count, err := store.Employees.CountByRole(ctx, employee.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegisterAdmin_KeepsExistingSettings(t *testing.T) {
	ctx := context.Background()
	store, _, svc := newTestAuthService(t)
	store.SaveSettings(t, settings.Settings{MaxClockingTime: "9:30 AM", CompanyName: "Existing"})

	_, err := svc.RegisterAdmin(ctx, auth.RegisterAdminRequest{
		Email:       "admin@example.com",
		Password:    "supersecret",
		FirstName:   "Asha",
		CompanyName: "Ignored",
	})
	require.NoError(t, err)

	cfg, err := store.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Existing", cfg.CompanyName)
	assert.Equal(t, "9:30 AM", cfg.MaxClockingTime)
}

func TestLogout(t *testing.T) {
	_, jwtService, svc := newTestAuthService(t)

	assert.ErrorIs(t, svc.Logout(context.Background(), "", 0), auth.ErrInvalidToken)

	require.NoError(t, svc.Logout(context.Background(), "some.token.value", 4102444800))
	assert.True(t, jwtService.IsTokenRevoked("some.token.value"))
}
