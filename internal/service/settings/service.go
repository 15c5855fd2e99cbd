package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
)

type SettingsServiceImpl struct {
	settings.SettingsRepository
	leave.LeaveTypeRepository
}

func NewSettingsService(settingsRepo settings.SettingsRepository, leaveTypeRepo leave.LeaveTypeRepository) settings.SettingsService {
	return &SettingsServiceImpl{
		SettingsRepository:  settingsRepo,
		LeaveTypeRepository: leaveTypeRepo,
	}
}

// GetSettings implements settings.SettingsService.
func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (settings.SettingsResponse, error) {
	current, err := s.SettingsRepository.Get(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return settings.NewSettingsResponse(current), nil
}

// UpdateSettings implements settings.SettingsService.
func (s *SettingsServiceImpl) UpdateSettings(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}
	if req.LatePolicyLeaveTypeID != nil {
		if err := s.checkLeaveType(ctx, *req.LatePolicyLeaveTypeID); err != nil {
			return settings.SettingsResponse{}, err
		}
	}

	current, err := s.SettingsRepository.Get(ctx)
	if err != nil && !errors.Is(err, settings.ErrSettingsNotFound) {
		return settings.SettingsResponse{}, fmt.Errorf("failed to load settings: %w", err)
	}

	current.MaxClockingTime = req.MaxClockingTime
	current.AutoClockOutTime = req.AutoClockOutTime
	current.MaxLateDays = req.MaxLateDays
	current.LatePolicyDeductionPerDay = req.LatePolicyDeductionPerDay
	current.LatePolicyLeaveTypeID = req.LatePolicyLeaveTypeID
	current.CompanyName = req.CompanyName
	current.CompanyAddress = req.CompanyAddress

	saved, err := s.SettingsRepository.Save(ctx, current)
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings.NewSettingsResponse(saved), nil
}

// checkLeaveType rejects deduction targets the late policy could never resolve.
func (s *SettingsServiceImpl) checkLeaveType(ctx context.Context, id string) error {
	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveTypeNotFound) {
			return validator.ValidationErrors{{
				Field:   "late_policy_leave_type_id",
				Message: "late_policy_leave_type_id does not exist",
			}}
		}
		return fmt.Errorf("failed to load leave type: %w", err)
	}
	if !leaveType.IsActive {
		return validator.ValidationErrors{{
			Field:   "late_policy_leave_type_id",
			Message: "late_policy_leave_type_id refers to an inactive leave type",
		}}
	}
	return nil
}
