package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/email"
	attendanceservice "github.com/cmlabs-hris/attendance-engine/internal/service/attendance"
)

type LeaveServiceImpl struct {
	db database.Transactor
	attendance.AttendanceRepository
	employee.EmployeeRepository
	settings.SettingsRepository
	leave.LeaveTypeRepository
	requestService *RequestService
	emailService   email.EmailService

	loc *time.Location
	now func() time.Time
}

func NewLeaveService(
	db database.Transactor,
	leaveRequestRepo leave.LeaveRequestRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo settings.SettingsRepository,
	leaveTypeRepo leave.LeaveTypeRepository,
	emailService email.EmailService,
	loc *time.Location,
	now func() time.Time,
) leave.LeaveService {
	if now == nil {
		now = time.Now
	}
	return &LeaveServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		SettingsRepository:   settingsRepo,
		LeaveTypeRepository:  leaveTypeRepo,
		emailService:         emailService,
		requestService:       NewRequestService(leaveRequestRepo, now),
		loc:                  loc,
		now:                  now,
	}
}

// ReviewLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) ReviewLeaveRequest(ctx context.Context, req leave.ReviewLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var request leave.LeaveRequest
	reclassified := 0
	err := l.db.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if req.Status == leave.LeaveRequestStatusRejected {
			request, err = l.requestService.Reject(ctx, req.ID, req.ReviewerID)
			return err
		}

		request, err = l.requestService.Approve(ctx, req.ID, req.ReviewerID)
		if err != nil {
			return err
		}
		reclassified, err = l.reclassifyRange(ctx, request)
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	l.notifyReviewed(ctx, request)

	resp := leave.NewLeaveRequestResponse(request)
	resp.ReclassifiedDays = reclassified
	return resp, nil
}

// reclassifyRange re-derives the status of attendance rows already stored
// inside an approved request. Days without a row are left to the daily job.
func (l *LeaveServiceImpl) reclassifyRange(ctx context.Context, request leave.LeaveRequest) (int, error) {
	emp, err := l.EmployeeRepository.GetByID(ctx, request.EmployeeID)
	if err != nil {
		return 0, err
	}

	cfg, err := l.SettingsRepository.Get(ctx)
	if err != nil && !errors.Is(err, settings.ErrSettingsNotFound) {
		return 0, fmt.Errorf("failed to load settings: %w", err)
	}

	records, err := l.AttendanceRepository.ListByEmployeeAndRange(ctx, emp.ID, request.StartDate, request.EndDate)
	if err != nil {
		return 0, fmt.Errorf("failed to list attendance: %w", err)
	}

	now := l.now()
	count := 0
	for i := range records {
		record := records[i]
		c := attendanceservice.Classify(attendanceservice.DayInput{
			Employee: emp,
			Date:     record.Date,
			Record:   &record,
			Leaves:   []leave.LeaveRequest{request},
			Settings: cfg,
			Now:      now,
			Location: l.loc,
		})
		if c.Open || c.Status == record.Status {
			continue
		}

		record.Status = c.Status
		if err := l.AttendanceRepository.Update(ctx, record); err != nil {
			return count, fmt.Errorf("failed to reclassify attendance %s: %w", record.ID, err)
		}
		count++
	}
	return count, nil
}

// notifyReviewed mails the employee the outcome of a committed review.
// Mail problems are logged and never undo the review.
func (l *LeaveServiceImpl) notifyReviewed(ctx context.Context, request leave.LeaveRequest) {
	if l.emailService == nil {
		return
	}

	emp, err := l.EmployeeRepository.GetByID(ctx, request.EmployeeID)
	if err != nil {
		slog.Warn("Leave status email skipped", "leave_request_id", request.ID, "error", err)
		return
	}

	leaveTypeName := request.LeaveTypeID
	if leaveType, err := l.LeaveTypeRepository.GetByID(ctx, request.LeaveTypeID); err == nil {
		leaveTypeName = leaveType.Name
	} else {
		slog.Warn("Leave type lookup failed for status email", "leave_type_id", request.LeaveTypeID, "error", err)
	}

	err = l.emailService.SendLeaveStatusUpdate(
		emp.Email,
		emp.FullName(),
		leaveTypeName,
		request.StartDate.Format("2006-01-02"),
		request.EndDate.Format("2006-01-02"),
		string(request.Status),
	)
	if err != nil {
		slog.Error("Failed to send leave status email",
			"leave_request_id", request.ID,
			"employee_id", emp.ID,
			"status", request.Status,
			"error", err,
		)
	}
}
