package leave

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/events"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	GetAll(ctx context.Context, employeeID *string, skip, limit int) ([]LeaveResponse, error)
	Approve(ctx context.Context, id, adminComment string) (LeaveResponse, error)
	Reject(ctx context.Context, id, adminComment string) (LeaveResponse, error)
	GetBalance(ctx context.Context, employeeID string) (BalanceResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, employees employee.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, employees, nil, logger...)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	employees employee.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		outbox:    outboxRepo,
		logger:    l,
	}
}

// Create validates and persists a new pending request. The balance check only
// gates creation; nothing is deducted until approval, so several pending
// requests may together exceed the remaining balance.
func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, startDate, endDate, err := validateCreateRequest(req)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(tx.Error))
		return LeaveResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qEmployees := s.employees.WithTx(tx)

	empl, err := qEmployees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("create leave employee lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !empl.IsActive {
		return LeaveResponse{}, leaveerrors.ErrInactiveEmployee
	}
	if startDate.Before(empl.JoiningDate) {
		return LeaveResponse{}, leaveerrors.ErrBeforeJoiningDate
	}

	daysRequested := BusinessDays(startDate, endDate)
	if daysRequested <= 0 {
		return LeaveResponse{}, leaveerrors.ErrInvalidDuration
	}
	if float64(daysRequested) > empl.LeaveBalance {
		s.logger.Warn("create leave insufficient balance",
			zap.String("employee_id", req.EmployeeID),
			zap.Int("days_requested", daysRequested),
			zap.Float64("leave_balance", empl.LeaveBalance),
		)
		return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
	}

	overlap, err := qtx.HasOverlapping(ctx, req.EmployeeID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("employee_id", req.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &LeaveRequest{
		ID:            uuid.New(),
		EmployeeID:    employeeUUID,
		StartDate:     startDate,
		EndDate:       endDate,
		LeaveType:     LeaveType(req.LeaveType),
		Status:        StatusPending,
		Reason:        req.Reason,
		DaysRequested: daysRequested,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("days_requested", daysRequested),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, employeeID *string, skip, limit int) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx, employeeID, skip, limit)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

// Approve flips a pending request to approved and deducts its days from the
// owner's balance in the same transaction. The balance is not re-validated
// here: if it shrank since creation the result can go negative. That follows
// the stated workflow rules rather than masking the gap.
func (s *service) Approve(ctx context.Context, id, adminComment string) (LeaveResponse, error) {
	return s.decide(ctx, id, StatusApproved, adminComment)
}

// Reject flips a pending request to rejected. The balance never changes.
func (s *service) Reject(ctx context.Context, id, adminComment string) (LeaveResponse, error) {
	return s.decide(ctx, id, StatusRejected, adminComment)
}

func (s *service) decide(ctx context.Context, id string, target Status, adminComment string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("target_status", string(target)),
	)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(tx.Error))
		return LeaveResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qEmployees := s.employees.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("decide leave lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if !canTransition(l.Status, target) {
		s.logger.Warn("decide leave invalid transition",
			zap.String("leave_id", id),
			zap.String("from_status", string(l.Status)),
			zap.String("to_status", string(target)),
		)
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	l.Status = target
	if adminComment != "" {
		l.AdminComment = &adminComment
	}

	var employeeEmail string
	if target == StatusApproved {
		empl, err := qEmployees.FindByID(ctx, l.EmployeeID.String())
		if err != nil {
			s.logger.Error("decide leave employee lookup failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		employeeEmail = empl.Email

		empl.LeaveBalance -= float64(l.DaysRequested)
		if err := qEmployees.Update(ctx, empl); err != nil {
			s.logger.Error("decide leave balance update failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	} else if l.Employee != nil {
		employeeEmail = l.Employee.Email
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("decide leave persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if s.outbox != nil {
		event := events.LeaveDecidedEvent{
			EventType:     "leave_decided",
			RequestID:     rid,
			LeaveID:       l.ID.String(),
			EmployeeID:    l.EmployeeID.String(),
			EmployeeEmail: employeeEmail,
			Status:        string(target),
			DaysRequested: l.DaysRequested,
			AdminComment:  adminComment,
			OccurredAt:    time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal leave_decided event failed", zap.Error(err))
			return LeaveResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "leave_request",
			AggregateID:   l.ID.String(),
			EventType:     event.EventType,
			Topic:         events.LeaveDecisionTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("decide leave outbox persist failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("decide leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	s.logger.Info("decide leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("status", string(target)),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetBalance(ctx context.Context, employeeID string) (BalanceResponse, error) {
	empl, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return BalanceResponse{}, err
	}

	return BalanceResponse{
		EmployeeID:   empl.ID.String(),
		LeaveBalance: empl.LeaveBalance,
	}, nil
}

func validateCreateRequest(req CreateLeaveRequest) (uuid.UUID, time.Time, time.Time, error) {
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidEmployeeID
	}
	if !LeaveType(req.LeaveType).Valid() {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidLeaveType
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, err
	}
	// strictly after, so a request always spans at least two calendar days
	if !endDate.After(startDate) {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return employeeUUID, startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:            l.ID.String(),
		EmployeeID:    l.EmployeeID.String(),
		StartDate:     l.StartDate.Format("2006-01-02"),
		EndDate:       l.EndDate.Format("2006-01-02"),
		LeaveType:     string(l.LeaveType),
		Status:        string(l.Status),
		Reason:        l.Reason,
		AdminComment:  l.AdminComment,
		DaysRequested: l.DaysRequested,
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
