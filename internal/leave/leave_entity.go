package leave

import (
	"time"

	"go-leave/internal/employee"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// canTransition is the whole state machine: pending is the only non-terminal
// status.
func canTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusApproved, StatusRejected:
		return false
	default:
		return false
	}
}

type LeaveType string

const (
	TypeSick      LeaveType = "SICK"
	TypeVacation  LeaveType = "VACATION"
	TypePersonal  LeaveType = "PERSONAL"
	TypeMaternity LeaveType = "MATERNITY"
	TypePaternity LeaveType = "PATERNITY"
	TypeEmergency LeaveType = "EMERGENCY"
)

func (t LeaveType) Valid() bool {
	switch t {
	case TypeSick, TypeVacation, TypePersonal, TypeMaternity, TypePaternity, TypeEmergency:
		return true
	default:
		return false
	}
}

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`

	// read-side convenience only; the request does not own the employee
	Employee *employee.Employee `gorm:"foreignKey:EmployeeID"`

	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`

	LeaveType LeaveType `gorm:"type:varchar(20);not null;default:'VACATION'"`
	Status    Status    `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`

	Reason       string  `gorm:"type:text"`
	AdminComment *string `gorm:"type:text"`

	// computed from business days at creation, immutable afterwards
	DaysRequested int `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
