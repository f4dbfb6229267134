package employee

import (
	"time"

	"github.com/google/uuid"
)

// DefaultLeaveBalance is granted to every new employee.
const DefaultLeaveBalance = 8.0

type Employee struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName    string    `gorm:"type:varchar(100);not null"`
	Email       string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_employees_email"`
	Department  string    `gorm:"type:varchar(100);not null"`
	JoiningDate time.Time `gorm:"type:date;not null"`

	LeaveBalance float64 `gorm:"type:numeric(6,2);not null;default:8.0"`

	// Deactivation is the only removal; rows stay referenceable from
	// historical leave requests.
	IsActive bool `gorm:"not null;default:true"`
	IsAdmin  bool `gorm:"not null;default:false"`

	HashedPassword string `gorm:"type:varchar(100)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string {
	return "employees"
}
