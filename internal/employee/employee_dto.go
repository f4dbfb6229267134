package employee

type CreateEmployeeRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Department  string `json:"department" binding:"required"`
	JoiningDate string `json:"joining_date" binding:"required"`
	Password    string `json:"password"`
	IsAdmin     bool   `json:"is_admin"`
}

// UpdateEmployeeRequest applies only the fields that were supplied.
type UpdateEmployeeRequest struct {
	FullName    *string `json:"full_name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Department  *string `json:"department"`
	JoiningDate *string `json:"joining_date"`
	IsAdmin     *bool   `json:"is_admin"`
	IsActive    *bool   `json:"is_active"`
	Password    *string `json:"password"`
}

type AdjustBalanceRequest struct {
	LeaveBalance *float64 `json:"leave_balance" binding:"required"`
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Department   string  `json:"department"`
	JoiningDate  string  `json:"joining_date"`
	LeaveBalance float64 `json:"leave_balance"`
	IsActive     bool    `json:"is_active"`
	IsAdmin      bool    `json:"is_admin"`
}

// EmployeeOption is the reduced shape served to pickers and cached in redis.
type EmployeeOption struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
