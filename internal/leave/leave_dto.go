package leave

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	LeaveType  string `json:"leave_type" binding:"required,oneof=SICK VACATION PERSONAL MATERNITY PATERNITY EMERGENCY"`
	Reason     string `json:"reason"`
}

type DecideLeaveRequest struct {
	AdminComment string `json:"admin_comment"`
}

type LeaveResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	LeaveType     string  `json:"leave_type"`
	Status        string  `json:"status"`
	Reason        string  `json:"reason,omitempty"`
	AdminComment  *string `json:"admin_comment,omitempty"`
	DaysRequested int     `json:"days_requested"`
}

type BalanceResponse struct {
	EmployeeID   string  `json:"employee_id"`
	LeaveBalance float64 `json:"leave_balance"`
}
