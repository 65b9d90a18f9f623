package attendance

type RecordAttendanceRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	Period        string `json:"period" binding:"required"` // YYYY-MM
	DaysWorked    int    `json:"days_worked" binding:"min=0"`
	LossOfPayDays int    `json:"loss_of_pay_days" binding:"min=0"`

	OvertimeRegularHours float64 `json:"overtime_regular_hours" binding:"min=0"`
	OvertimeWeekendHours float64 `json:"overtime_weekend_hours" binding:"min=0"`
	OvertimeHolidayHours float64 `json:"overtime_holiday_hours" binding:"min=0"`
}

type AttendanceResponse struct {
	ID            string `json:"id"`
	CompanyID     string `json:"company_id"`
	EmployeeID    string `json:"employee_id"`
	Period        string `json:"period"`
	DaysWorked    int    `json:"days_worked"`
	LossOfPayDays int    `json:"loss_of_pay_days"`

	OvertimeRegularHours float64 `json:"overtime_regular_hours"`
	OvertimeWeekendHours float64 `json:"overtime_weekend_hours"`
	OvertimeHolidayHours float64 `json:"overtime_holiday_hours"`
}
