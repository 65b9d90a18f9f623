package payroll

type RunPayrollRequest struct {
	Period string `json:"period" binding:"required"` // YYYY-MM
}

type RunItemResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`

	Basic     int64 `json:"basic"`
	HouseRent int64 `json:"house_rent"`
	Transport int64 `json:"transport"`
	Special   int64 `json:"special"`
	Overtime  int64 `json:"overtime"`
	Gross     int64 `json:"gross"`

	PFEmployee      int64 `json:"pf_employee"`
	ESIEmployee     int64 `json:"esi_employee"`
	ProfessionalTax int64 `json:"professional_tax"`
	TDS             int64 `json:"tds"`
	TotalDeductions int64 `json:"total_deductions"`

	PFEmployer  int64 `json:"pf_employer"`
	ESIEmployer int64 `json:"esi_employer"`

	NetPay int64 `json:"net_pay"`

	AttendanceDefaulted bool `json:"attendance_defaulted,omitempty"`
}

type RunResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Period    string `json:"period"`
	RunNumber int64  `json:"run_number"`
	Status    string `json:"status"`

	EmployeeCount     int   `json:"employee_count"`
	TotalGross        int64 `json:"total_gross"`
	TotalDeductions   int64 `json:"total_deductions"`
	TotalNet          int64 `json:"total_net"`
	TotalEmployerCost int64 `json:"total_employer_cost"`

	FinalizedAt *string `json:"finalized_at,omitempty"`

	Items []RunItemResponse `json:"items,omitempty"`
}

// SIFExport is a rendered salary file ready to stream to the caller.
type SIFExport struct {
	FileName string `json:"file_name"`
	Content  string `json:"-"`
}

type SummaryExport struct {
	FileName string `json:"file_name"`
	Content  string `json:"-"`
}
