package employee

type SalaryStructureRequest struct {
	Basic     int64 `json:"basic" binding:"required,min=0"`
	HouseRent int64 `json:"house_rent" binding:"min=0"`
	Transport int64 `json:"transport" binding:"min=0"`
	Special   int64 `json:"special" binding:"min=0"`
}

type CreateEmployeeRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Gender      string `json:"gender" binding:"omitempty,oneof=male female other"`
	State       string `json:"state"`
	TaxRegime   string `json:"tax_regime" binding:"omitempty,oneof=old new"`
	NationalID  string `json:"national_id"`
	Nationality string `json:"nationality"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	JoinDate    string `json:"join_date" binding:"required"`
	VisaType    string `json:"visa_type"`

	BankShortName  string `json:"bank_short_name"`
	BankAccount    string `json:"bank_account"`
	AgentReference string `json:"agent_reference"`

	PFApplicable        *bool `json:"pf_applicable"`
	ESIApplicable       *bool `json:"esi_applicable"`
	PTaxApplicable      *bool `json:"ptax_applicable"`
	PFExempted          bool  `json:"pf_exempted"`
	InternationalWorker bool  `json:"international_worker"`
	HasDisability       bool  `json:"has_disability"`

	// Minor units (paise).
	Structure SalaryStructureRequest `json:"structure" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Gender      string `json:"gender" binding:"omitempty,oneof=male female other"`
	State       string `json:"state"`
	TaxRegime   string `json:"tax_regime" binding:"omitempty,oneof=old new"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	VisaType    string `json:"visa_type"`

	BankShortName  string `json:"bank_short_name"`
	BankAccount    string `json:"bank_account"`
	AgentReference string `json:"agent_reference"`

	PFApplicable        *bool `json:"pf_applicable"`
	ESIApplicable       *bool `json:"esi_applicable"`
	PTaxApplicable      *bool `json:"ptax_applicable"`
	PFExempted          bool  `json:"pf_exempted"`
	InternationalWorker bool  `json:"international_worker"`
	HasDisability       bool  `json:"has_disability"`
	IsActive            *bool `json:"is_active"`

	Structure SalaryStructureRequest `json:"structure" binding:"required"`
}

type SalaryStructureResponse struct {
	Basic     int64 `json:"basic"`
	HouseRent int64 `json:"house_rent"`
	Transport int64 `json:"transport"`
	Special   int64 `json:"special"`
}

type EmployeeResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	Code        string `json:"code"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Gender      string `json:"gender,omitempty"`
	State       string `json:"state,omitempty"`
	TaxRegime   string `json:"tax_regime,omitempty"`
	Designation string `json:"designation,omitempty"`
	Department  string `json:"department,omitempty"`
	JoinDate    string `json:"join_date,omitempty"`
	VisaType    string `json:"visa_type,omitempty"`

	PFApplicable        bool `json:"pf_applicable"`
	ESIApplicable       bool `json:"esi_applicable"`
	PTaxApplicable      bool `json:"ptax_applicable"`
	PFExempted          bool `json:"pf_exempted"`
	InternationalWorker bool `json:"international_worker"`
	HasDisability       bool `json:"has_disability"`
	IsActive            bool `json:"is_active"`

	Structure SalaryStructureResponse `json:"structure"`
}

type EmployeeOptionResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	FullName string `json:"full_name"`
}
