package company

type CreateCompanyRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"omitempty,email"`
	DefaultState string `json:"default_state" binding:"omitempty,len=2"`
}

type UpsertRegistrationRequest struct {
	Type                string `json:"type" binding:"required,oneof=WPS PF ESI PTAX"`
	Number              string `json:"number" binding:"required"`
	EstablishmentNumber string `json:"establishment_number"`
}

type RegistrationResponse struct {
	Type                string `json:"type"`
	Number              string `json:"number"`
	EstablishmentNumber string `json:"establishment_number,omitempty"`
}

type CompanyResponse struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Email         string                 `json:"email,omitempty"`
	DefaultState  string                 `json:"default_state,omitempty"`
	IsActive      bool                   `json:"is_active"`
	Registrations []RegistrationResponse `json:"registrations,omitempty"`
}
