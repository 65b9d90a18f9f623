package companyerrors

import (
	"net/http"

	"github.com/chetanpayroll/India-Payroll-sub000/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)
	ErrInvalidRegistrationType = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown registration type",
		http.StatusBadRequest,
	)
	ErrMissingWPSRegistration = apperror.New(
		apperror.CodeInvalidState,
		"Company has no wage-protection registration on file",
		http.StatusConflict,
	)
)
