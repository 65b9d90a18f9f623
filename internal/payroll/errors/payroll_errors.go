package payrollerrors

import (
	"net/http"

	"github.com/chetanpayroll/India-Payroll-sub000/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidRunID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll run id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll run not found",
		http.StatusNotFound,
	)
	ErrRunAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a payroll run already exists for this period",
		http.StatusConflict,
	)
	ErrNoEmployees = apperror.New(
		apperror.CodeInvalidState,
		"company has no active employees to process",
		http.StatusBadRequest,
	)
	ErrFinalizeOnlyDraft = apperror.New(
		apperror.CodeInvalidState,
		"payroll run can only be finalized while status is DRAFT",
		http.StatusBadRequest,
	)
	ErrDeleteOnlyDraft = apperror.New(
		apperror.CodeInvalidState,
		"payroll run can only be deleted while status is DRAFT",
		http.StatusBadRequest,
	)
	ErrRunNotFinalized = apperror.New(
		apperror.CodeInvalidState,
		"payroll run must be finalized before export",
		http.StatusConflict,
	)
)

// WrapCalculation tags a batch calculation failure so the caller sees
// which employee and calculator aborted the run.
func WrapCalculation(err error) *apperror.AppError {
	return apperror.Wrap(
		err,
		apperror.CodeInvalidState,
		"payroll calculation aborted",
		http.StatusUnprocessableEntity,
	)
}
