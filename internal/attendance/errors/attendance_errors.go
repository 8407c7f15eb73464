package attendanceerrors

import (
	"fmt"
	"net/http"

	"go-attendgate/internal/shared/apperror"
)

var (
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeAlreadyClockedIn,
		"You are already clocked in today",
		http.StatusConflict,
	)
	ErrNotClockedIn = apperror.New(
		apperror.CodeNotClockedIn,
		"You are not currently clocked in",
		http.StatusConflict,
	)
	ErrLowConfidence = apperror.New(
		apperror.CodeLowConfidence,
		"Face recognition confidence too low",
		http.StatusUnauthorized,
	)
	ErrMissingCoordinates = apperror.New(
		apperror.CodeInvalidInput,
		"Location coordinates are required",
		http.StatusBadRequest,
	)
	ErrInvalidCoordinates = apperror.New(
		apperror.CodeInvalidInput,
		"Location coordinates are out of range",
		http.StatusBadRequest,
	)
)

// OutOfRange membawa jarak terukur agar caller bisa menampilkannya.
func OutOfRange(distanceMeters, radiusMeters float64) *apperror.AppError {
	return apperror.New(
		apperror.CodeOutOfRange,
		fmt.Sprintf("Location outside allowed range: %.2f m from site (allowed %.0f m)", distanceMeters, radiusMeters),
		http.StatusForbidden,
	)
}
