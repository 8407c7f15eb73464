package deviceerrors

import (
	"net/http"

	"go-attendgate/internal/shared/apperror"
)

var (
	ErrDeviceBlocked = apperror.New(
		apperror.CodeDeviceBlocked,
		"This device is blacklisted",
		http.StatusForbidden,
	)
	ErrDeviceAlreadyUsedToday = apperror.New(
		apperror.CodeDeviceAlreadyUsed,
		"This device has already been used by another employee today",
		http.StatusConflict,
	)
	ErrDeviceMismatch = apperror.New(
		apperror.CodeDeviceMismatch,
		"Clock out must be done from the same device used for clock in",
		http.StatusConflict,
	)
	ErrMissingFingerprint = apperror.New(
		apperror.CodeInvalidInput,
		"Device fingerprint is required",
		http.StatusBadRequest,
	)
)
