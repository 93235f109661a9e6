package apperrors

import (
	"net/http"
)

// Factories and predefined variables for common domain errors.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and
// friends) into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409 AppError.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the general 409 factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation builds a 400 for operations the current state forbids.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus builds a 400 for invalid status transitions.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// --- Auth & account state ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrUsernameAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Username already in use",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

var ErrUserBanned = New(
	CodeForbidden,
	"auth",
	"Your account has been banned",
	http.StatusForbidden,
)

var ErrUserInactive = New(
	CodeForbidden,
	"auth",
	"Your account is inactive",
	http.StatusForbidden,
)

// ErrEmailNotVerified carries the flag the login UI keys on to offer a
// resend-verification action.
var ErrEmailNotVerified = New(
	CodeForbidden,
	"auth",
	"Please verify your email address",
	http.StatusForbidden,
).WithDetails(map[string]bool{"email_verification_required": true})

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrCannotModifySuperAdmin guards super_admin accounts from lower roles.
var ErrCannotModifySuperAdmin = New(
	CodeForbidden,
	"business_logic",
	"Only a super admin may modify a super admin account",
	http.StatusForbidden,
)

// ErrCannotDeleteSelf rejects self-deletion through the admin endpoint.
var ErrCannotDeleteSelf = New(
	CodeForbidden,
	"business_logic",
	"You cannot delete your own account",
	http.StatusForbidden,
)

// --- Files ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

// --- Content & engagement ---

var ErrProfileNotPublic = New(
	CodeForbidden,
	"profile",
	"This profile is private",
	http.StatusForbidden,
)

var ErrAlreadyFavorited = New(
	CodeAlreadyExists,
	"favorites",
	"Product is already in favorites",
	http.StatusConflict,
)

var ErrAlreadyReviewed = New(
	CodeAlreadyExists,
	"reviews",
	"You have already reviewed this product",
	http.StatusConflict,
)
