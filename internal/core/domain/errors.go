package domain

import "errors"

// Submission failures.
var (
	ErrSessionInvalid         = errors.New("session invalid")
	ErrImageCompressionFailed = errors.New("image compression failed")
	ErrStorageUploadFailed    = errors.New("storage upload failed")
	ErrDatabaseWriteFailed    = errors.New("database write failed")
)

// Onboarding failures, all resolved client-side before any remote call.
var (
	ErrRequiredFieldsMissing = errors.New("required fields missing")
	ErrStepOutOfOrder        = errors.New("onboarding step out of order")
	ErrRoleNotSelected       = errors.New("role not selected")
	ErrOnboardingNotFound    = errors.New("onboarding not found")
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrObjectNotFound     = errors.New("object not found")
	ErrObjectExists       = errors.New("object already exists")
	ErrProfileNotFound    = errors.New("profile not found")
)

// FieldsError reports which fields of an onboarding screen failed validation.
// It unwraps to ErrRequiredFieldsMissing.
type FieldsError struct {
	Fields []string
}

func (e *FieldsError) Error() string {
	if len(e.Fields) == 0 {
		return ErrRequiredFieldsMissing.Error()
	}
	msg := ErrRequiredFieldsMissing.Error() + ": "
	for i, f := range e.Fields {
		if i > 0 {
			msg += ", "
		}
		msg += f
	}
	return msg
}

func (e *FieldsError) Unwrap() error { return ErrRequiredFieldsMissing }
