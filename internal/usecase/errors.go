package usecase

import "errors"

const (
	CodeLeadNotFound        = "LEAD_NOT_FOUND"
	CodeManagerNotFound     = "MANAGER_NOT_FOUND"
	CodeManagerExists       = "MANAGER_EXISTS"
	CodeLeadPartnerNotFound = "LEAD_PARTNER_NOT_FOUND"
	CodeToggleNotFound      = "TOGGLE_NOT_FOUND"
	CodeRosterUnavailable   = "ROSTER_UNAVAILABLE"
)

// DomainError is a caller mistake, such as a reference to an entity that does not exist.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var target *DomainError
	return errors.As(err, &target)
}

// TechnicalError wraps a failing collaborator (roster directory, broker).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var target *TechnicalError
	return errors.As(err, &target)
}

func notFound(code, what, id string) error {
	return &DomainError{Code: code, Message: what + " not found: " + id}
}
