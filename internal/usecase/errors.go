package usecase

import "fmt"

// ValidationError names the failing field so intake responses can report it.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CRMForwardError reports a failed CRM forward. The lead row already exists
// in error state, so the id travels with the error.
type CRMForwardError struct {
	LeadID  string
	Message string
}

func (e *CRMForwardError) Error() string {
	return e.Message
}
