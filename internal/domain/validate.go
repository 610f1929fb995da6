package domain

import "strings"

// Validate checks the structural requirements of a create request.
// The tax id is validated separately so it can report InvalidTaxID.
func (r *CreateRequest) Validate() *Error {
	if strings.TrimSpace(r.FullName) == "" {
		return InvalidPayload("fullName is required")
	}
	if r.BirthDate == nil || r.BirthDate.IsZero() {
		return InvalidPayload("birthDate is required")
	}
	return nil
}

func (r *UpdateRequest) Validate() *Error {
	if strings.TrimSpace(r.FullName) == "" {
		return InvalidPayload("fullName is required")
	}
	if r.BirthDate == nil || r.BirthDate.IsZero() {
		return InvalidPayload("birthDate is required")
	}
	return nil
}
