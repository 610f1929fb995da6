package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateTaxID is returned by stores when a write violates the
// active tax id unique constraint. The service translates it to KindDuplicateTaxID.
var ErrDuplicateTaxID = errors.New("tax id already held by an active record")

// ErrStaleRecord is returned by stores when an update targets a row that is
// missing or already deleted. Deletion is terminal, so such writes are refused.
var ErrStaleRecord = errors.New("person is missing or deleted")

// Kind is the closed set of failures the service reports to its callers.
type Kind string

const (
	KindInvalidTaxID   Kind = "INVALID_TAX_ID"
	KindInvalidPayload Kind = "INVALID_PAYLOAD"
	KindNullPayload    Kind = "NULL_PAYLOAD"
	KindDuplicateTaxID Kind = "DUPLICATED_TAX_ID"
	KindNotFound       Kind = "PERSON_NOT_FOUND"
	KindUnexpected     Kind = "UNEXPECTED_ERROR"
)

// Kinds lists every Kind; boundary mappings are tested against it.
var Kinds = []Kind{
	KindInvalidTaxID,
	KindInvalidPayload,
	KindNullPayload,
	KindDuplicateTaxID,
	KindNotFound,
	KindUnexpected,
}

// Term is one search term echoed back in a NotFound message.
type Term struct {
	Name  string
	Value any
}

// T builds a Term. A nil pointer value is treated as an absent term.
func T(name string, value any) Term { return Term{Name: name, Value: value} }

// Error is the only error type the service returns.
type Error struct {
	Kind  Kind
	Msg   string
	Terms []Term
	Err   error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or KindUnexpected for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// IsKind reports whether err is a domain error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func InvalidTaxID(taxID string) *Error {
	return &Error{Kind: KindInvalidTaxID, Msg: "The given tax id is invalid: " + taxID}
}

func InvalidPayload(detail any) *Error {
	return &Error{Kind: KindInvalidPayload, Msg: fmt.Sprintf("Invalid payload: %v", detail)}
}

func NullPayload() *Error {
	return &Error{Kind: KindNullPayload, Msg: "The person payload can't be null"}
}

func DuplicateTaxID(taxID string) *Error {
	return &Error{Kind: KindDuplicateTaxID, Msg: "The tax id " + taxID + " is already registered"}
}

func NotFound(terms ...Term) *Error {
	present := make([]Term, 0, len(terms))
	for _, t := range terms {
		if isNil(t.Value) {
			continue
		}
		present = append(present, t)
	}
	msg := "No persons found using the search terms provided"
	if len(present) > 0 {
		parts := make([]string, 0, len(present))
		for _, t := range present {
			parts = append(parts, fmt.Sprintf("%s: %v", t.Name, deref(t.Value)))
		}
		msg += " - " + strings.Join(parts, ", ")
	}
	return &Error{Kind: KindNotFound, Msg: msg, Terms: present}
}

// Unexpected hides err from the client message; Unwrap still exposes it for logs.
func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Msg: "Unexpected Error", Err: err}
}

func isNil(v any) bool {
	switch p := v.(type) {
	case nil:
		return true
	case *string:
		return p == nil
	case *int:
		return p == nil
	case *Date:
		return p == nil
	case *SortField:
		return p == nil
	case *Direction:
		return p == nil
	}
	return false
}

func deref(v any) any {
	switch p := v.(type) {
	case *string:
		return *p
	case *int:
		return *p
	case *Date:
		return *p
	case *SortField:
		return *p
	case *Direction:
		return *p
	}
	return v
}
