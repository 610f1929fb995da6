package response

import (
	"net/http"

	"person-registry/internal/domain"
)

// Codes mirror HTTP statuses; the envelope code equals the response status.
const (
	CodeOK              = 0
	CodeBadRequest      = http.StatusBadRequest
	CodeNotFound        = http.StatusNotFound
	CodeConflict        = http.StatusConflict
	CodeTooManyRequests = http.StatusTooManyRequests
	CodeServerError     = http.StatusInternalServerError
	CodeUnavailable     = http.StatusServiceUnavailable
	CodeTimeout         = http.StatusGatewayTimeout
)

var CodeMsgMap = map[int]string{
	CodeOK:              "OK",
	CodeBadRequest:      "Bad Request",
	CodeNotFound:        "Not Found",
	CodeConflict:        "Conflict",
	CodeTooManyRequests: "Too Many Requests",
	CodeServerError:     "Internal Server Error",
	CodeUnavailable:     "Service Unavailable",
	CodeTimeout:         "Gateway Timeout",
}

var kindCodes = map[domain.Kind]int{
	domain.KindInvalidTaxID:   CodeBadRequest,
	domain.KindInvalidPayload: CodeBadRequest,
	domain.KindNullPayload:    CodeBadRequest,
	domain.KindDuplicateTaxID: CodeConflict,
	domain.KindNotFound:       CodeNotFound,
	domain.KindUnexpected:     CodeServerError,
}

// StatusOf maps a domain kind to its HTTP status. Unknown kinds are 500.
func StatusOf(k domain.Kind) int {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return CodeServerError
}
