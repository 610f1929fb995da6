package response

import (
	"errors"

	"person-registry/internal/domain"
)

type Resp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Type string `json:"type,omitempty"`
	Data any    `json:"data"`
}

// New keeps data from rendering as null.
func New(code int, msg string, data any) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data any) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error builds a failure envelope; an empty customMsg falls back to the code's text.
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// FromError renders err as (status, envelope). Non-domain errors are
// reported as UNEXPECTED_ERROR without leaking their text.
func FromError(err error) (int, Resp) {
	var de *domain.Error
	if !errors.As(err, &de) {
		de = domain.Unexpected(err)
	}
	status := StatusOf(de.Kind)
	r := Error(status, de.Msg)
	r.Type = string(de.Kind)
	return status, r
}
