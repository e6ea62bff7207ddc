// Package apperr maps request failures to HTTP responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 表示错误类别，决定响应状态码。
type Kind string

const (
	// KindValidation 输入缺失或过短 (400)
	KindValidation Kind = "validation"
	// KindMalformed 请求体无法解析 (400)
	KindMalformed Kind = "malformed"
	// KindUpstreamRejected 上游认为内容无法处理 (422)
	KindUpstreamRejected Kind = "upstream_rejected"
	// KindInternal 其余所有错误 (500)
	KindInternal Kind = "internal"
)

// MalformedMessage 是请求体解析失败时的固定提示。
const MalformedMessage = "Invalid JSON format"

// Error 带类别与可选建议的结构化错误。
type Error struct {
	Kind       Kind
	Message    string
	Suggestion string
	Cause      error

	// logged 表示调用方已记录过该错误，Writer 不再重复输出。
	logged bool
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus 返回该类错误对应的状态码。
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindMalformed:
		return http.StatusBadRequest
	case KindUpstreamRejected:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Validation 创建 400 输入错误。
func Validation(message, suggestion string) *Error {
	return &Error{Kind: KindValidation, Message: message, Suggestion: suggestion}
}

// Malformed 创建请求体解析错误，消息固定为 MalformedMessage。
func Malformed(cause error) *Error {
	return &Error{Kind: KindMalformed, Message: MalformedMessage, Cause: cause}
}

// UpstreamRejected 创建 422 错误。
func UpstreamRejected(message, suggestion string, cause error) *Error {
	return &Error{Kind: KindUpstreamRejected, Message: message, Suggestion: suggestion, Cause: cause}
}

// Internal 把任意错误包装为 500 错误，消息为原始错误描述。
func Internal(cause error) *Error {
	msg := "internal server error"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Kind: KindInternal, Message: msg, Cause: cause}
}

// Recovered 把 panic 值包装为 500 错误；调用方负责记录日志。
func Recovered(rec any) *Error {
	appErr := Internal(fmt.Errorf("%v", rec))
	appErr.logged = true
	return appErr
}

// From 将任意错误转换为结构化错误，非 *Error 的错误视为内部错误。
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
