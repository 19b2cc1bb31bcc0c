package fserr

import (
	"context"
	"errors"
	"fmt"
	"net"
)

type Kind int

const (
	KindNotConnected Kind = iota + 1
	KindNotFound
	KindNotADirectory
	KindAlreadyExists
	KindParentNotFound
	KindPermissionDenied
	KindLocked
	KindConflict
	KindOutOfSpace
	KindInvalidPath
	KindProtocolError
	KindTimeout
	KindUnsupported
)

var kindNameMapping = map[Kind]string{
	KindNotConnected:     "not_connected",
	KindNotFound:         "not_found",
	KindNotADirectory:    "not_a_directory",
	KindAlreadyExists:    "already_exists",
	KindParentNotFound:   "parent_not_found",
	KindPermissionDenied: "permission_denied",
	KindLocked:           "locked",
	KindConflict:         "conflict",
	KindOutOfSpace:       "out_of_space",
	KindInvalidPath:      "invalid_path",
	KindProtocolError:    "protocol_error",
	KindTimeout:          "timeout",
	KindUnsupported:      "unsupported",
}

func (k Kind) String() string {
	if name, ok := kindNameMapping[k]; ok {
		return name
	}
	return fmt.Sprintf("kind_%d", int(k))
}

// Error 文件系统错误, 携带原始的http状态码用于排查问题
type Error struct {
	kind   Kind
	status int
	msg    string
	cause  error
}

func (e *Error) Kind() Kind {
	return e.kind
}

// Status 触发这个错误的原始http状态码, 0表示非协议错误
func (e *Error) Status() int {
	return e.status
}

func (e *Error) Error() string {
	str := e.kind.String()
	if len(e.msg) != 0 {
		str += ", " + e.msg
	}
	if e.status != 0 {
		str += fmt.Sprintf(", status:%d", e.status)
	}
	if e.cause != nil {
		str += fmt.Sprintf(", cause:%v", e.cause)
	}
	return str
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is 支持errors.Is按kind进行匹配
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.kind == e.kind
}

func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{kind: kind, msg: msg, cause: cause}
}

func NewStatus(kind Kind, status int, msg string) *Error {
	return &Error{kind: kind, status: status, msg: msg}
}

// KindOf 提取错误对应的kind, 非本包错误统一归类为protocol error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindProtocolError
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.kind == kind
	}
	return false
}

// MapTransportError 将传输层错误翻译为文件系统错误, 超时类错误单独归类,
// 其余一律视为协议错误
func MapTransportError(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Wrap(KindTimeout, "transport timeout", err)
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return Wrap(KindTimeout, "transport timeout", err)
	}
	return Wrap(KindProtocolError, "transport failed", err)
}
