package fserr

import "net/http"

// Op 状态码翻译时的操作上下文, 部分状态码的语义依赖于具体的操作,
// 例如405在MKCOL下表示目标已存在
type Op int

const (
	OpPropfind Op = iota + 1
	OpMkcol
	OpGet
	OpPut
	OpDelete
	OpMove
)

var opNameMapping = map[Op]string{
	OpPropfind: "PROPFIND",
	OpMkcol:    "MKCOL",
	OpGet:      "GET",
	OpPut:      "PUT",
	OpDelete:   "DELETE",
	OpMove:     "MOVE",
}

func (o Op) String() string {
	if name, ok := opNameMapping[o]; ok {
		return name
	}
	return "UNKNOWN"
}

// MapStatus 将http状态码翻译为文件系统错误, 2xx返回nil
func MapStatus(status int, op Op) error {
	if status >= 200 && status < 300 {
		return nil
	}
	kind := KindProtocolError
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = KindPermissionDenied
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusMethodNotAllowed:
		if op == OpMkcol {
			//已有同名资源时服务端拒绝MKCOL
			kind = KindAlreadyExists
		}
	case http.StatusConflict:
		kind = KindParentNotFound
	case http.StatusPreconditionFailed:
		if op == OpMove {
			//overwrite禁止的前提下, 目标已存在
			kind = KindAlreadyExists
		} else {
			kind = KindConflict
		}
	case http.StatusLocked:
		kind = KindLocked
	case http.StatusInsufficientStorage:
		kind = KindOutOfSpace
	}
	return NewStatus(kind, status, "op:"+op.String())
}
