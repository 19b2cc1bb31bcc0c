package httpkit

import (
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
)

const defaultMimeType = "application/octet-stream"

// DetermineMimeType 基于扩展名推断文件类型, 入参可以是uri或者普通路径
func DetermineMimeType(loc string) string {
	p := loc
	if u, err := url.Parse(loc); err == nil && len(u.Path) != 0 {
		p = u.Path
	}
	mimeType := mime.TypeByExtension(path.Ext(p))
	if mimeType == "" {
		return defaultMimeType
	}
	return mimeType
}

// ReadErrorDetail 读取错误响应体的前若干字节用于排查, 读取失败不影响调用方
func ReadErrorDetail(rsp *http.Response) string {
	const limit = 512
	raw, err := io.ReadAll(io.LimitReader(rsp.Body, limit))
	if err != nil {
		return ""
	}
	return string(raw)
}

// DiscardBody 消费并关闭响应体, 保证底层连接可复用
func DiscardBody(rsp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(rsp.Body, 4096))
	_ = rsp.Body.Close()
}
