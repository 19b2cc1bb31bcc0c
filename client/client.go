package client

import (
	"context"
	"io"
	"net/http"
)

// ITransport webdav协议操作的传输层抽象, 连接池/tls/重定向等由实现方负责,
// 调用方负责关闭返回的response
type ITransport interface {
	Propfind(ctx context.Context, uri string, depth int) (*http.Response, error)
	Mkcol(ctx context.Context, uri string) (*http.Response, error)
	Get(ctx context.Context, uri string) (*http.Response, error)
	Put(ctx context.Context, uri string, size int64, r io.Reader) (*http.Response, error)
	Delete(ctx context.Context, uri string) (*http.Response, error)
	Move(ctx context.Context, src string, dst string, overwrite bool) (*http.Response, error)
	Close() error
}

func New(opts ...Option) (ITransport, error) {
	c := applyOpts(opts...)
	return &defaultTransport{c: c, hc: buildHttpClient(c)}, nil
}
