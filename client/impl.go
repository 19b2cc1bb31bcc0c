package client

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xxxsen/davfs/httpkit"
)

const (
	methodPropfind = "PROPFIND"
	methodMkcol    = "MKCOL"
	methodMove     = "MOVE"
)

// allprop请求体, 让服务端返回全部常规属性
const propfindAllPropBody = `<?xml version="1.0" encoding="utf-8"?><D:propfind xmlns:D="DAV:"><D:allprop/></D:propfind>`

func newHttpTransport() *http.Transport {
	return &http.Transport{
		IdleConnTimeout:     20 * time.Second,
		MaxIdleConns:        5,
		MaxIdleConnsPerHost: 2,
	}
}

var defaultHttpClient = &http.Client{
	Transport: newHttpTransport(),
}

type defaultTransport struct {
	c  *config
	hc *http.Client
}

func buildHttpClient(c *config) *http.Client {
	if c.client != nil {
		return c.client
	}
	if c.timeout > 0 {
		// 独立的连接池, Close时不影响其他实例的空闲连接
		return &http.Client{
			Transport: newHttpTransport(),
			Timeout:   c.timeout,
		}
	}
	return defaultHttpClient
}

func (d *defaultTransport) applyAuth(req *http.Request) {
	if len(d.c.user) == 0 {
		return
	}
	req.SetBasicAuth(d.c.user, d.c.pass)
}

func (d *defaultTransport) call(ctx context.Context, method string, uri string, body io.Reader, hdr map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return nil, err
	}
	d.applyAuth(req)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	return d.hc.Do(req)
}

func (d *defaultTransport) Propfind(ctx context.Context, uri string, depth int) (*http.Response, error) {
	return d.call(ctx, methodPropfind, uri, strings.NewReader(propfindAllPropBody), map[string]string{
		"Depth":        strconv.Itoa(depth),
		"Content-Type": "application/xml; charset=utf-8",
	})
}

func (d *defaultTransport) Mkcol(ctx context.Context, uri string) (*http.Response, error) {
	return d.call(ctx, methodMkcol, uri, nil, nil)
}

func (d *defaultTransport) Get(ctx context.Context, uri string) (*http.Response, error) {
	return d.call(ctx, http.MethodGet, uri, nil, nil)
}

// Put 流式上传, body直接透传给底层连接, size>=0时携带Content-Length,
// 否则走chunked编码
func (d *defaultTransport) Put(ctx context.Context, uri string, size int64, r io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uri, r)
	if err != nil {
		return nil, err
	}
	d.applyAuth(req)
	if size >= 0 {
		req.ContentLength = size
	}
	req.Header.Set("Content-Type", httpkit.DetermineMimeType(uri))
	return d.hc.Do(req)
}

func (d *defaultTransport) Delete(ctx context.Context, uri string) (*http.Response, error) {
	return d.call(ctx, http.MethodDelete, uri, nil, nil)
}

func (d *defaultTransport) Move(ctx context.Context, src string, dst string, overwrite bool) (*http.Response, error) {
	ow := "F"
	if overwrite {
		ow = "T"
	}
	return d.call(ctx, methodMove, src, nil, map[string]string{
		"Destination": dst,
		"Overwrite":   ow,
	})
}

func (d *defaultTransport) Close() error {
	d.hc.CloseIdleConnections()
	return nil
}
