package client

import (
	"net/http"
	"time"
)

type config struct {
	user    string
	pass    string
	timeout time.Duration
	client  *http.Client
}

type Option func(*config)

// WithAuth 设置basic认证凭据
func WithAuth(user string, pass string) Option {
	return func(c *config) {
		c.user = user
		c.pass = pass
	}
}

// WithTimeout 单次请求的整体超时, 0表示不限制, 包含流式读取的时间,
// 大文件传输场景下建议通过context控制而不是设置这个值
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// WithClient 替换底层http客户端
func WithClient(hc *http.Client) Option {
	return func(c *config) {
		c.client = hc
	}
}

func applyOpts(opts ...Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
