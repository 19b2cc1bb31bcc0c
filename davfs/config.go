package davfs

import (
	"time"

	"github.com/xxxsen/davfs/client"
)

type config struct {
	url     string
	user    string
	pass    string
	timeout time.Duration
	trans   client.ITransport
}

type Option func(*config)

// WithURL 服务端根uri, 例如 https://dav.example.com/dav
func WithURL(u string) Option {
	return func(c *config) {
		c.url = u
	}
}

func WithAuth(user string, pass string) Option {
	return func(c *config) {
		c.user = user
		c.pass = pass
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// WithTransport 替换默认传输层实现, 设置后WithAuth/WithTimeout不再生效
func WithTransport(trans client.ITransport) Option {
	return func(c *config) {
		c.trans = trans
	}
}

func applyOpts(opts ...Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
