package pathkit

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/xxxsen/davfs/fserr"
)

// Resolver 负责将调用方传入的逻辑路径翻译为发往服务端的请求uri,
// 除读取当前工作目录外无任何状态
type Resolver struct {
	base *url.URL
}

func NewResolver(base string) (*Resolver, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url failed, err:%w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme:%s", u.Scheme)
	}
	if len(u.Host) == 0 {
		return nil, fmt.Errorf("no host in base url:%s", base)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return &Resolver{base: u}, nil
}

// Base 服务端根uri, 不带结尾分隔符
func (r *Resolver) Base() string {
	return r.base.Scheme + "://" + r.base.Host + r.base.EscapedPath()
}

// Abs 归一化逻辑路径: 相对路径基于workdir展开, 折叠`.`与`..`,
// 合并多余分隔符, `..`越过根目录直接报错而非静默截断
func (r *Resolver) Abs(workdir string, p string) (string, error) {
	if len(p) == 0 {
		p = "."
	}
	if !strings.HasPrefix(p, "/") {
		if !strings.HasPrefix(workdir, "/") {
			return "", fserr.Newf(fserr.KindInvalidPath, "workdir not absolute:%s", workdir)
		}
		p = workdir + "/" + p
	}
	parts := strings.Split(p, "/")
	segs := make([]string, 0, len(parts))
	for _, seg := range parts {
		switch seg {
		case "", ".":
		case "..":
			if len(segs) == 0 {
				return "", fserr.Newf(fserr.KindInvalidPath, "path escapes root:%s", p)
			}
			segs = segs[:len(segs)-1]
		default:
			segs = append(segs, seg)
		}
	}
	return "/" + strings.Join(segs, "/"), nil
}

// Resolve 计算请求uri, 各段单独做百分号编码, 目录uri固定带结尾分隔符,
// 文件uri固定不带, 部分服务端对不带结尾分隔符的目录请求会返回404
func (r *Resolver) Resolve(workdir string, p string, asDir bool) (string, error) {
	abs, err := r.Abs(workdir, p)
	if err != nil {
		return "", err
	}
	uri := r.Base() + encodePath(abs)
	if asDir && !strings.HasSuffix(uri, "/") {
		uri += "/"
	}
	return uri, nil
}

// ToLogical 将207响应中的href还原为逻辑路径, 用于区分self与子项
func (r *Resolver) ToLogical(href string) string {
	p := href
	if u, err := url.Parse(href); err == nil {
		p = u.Path
	} else if dec, derr := url.PathUnescape(href); derr == nil {
		p = dec
	}
	// 仅在整段匹配时剥离base前缀, 避免`/dav`误吞`/davother/x`这类路径
	if bp := r.base.Path; len(bp) != 0 {
		if p == bp {
			p = "/"
		} else if strings.HasPrefix(p, bp+"/") {
			p = p[len(bp):]
		}
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func encodePath(abs string) string {
	if abs == "/" {
		return "/"
	}
	parts := strings.Split(strings.TrimPrefix(abs, "/"), "/")
	for i, seg := range parts {
		parts[i] = url.PathEscape(seg)
	}
	return "/" + strings.Join(parts, "/")
}
