package davfs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/davfs/client"
	"github.com/xxxsen/davfs/entity"
	"github.com/xxxsen/davfs/fserr"
	"github.com/xxxsen/davfs/httpkit"
	"github.com/xxxsen/davfs/multistatus"
	"github.com/xxxsen/davfs/pathkit"
	"go.uber.org/zap"
)

// WebdavFs 基于webdav协议的远端文件系统实现。
// 同一实例上的协议操作串行执行, 工作目录等会话状态由内部互斥锁保护;
// 需要并行传输时应创建多个独立实例
type WebdavFs struct {
	c        *config
	trans    client.ITransport
	resolver *pathkit.Resolver

	mu        sync.Mutex
	workdir   string
	connected bool
}

func New(opts ...Option) (*WebdavFs, error) {
	c := applyOpts(opts...)
	if len(c.url) == 0 {
		return nil, fmt.Errorf("no url found in config")
	}
	resolver, err := pathkit.NewResolver(c.url)
	if err != nil {
		return nil, fmt.Errorf("build resolver failed, err:%w", err)
	}
	trans := c.trans
	if trans == nil {
		trans, err = client.New(client.WithAuth(c.user, c.pass), client.WithTimeout(c.timeout))
		if err != nil {
			return nil, fmt.Errorf("build transport failed, err:%w", err)
		}
	}
	return &WebdavFs{c: c, trans: trans, resolver: resolver}, nil
}

func (f *WebdavFs) ensureConnected() error {
	if !f.connected {
		return fserr.New(fserr.KindNotConnected, "session not connected")
	}
	return nil
}

// Connect 通过对根目录的depth-0探测校验凭据与服务可用性,
// 成功后工作目录重置为根
func (f *WebdavFs) Connect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	uri, err := f.resolver.Resolve("/", "/", true)
	if err != nil {
		return err
	}
	if _, _, err := f.propfind(ctx, uri, 0); err != nil {
		logutil.GetLogger(ctx).Error("probe server root failed", zap.String("uri", uri), zap.Error(err))
		return err
	}
	f.connected = true
	f.workdir = "/"
	return nil
}

// Disconnect 幂等, 未连接状态下调用不报错
func (f *WebdavFs) Disconnect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.connected {
		return nil
	}
	f.connected = false
	if err := f.trans.Close(); err != nil {
		return fserr.Wrap(fserr.KindProtocolError, "close transport failed", err)
	}
	return nil
}

func (f *WebdavFs) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *WebdavFs) Pwd() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensureConnected(); err != nil {
		return "", err
	}
	return f.workdir, nil
}

func (f *WebdavFs) ChangeDir(ctx context.Context, dir string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensureConnected(); err != nil {
		return "", err
	}
	abs, err := f.resolver.Abs(f.workdir, dir)
	if err != nil {
		return "", err
	}
	// 不强制结尾分隔符, 目标是普通文件时才能拿到属性并报not_a_directory,
	// 而不是被严格的服务端直接404
	ent, err := f.statPath(ctx, dir, false)
	if err != nil {
		return "", err
	}
	if !ent.IsDir {
		return "", fserr.Newf(fserr.KindNotADirectory, "not a collection:%s", abs)
	}
	//确认目标存在且为目录后才更新会话状态, 中途失败不留半截状态
	f.workdir = abs
	return abs, nil
}

func (f *WebdavFs) ListDir(ctx context.Context, dir string) (*entity.ListResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensureConnected(); err != nil {
		return nil, err
	}
	abs, err := f.resolver.Abs(f.workdir, dir)
	if err != nil {
		return nil, err
	}
	uri, err := f.resolver.Resolve(f.workdir, dir, true)
	if err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Debug("list dir", zap.String("uri", uri))
	ents, broken, err := f.propfind(ctx, uri, 1)
	if err != nil {
		return nil, err
	}
	if err, ok := broken[abs]; ok {
		return nil, err
	}
	rs := &entity.ListResult{Broken: broken}
	for _, ent := range ents {
		// depth-1响应中包含被枚举目录自身, 通过归一化路径比对剔除,
		// 不依赖条目的返回顺序
		if ent.Path == abs {
			if !ent.IsDir {
				return nil, fserr.Newf(fserr.KindNotADirectory, "not a collection:%s", abs)
			}
			continue
		}
		rs.Entries = append(rs.Entries, ent)
	}
	return rs, nil
}

func (f *WebdavFs) Stat(ctx context.Context, location string) (*entity.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensureConnected(); err != nil {
		return nil, err
	}
	return f.statPath(ctx, location, false)
}

// statPath depth-0探测单个资源, 调用方需要持有锁
func (f *WebdavFs) statPath(ctx context.Context, location string, asDir bool) (*entity.Entry, error) {
	abs, err := f.resolver.Abs(f.workdir, location)
	if err != nil {
		return nil, err
	}
	uri, err := f.resolver.Resolve(f.workdir, location, asDir)
	if err != nil {
		return nil, err
	}
	ents, broken, err := f.propfind(ctx, uri, 0)
	if err != nil {
		return nil, err
	}
	if err, ok := broken[abs]; ok {
		return nil, err
	}
	for _, ent := range ents {
		if ent.Path == abs {
			return ent, nil
		}
	}
	// 兜底: 部分服务端的href与请求uri在编码上存在差异, depth-0只会有一条记录
	if len(ents) == 1 {
		ents[0].Path = abs
		return ents[0], nil
	}
	return nil, fserr.Newf(fserr.KindNotFound, "no entry for:%s", abs)
}

func (f *WebdavFs) Exists(ctx context.Context, location string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensureConnected(); err != nil {
		return false, err
	}
	if _, err := f.statPath(ctx, location, false); err != nil {
		// 唯一允许吞掉not_found的位置
		if fserr.IsKind(err, fserr.KindNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (f *WebdavFs) CreateDir(ctx context.Context, dir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensureConnected(); err != nil {
		return err
	}
	// MKCOL固定带结尾分隔符, 不隐式补建中间目录, 父级缺失直接报parent_not_found
	uri, err := f.resolver.Resolve(f.workdir, dir, true)
	if err != nil {
		return err
	}
	logutil.GetLogger(ctx).Debug("create dir", zap.String("uri", uri))
	rsp, err := f.trans.Mkcol(ctx, uri)
	if err != nil {
		return fserr.MapTransportError(err)
	}
	defer httpkit.DiscardBody(rsp)
	return fserr.MapStatus(rsp.StatusCode, fserr.OpMkcol)
}

func (f *WebdavFs) CreateFile(ctx context.Context, location string, size int64, r io.Reader) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensureConnected(); err != nil {
		return 0, err
	}
	uri, err := f.resolver.Resolve(f.workdir, location, false)
	if err != nil {
		return 0, err
	}
	logutil.GetLogger(ctx).Debug("create file", zap.String("uri", uri), zap.Int64("size", size))
	cr := &countReader{r: r}
	rsp, err := f.trans.Put(ctx, uri, size, cr)
	if err != nil {
		return 0, fserr.MapTransportError(err)
	}
	defer httpkit.DiscardBody(rsp)
	if err := fserr.MapStatus(rsp.StatusCode, fserr.OpPut); err != nil {
		return 0, err
	}
	return cr.total, nil
}

func (f *WebdavFs) OpenFile(ctx context.Context, location string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensureConnected(); err != nil {
		return nil, err
	}
	uri, err := f.resolver.Resolve(f.workdir, location, false)
	if err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Debug("open file", zap.String("uri", uri))
	rsp, err := f.trans.Get(ctx, uri)
	if err != nil {
		return nil, fserr.MapTransportError(err)
	}
	if err := fserr.MapStatus(rsp.StatusCode, fserr.OpGet); err != nil {
		httpkit.DiscardBody(rsp)
		return nil, err
	}
	return rsp.Body, nil
}

func (f *WebdavFs) RemoveFile(ctx context.Context, location string) error {
	return f.remove(ctx, location, false)
}

func (f *WebdavFs) RemoveDir(ctx context.Context, dir string) error {
	return f.remove(ctx, dir, true)
}

func (f *WebdavFs) RemoveDirAll(ctx context.Context, dir string) error {
	return f.remove(ctx, dir, true)
}

// remove 目录删除由服务端递归执行, 协议语义上要么整体成功要么目标不变
func (f *WebdavFs) remove(ctx context.Context, location string, asDir bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensureConnected(); err != nil {
		return err
	}
	uri, err := f.resolver.Resolve(f.workdir, location, asDir)
	if err != nil {
		return err
	}
	logutil.GetLogger(ctx).Debug("remove", zap.String("uri", uri), zap.Bool("as_dir", asDir))
	rsp, err := f.trans.Delete(ctx, uri)
	if err != nil {
		return fserr.MapTransportError(err)
	}
	defer httpkit.DiscardBody(rsp)
	return fserr.MapStatus(rsp.StatusCode, fserr.OpDelete)
}

func (f *WebdavFs) Move(ctx context.Context, src string, dst string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensureConnected(); err != nil {
		return err
	}
	srcURI, err := f.resolver.Resolve(f.workdir, src, false)
	if err != nil {
		return err
	}
	dstURI, err := f.resolver.Resolve(f.workdir, dst, false)
	if err != nil {
		return err
	}
	logutil.GetLogger(ctx).Debug("move", zap.String("src", srcURI), zap.String("dst", dstURI))
	rsp, err := f.trans.Move(ctx, srcURI, dstURI, false)
	if err != nil {
		return fserr.MapTransportError(err)
	}
	defer httpkit.DiscardBody(rsp)
	return fserr.MapStatus(rsp.StatusCode, fserr.OpMove)
}

// propfind 发起属性查询并解析207响应, 2xx以外的状态码直接走状态映射
func (f *WebdavFs) propfind(ctx context.Context, uri string, depth int) ([]*entity.Entry, map[string]error, error) {
	rsp, err := f.trans.Propfind(ctx, uri, depth)
	if err != nil {
		return nil, nil, fserr.MapTransportError(err)
	}
	defer rsp.Body.Close()
	if err := fserr.MapStatus(rsp.StatusCode, fserr.OpPropfind); err != nil {
		logutil.GetLogger(ctx).Debug("propfind failed",
			zap.String("uri", uri), zap.Int("status", rsp.StatusCode),
			zap.String("detail", httpkit.ReadErrorDetail(rsp)))
		return nil, nil, err
	}
	if rsp.StatusCode != http.StatusMultiStatus {
		return nil, nil, fserr.NewStatus(fserr.KindProtocolError, rsp.StatusCode, "expect multistatus response")
	}
	return multistatus.Parse(rsp.Body, f.resolver.ToLogical)
}

type countReader struct {
	r     io.Reader
	total int64
}

func (c *countReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.total += int64(n)
	return n, err
}
