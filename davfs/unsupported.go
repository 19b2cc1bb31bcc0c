package davfs

import (
	"context"
	"io"

	"github.com/xxxsen/davfs/fserr"
)

// webdav协议表达不了的能力, 全部显式报unsupported, 不做近似模拟:
// 原地追加/带偏移的读写/权限位/软链/远端命令执行/区别于MOVE的字节级COPY

func (f *WebdavFs) Append(ctx context.Context, location string, r io.Reader) (int64, error) {
	return 0, fserr.New(fserr.KindUnsupported, "append is not expressible over webdav")
}

func (f *WebdavFs) SetStat(ctx context.Context, location string, mode uint32) error {
	return fserr.New(fserr.KindUnsupported, "setstat is not expressible over webdav")
}

func (f *WebdavFs) Symlink(ctx context.Context, location string, target string) error {
	return fserr.New(fserr.KindUnsupported, "symlink is not expressible over webdav")
}

func (f *WebdavFs) Copy(ctx context.Context, src string, dst string) error {
	return fserr.New(fserr.KindUnsupported, "byte-range copy is not supported")
}

func (f *WebdavFs) Exec(ctx context.Context, cmd string) (int, string, error) {
	return 0, "", fserr.New(fserr.KindUnsupported, "exec is not expressible over webdav")
}
