package davfs

import (
	"context"
	"io"

	"github.com/xxxsen/davfs/entity"
)

// IRemoteFs 远端文件系统能力集, 本包基于webdav协议提供其中一种实现。
// 协议表达不了的能力(append/setstat/symlink/exec等)不在接口内,
// 见WebdavFs上对应方法的说明
type IRemoteFs interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	IsConnected() bool
	// ChangeDir 切换工作目录并返回归一化后的绝对路径
	ChangeDir(ctx context.Context, dir string) (string, error)
	// Pwd 读取当前工作目录, 不产生网络请求
	Pwd() (string, error)
	// ListDir 枚举目录直接子级, 结果不包含目录自身
	ListDir(ctx context.Context, dir string) (*entity.ListResult, error)
	Stat(ctx context.Context, location string) (*entity.Entry, error)
	// Exists 基于Stat实现, not_found会被转换为false而不是错误
	Exists(ctx context.Context, location string) (bool, error)
	CreateDir(ctx context.Context, dir string) error
	// CreateFile 流式上传, size未知时传-1走chunked编码, 返回实际写入的字节数
	CreateFile(ctx context.Context, location string, size int64, r io.Reader) (int64, error)
	// OpenFile 流式下载, 调用方负责关闭返回的流
	OpenFile(ctx context.Context, location string) (io.ReadCloser, error)
	RemoveFile(ctx context.Context, location string) error
	RemoveDir(ctx context.Context, dir string) error
	// RemoveDirAll 与RemoveDir走同一条协议原语, 服务端递归删除,
	// 仅为了在调用侧区分两种语义而单独建模
	RemoveDirAll(ctx context.Context, dir string) error
	// Move 服务端搬移, 默认禁止覆盖, 目标已存在时报already_exists
	Move(ctx context.Context, src string, dst string) error
}
