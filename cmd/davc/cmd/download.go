package cmd

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/retry"
	"github.com/xxxsen/davfs/davfs"
	"github.com/xxxsen/davfs/utils"
	"go.uber.org/zap"
)

type downloadArgs struct {
	remote string
	local  string
}

func NewDownloadCmd(c *Context) *cobra.Command {
	args := &downloadArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "download",
		Short: "Download a remote file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunDownload(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.remote, "remote", "r", "", "remote file to download")
	subc.PersistentFlags().StringVarP(&args.local, "local", "l", "", "local target, default to basename in cwd")
	return subc
}

func onRunDownload(ctx context.Context, c *Context, args *downloadArgs) error {
	if len(args.remote) == 0 {
		return fmt.Errorf("no remote file found")
	}
	local := args.local
	if len(local) == 0 {
		local = path.Base(args.remote)
	}
	return withSession(ctx, c, func(fs davfs.IRemoteFs) error {
		start := time.Now()
		// GET幂等, 下载失败由调用侧重试, 落盘走临时文件保证本地不留半截数据
		if err := retry.RetryDo(ctx, 3, 2*time.Second, func(ctx context.Context) error {
			stream, err := fs.OpenFile(ctx, args.remote)
			if err != nil {
				logutil.GetLogger(ctx).Error("open remote file failed, wait retry", zap.Error(err))
				return err
			}
			defer stream.Close()
			if _, err := utils.SafeSaveStreamToFile(local, stream); err != nil {
				return err
			}
			return nil
		}); err != nil {
			return fmt.Errorf("download failed, remote:%s, err:%w", args.remote, err)
		}
		logutil.GetLogger(ctx).Info("download file succ",
			zap.String("remote", args.remote), zap.String("local", local),
			zap.Duration("cost", time.Since(start)))
		return nil
	})
}

func init() {
	register(NewDownloadCmd)
}
