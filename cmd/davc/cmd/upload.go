package cmd

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/davfs/davfs"
	"github.com/xxxsen/davfs/utils"
	"go.uber.org/zap"
)

type uploadArgs struct {
	file   string
	remote string
	verify bool
}

func NewUploadCmd(c *Context) *cobra.Command {
	args := &uploadArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "upload",
		Short: "Upload a local file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunUpload(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.file, "file", "f", "", "local file to upload")
	subc.PersistentFlags().StringVarP(&args.remote, "remote", "r", "", "remote path, default to basename under root")
	subc.PersistentFlags().BoolVarP(&args.verify, "verify", "v", false, "re-download and compare digest after upload")
	return subc
}

func onRunUpload(ctx context.Context, c *Context, args *uploadArgs) error {
	if len(args.file) == 0 {
		return fmt.Errorf("no upload file found")
	}
	remote := args.remote
	if len(remote) == 0 {
		remote = "/" + path.Base(args.file)
	}
	return withSession(ctx, c, func(fs davfs.IRemoteFs) error {
		info, err := os.Stat(args.file)
		if err != nil {
			return fmt.Errorf("stat local file failed, err:%w", err)
		}
		f, err := os.Open(args.file)
		if err != nil {
			return fmt.Errorf("open local file failed, err:%w", err)
		}
		defer f.Close()
		start := time.Now()
		sz, err := fs.CreateFile(ctx, remote, info.Size(), f)
		if err != nil {
			return fmt.Errorf("upload file failed, remote:%s, err:%w", remote, err)
		}
		cost := time.Since(start)
		speed := "-"
		if cost > time.Millisecond {
			speed = humanize.IBytes(uint64(float64(sz)*1000/float64(int64(cost/time.Millisecond)))) + "/s"
		}
		logutil.GetLogger(ctx).Info("upload file succ",
			zap.String("remote", remote), zap.Int64("size", sz),
			zap.Duration("cost", cost), zap.String("speed", speed))
		if !args.verify {
			return nil
		}
		return verifyUpload(ctx, fs, args.file, remote)
	})
}

// verifyUpload 回读远端内容做摘要比对, 确认上传内容未被截断或篡改
func verifyUpload(ctx context.Context, fs davfs.IRemoteFs, local string, remote string) error {
	want, wantSize, err := utils.HashFile(local)
	if err != nil {
		return err
	}
	stream, err := fs.OpenFile(ctx, remote)
	if err != nil {
		return fmt.Errorf("open remote file for verify failed, err:%w", err)
	}
	defer stream.Close()
	got, gotSize, err := utils.HashStream(stream)
	if err != nil {
		return err
	}
	if want != got || wantSize != gotSize {
		return fmt.Errorf("verify failed, local:%x/%d, remote:%x/%d", want, wantSize, got, gotSize)
	}
	logutil.GetLogger(ctx).Info("verify succ", zap.String("remote", remote), zap.Int64("size", gotSize))
	return nil
}

func init() {
	register(NewUploadCmd)
}
