package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/davfs/davfs"
	"github.com/xxxsen/davfs/fserr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type syncupArgs struct {
	local  string
	remote string
}

func NewSyncupCmd(c *Context) *cobra.Command {
	args := &syncupArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "syncup",
		Short: "Push a local directory tree to the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunSyncup(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.local, "local", "l", "", "local dir to push")
	subc.PersistentFlags().StringVarP(&args.remote, "remote", "r", "/", "remote target dir")
	return subc
}

func onRunSyncup(ctx context.Context, c *Context, args *syncupArgs) error {
	if len(args.local) == 0 {
		return fmt.Errorf("no local dir found")
	}
	dirs, files, err := collectLocalTree(args.local)
	if err != nil {
		return err
	}
	// 目录按层级串行补建, 协议不支持隐式创建父级
	if err := withSession(ctx, c, func(fs davfs.IRemoteFs) error {
		for _, dir := range dirs {
			remote := path.Join(args.remote, dir)
			if err := fs.CreateDir(ctx, remote); err != nil && !fserr.IsKind(err, fserr.KindAlreadyExists) {
				return fmt.Errorf("create remote dir failed, dir:%s, err:%w", remote, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	// 文件并行上传, 单条会话内的协议交互是串行的, 并行度来自独立会话
	start := time.Now()
	eg, subctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.Config.Thread)
	for _, file := range files {
		file := file
		eg.Go(func() error {
			return withSession(subctx, c, func(fs davfs.IRemoteFs) error {
				return pushOneFile(subctx, fs, filepath.Join(args.local, file), path.Join(args.remote, file))
			})
		})
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("sync up failed, err:%w", err)
	}
	logutil.GetLogger(ctx).Info("sync up succ",
		zap.Int("dir_cnt", len(dirs)), zap.Int("file_cnt", len(files)),
		zap.Duration("cost", time.Since(start)))
	return nil
}

func pushOneFile(ctx context.Context, rfs davfs.IRemoteFs, local string, remote string) error {
	info, err := os.Stat(local)
	if err != nil {
		return fmt.Errorf("stat local file failed, err:%w", err)
	}
	f, err := os.Open(local)
	if err != nil {
		return fmt.Errorf("open local file failed, err:%w", err)
	}
	defer f.Close()
	if _, err := rfs.CreateFile(ctx, remote, info.Size(), f); err != nil {
		return fmt.Errorf("push file failed, remote:%s, err:%w", remote, err)
	}
	logutil.GetLogger(ctx).Debug("push file succ", zap.String("remote", remote), zap.Int64("size", info.Size()))
	return nil
}

// collectLocalTree 枚举本地目录, 返回以`/`分隔的相对路径, 目录按深度排序
func collectLocalTree(root string) ([]string, []string, error) {
	var dirs []string
	var files []string
	if err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			dirs = append(dirs, rel)
			return nil
		}
		files = append(files, rel)
		return nil
	}); err != nil {
		return nil, nil, fmt.Errorf("walk local dir failed, err:%w", err)
	}
	sort.Slice(dirs, func(i, j int) bool {
		return strings.Count(dirs[i], "/") < strings.Count(dirs[j], "/")
	})
	return dirs, files, nil
}

func init() {
	register(NewSyncupCmd)
}
