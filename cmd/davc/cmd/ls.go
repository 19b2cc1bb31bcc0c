package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/davfs/davfs"
	"go.uber.org/zap"
)

type lsArgs struct {
	dir string
}

func NewLsCmd(c *Context) *cobra.Command {
	args := &lsArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "ls",
		Short: "List a remote directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunLs(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.dir, "dir", "d", "/", "remote dir to list")
	return subc
}

func onRunLs(ctx context.Context, c *Context, args *lsArgs) error {
	return withSession(ctx, c, func(fs davfs.IRemoteFs) error {
		rs, err := fs.ListDir(ctx, args.dir)
		if err != nil {
			return fmt.Errorf("list dir failed, dir:%s, err:%w", args.dir, err)
		}
		for _, ent := range rs.Entries {
			kind := "-"
			size := humanize.IBytes(uint64(ent.FileSize))
			if ent.IsDir {
				kind = "d"
				size = "-"
			}
			mtime := "-"
			if ent.Mtime != 0 {
				mtime = time.UnixMilli(ent.Mtime).Format(time.DateTime)
			}
			fmt.Printf("%s %10s %20s %s\n", kind, size, mtime, ent.Name())
		}
		for p, err := range rs.Broken {
			logutil.GetLogger(ctx).Warn("entry not readable", zap.String("path", p), zap.Error(err))
		}
		return nil
	})
}

func init() {
	register(NewLsCmd)
}
