package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/xxxsen/davfs/davfs"
)

type statArgs struct {
	location string
}

func NewStatCmd(c *Context) *cobra.Command {
	args := &statArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "stat",
		Short: "Show metadata of a remote file or directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunStat(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.location, "path", "p", "", "remote path")
	return subc
}

func onRunStat(ctx context.Context, c *Context, args *statArgs) error {
	if len(args.location) == 0 {
		return fmt.Errorf("no remote path found")
	}
	return withSession(ctx, c, func(fs davfs.IRemoteFs) error {
		ent, err := fs.Stat(ctx, args.location)
		if err != nil {
			return fmt.Errorf("stat failed, path:%s, err:%w", args.location, err)
		}
		fmt.Printf("name: %s\n", ent.Name())
		fmt.Printf("path: %s\n", ent.Path)
		fmt.Printf("is_dir: %t\n", ent.IsDir)
		if !ent.IsDir {
			fmt.Printf("size: %s (%d)\n", humanize.IBytes(uint64(ent.FileSize)), ent.FileSize)
		}
		if ent.Mtime != 0 {
			fmt.Printf("mtime: %s\n", time.UnixMilli(ent.Mtime).Format(time.DateTime))
		}
		if len(ent.Etag) != 0 {
			fmt.Printf("etag: %s\n", ent.Etag)
		}
		return nil
	})
}

func init() {
	register(NewStatCmd)
}
