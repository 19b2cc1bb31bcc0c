package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xxxsen/davfs/davfs"
)

type mkdirArgs struct {
	dir string
}

func NewMkdirCmd(c *Context) *cobra.Command {
	args := &mkdirArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "mkdir",
		Short: "Create a remote directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunMkdir(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.dir, "dir", "d", "", "remote dir to create")
	return subc
}

func onRunMkdir(ctx context.Context, c *Context, args *mkdirArgs) error {
	if len(args.dir) == 0 {
		return fmt.Errorf("no remote dir found")
	}
	return withSession(ctx, c, func(fs davfs.IRemoteFs) error {
		if err := fs.CreateDir(ctx, args.dir); err != nil {
			return fmt.Errorf("create dir failed, dir:%s, err:%w", args.dir, err)
		}
		return nil
	})
}

func init() {
	register(NewMkdirCmd)
}
